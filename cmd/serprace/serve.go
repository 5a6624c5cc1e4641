package main

import (
	"fmt"

	serhttp "github.com/fwojciec/serprace/http"
)

// Run executes the serve command. It blocks until the context is
// cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	opts := []serhttp.Option{serhttp.WithLogger(deps.Logger)}
	if deps.Metrics != nil {
		opts = append(opts, serhttp.WithMetrics(deps.Metrics))
	}
	srv := serhttp.NewServer(deps.Searcher, opts...)
	srv.Addr = c.Addr

	if err := srv.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot listen on %s: %v\n", c.Addr, err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", srv.URL())

	<-deps.Ctx.Done()
	return srv.Close()
}
