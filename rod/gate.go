package rod

import "context"

// SpawnGate is a critical section around browser process spawning.
// The first run of a browser binary may patch shared files on disk, so two
// spawns must never overlap. Only the spawn step is guarded: connecting,
// opening tabs and browsing run outside it.
//
// A single SpawnGate is created per process and injected into every
// Launcher that should share it.
type SpawnGate struct {
	sem chan struct{}
}

// NewSpawnGate returns an open gate.
func NewSpawnGate() *SpawnGate {
	return &SpawnGate{sem: make(chan struct{}, 1)}
}

// Do runs fn while holding the gate. It returns ctx.Err() without running
// fn if ctx is cancelled while waiting.
func (g *SpawnGate) Do(ctx context.Context, fn func() error) error {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-g.sem }()

	return fn()
}
