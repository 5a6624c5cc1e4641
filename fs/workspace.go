// Package fs manages the on-disk state owned by browser sessions and the
// CLI's output files.
package fs

import (
	"os"
	"path/filepath"
	"sync"
)

// Workspace is a temporary directory owned by exactly one browser session.
// It holds the browser profile and must not outlive the session.
type Workspace struct {
	dir  string
	once sync.Once
	err  error
}

// NewWorkspace creates a fresh directory under parent. An empty parent
// means the system temporary directory.
func NewWorkspace(parent, prefix string) (*Workspace, error) {
	dir, err := os.MkdirTemp(parent, prefix)
	if err != nil {
		return nil, err
	}
	return &Workspace{dir: dir}, nil
}

// Path returns the workspace directory.
func (w *Workspace) Path() string {
	return w.dir
}

// ProfileDir returns the browser user data directory inside the workspace.
func (w *Workspace) ProfileDir() string {
	return filepath.Join(w.dir, "profile")
}

// Remove deletes the workspace and everything in it. Remove is safe to
// call multiple times; later calls return the first result.
func (w *Workspace) Remove() error {
	w.once.Do(func() {
		w.err = os.RemoveAll(w.dir)
	})
	return w.err
}
