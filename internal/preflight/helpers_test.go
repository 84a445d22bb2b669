package preflight

import (
	"context"
	"io/fs"
	"time"
)

// fakeInfo is a minimal fs.FileInfo
type fakeInfo struct {
	name string
	mode fs.FileMode
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return f.mode }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeInfo) Sys() interface{}   { return nil }

const (
	modeRegular fs.FileMode = 0o644
	modeDir                 = fs.ModeDir | 0o755
	modeBlock               = fs.ModeDevice | 0o660
	modeChar                = fs.ModeDevice | fs.ModeCharDevice | 0o660
)

// fakeFS maps paths to file modes and records every lookup
type fakeFS struct {
	entries map[string]fs.FileMode
	lookups []string
}

func newFakeFS(entries map[string]fs.FileMode) *fakeFS {
	return &fakeFS{entries: entries}
}

func (f *fakeFS) Stat(name string) (fs.FileInfo, error) {
	f.lookups = append(f.lookups, name)
	mode, ok := f.entries[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fakeInfo{name: name, mode: mode}, nil
}

func (f *fakeFS) resolver() *Resolver {
	return &Resolver{Stat: f.Stat}
}

// fakeRunner returns canned output for every command
type fakeRunner struct {
	out   string
	err   error
	calls [][]string
}

func (r *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	return []byte(r.out), r.err
}
