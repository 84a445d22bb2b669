package preflight

import (
	"io/fs"
	"os"

	"github.com/wesleyorama2/benchfio/internal/config"
)

// CheckTarget names failures raised while resolving a target
const CheckTarget = "target"

// kindSpec holds everything the resolver knows about a target kind. The
// predicate and the fio parameter name live in one entry so they cannot
// drift apart.
type kindSpec struct {
	// local is false for kinds that have no filesystem representation
	local bool
	// matches reports whether a stat result is of this kind
	matches func(fs.FileInfo) bool
	// parameter is the fio job option the target is passed as
	parameter string
}

var targetKinds = map[config.TargetKind]kindSpec{
	config.KindFile:      {local: true, matches: isRegularFile, parameter: "filename"},
	config.KindDevice:    {local: true, matches: isBlockDevice, parameter: "filename"},
	config.KindDirectory: {local: true, matches: isDirectory, parameter: "directory"},
	config.KindRBD:       {local: false},
}

func isRegularFile(fi fs.FileInfo) bool { return fi.Mode().IsRegular() }

func isDirectory(fi fs.FileInfo) bool { return fi.IsDir() }

func isBlockDevice(fi fs.FileInfo) bool {
	mode := fi.Mode()
	return mode&fs.ModeDevice != 0 && mode&fs.ModeCharDevice == 0
}

// Parameter returns the fio parameter name used for targets of kind.
// rbd targets have none; the job takes the pool instead.
func Parameter(kind config.TargetKind) (string, bool) {
	spec, ok := targetKinds[kind]
	if !ok || !spec.local {
		return "", false
	}
	return spec.parameter, true
}

// Resolver validates a target path against its declared kind
type Resolver struct {
	// Stat follows symlinks, like os.Stat
	Stat func(name string) (fs.FileInfo, error)
}

// NewResolver returns a Resolver that inspects the local filesystem
func NewResolver() *Resolver {
	return &Resolver{Stat: os.Stat}
}

// Exists reports whether path can be stat'ed
func (r *Resolver) Exists(path string) bool {
	_, err := r.Stat(path)
	return err == nil
}

// Resolve checks that target is a kind and returns the fio parameter name
// to pass it with.
//
// rbd targets are never looked up and resolve to an empty name. Remote
// targets live on another host and are not looked up either; only the kind
// is checked.
func (r *Resolver) Resolve(target string, kind config.TargetKind, remote bool) (string, error) {
	if kind == config.KindRBD {
		return "", nil
	}

	var info fs.FileInfo
	if !remote {
		var err error
		info, err = r.Stat(target)
		if err != nil {
			f := fail(CheckTarget, ExitTargetMismatch, "Benchmark target %s %s does not exist.", kind, target)
			f.Err = err
			return "", f
		}
	}

	spec, ok := targetKinds[kind]
	if !ok {
		return "", unknownKind(kind)
	}
	parameter, _ := Parameter(kind)

	if remote {
		return parameter, nil
	}

	if !spec.matches(info) {
		return "", fail(CheckTarget, ExitTargetMismatch, "Target %s %s is not %s.", kind, target, kind)
	}
	return parameter, nil
}

func unknownKind(kind config.TargetKind) *Failure {
	return fail(CheckTarget, ExitUnknownKind, "Error, filetype %s is an unknown option.", kind)
}
