package preflight

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/benchfio/internal/config"
)

func TestTargetKindTableIsExhaustive(t *testing.T) {
	for _, kind := range config.TargetKinds() {
		spec, ok := targetKinds[kind]
		require.True(t, ok, "kind %s has no entry", kind)

		if kind == config.KindRBD {
			assert.False(t, spec.local)
			assert.Nil(t, spec.matches)
			assert.Empty(t, spec.parameter)
			continue
		}
		assert.True(t, spec.local, "kind %s should be local", kind)
		assert.NotNil(t, spec.matches, "kind %s has no predicate", kind)
		assert.NotEmpty(t, spec.parameter, "kind %s has no parameter", kind)
	}
	assert.Len(t, targetKinds, len(config.TargetKinds()))
}

func TestParameter(t *testing.T) {
	tests := []struct {
		kind   config.TargetKind
		want   string
		wantOK bool
	}{
		{config.KindFile, "filename", true},
		{config.KindDevice, "filename", true},
		{config.KindDirectory, "directory", true},
		{config.KindRBD, "", false},
		{"tape", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, ok := Parameter(tt.kind)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	fsys := newFakeFS(map[string]fs.FileMode{
		"/data/file.img": modeRegular,
		"/dev/sdb":       modeBlock,
		"/dev/tty0":      modeChar,
		"/mnt/bench":     modeDir,
	})

	tests := []struct {
		name     string
		target   string
		kind     config.TargetKind
		want     string
		wantCode int
	}{
		{"regular file", "/data/file.img", config.KindFile, "filename", 0},
		{"block device", "/dev/sdb", config.KindDevice, "filename", 0},
		{"directory", "/mnt/bench", config.KindDirectory, "directory", 0},
		{"directory declared as file", "/mnt/bench", config.KindFile, "", ExitTargetMismatch},
		{"file declared as device", "/data/file.img", config.KindDevice, "", ExitTargetMismatch},
		{"char device declared as device", "/dev/tty0", config.KindDevice, "", ExitTargetMismatch},
		{"file declared as directory", "/data/file.img", config.KindDirectory, "", ExitTargetMismatch},
		{"missing target", "/data/missing.img", config.KindFile, "", ExitTargetMismatch},
		{"unknown kind", "/data/file.img", "tape", "", ExitUnknownKind},
		{"missing target with unknown kind", "/nowhere", "tape", "", ExitTargetMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fsys.resolver().Resolve(tt.target, tt.kind, false)
			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ExitCode(err))
			assert.Empty(t, got)
		})
	}
}

func TestResolver_MismatchMessages(t *testing.T) {
	fsys := newFakeFS(map[string]fs.FileMode{"/mnt/bench": modeDir})

	_, err := fsys.resolver().Resolve("/mnt/bench", config.KindFile, false)
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "Target file /mnt/bench is not file.", f.Message)

	_, err = fsys.resolver().Resolve("/mnt/other", config.KindDirectory, false)
	f, ok = AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "Benchmark target directory /mnt/other does not exist.", f.Message)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestResolver_RBDNeverTouchesFilesystem(t *testing.T) {
	fsys := newFakeFS(nil)

	for _, remote := range []bool{false, true} {
		got, err := fsys.resolver().Resolve("does-not-exist", config.KindRBD, remote)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
	assert.Empty(t, fsys.lookups)
}

func TestResolver_RemoteSkipsLocalChecks(t *testing.T) {
	fsys := newFakeFS(nil)

	tests := []struct {
		kind     config.TargetKind
		want     string
		wantCode int
	}{
		{config.KindFile, "filename", 0},
		{config.KindDevice, "filename", 0},
		{config.KindDirectory, "directory", 0},
		{"tape", "", ExitUnknownKind},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, err := fsys.resolver().Resolve("/remote/only/path", tt.kind, true)
			assert.Equal(t, tt.wantCode, ExitCode(err))
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Empty(t, fsys.lookups, "remote targets must not be looked up locally")
}

func TestResolver_RealFilesystem(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "target.img")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	r := NewResolver()

	got, err := r.Resolve(file, config.KindFile, false)
	require.NoError(t, err)
	assert.Equal(t, "filename", got)

	got, err = r.Resolve(dir, config.KindDirectory, false)
	require.NoError(t, err)
	assert.Equal(t, "directory", got)

	_, err = r.Resolve(file, config.KindDevice, false)
	assert.Equal(t, ExitTargetMismatch, ExitCode(err))

	assert.True(t, r.Exists(file))
	assert.False(t, r.Exists(filepath.Join(dir, "missing")))
}
