package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestShouldDisableColor(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatalf("os.Create() error = %v", err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("A regular file should not be reported as a terminal")
	}
	if !ShouldDisableColor(false, f) {
		t.Error("Color should be disabled when not writing to a terminal")
	}
	if !ShouldDisableColor(true, f) {
		t.Error("Color should be disabled when --no-color is set")
	}
}

func TestShouldDisableColor_NonFileWriter(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	if !ShouldDisableColor(false, &bytes.Buffer{}) {
		t.Error("Color should be disabled when writing to a buffer")
	}
}
