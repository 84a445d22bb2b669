package preflight

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// Check names reported by the environment checks
const (
	CheckExecutable = "fio-executable"
	CheckVersion    = "fio-version"
	CheckEncoding   = "output-encoding"
)

// DefaultBinary is the load generator the tool drives
const DefaultBinary = "fio"

// versionPrefix starts every "fio --version" line regardless of the name
// the binary is installed under
const versionPrefix = "fio"

// encodingCanary is an ideographic space; it renders blank but needs a
// wide character set.
const encodingCanary = "\u3000"

// CommandRunner runs a command to completion and returns its stdout
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Output implements CommandRunner
func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Environment checks that the host can run the load generator
type Environment struct {
	Binary   string
	Runner   CommandRunner
	LookPath func(file string) (string, error)
	Getenv   func(key string) string
	Stdout   io.Writer
}

// NewEnvironment returns an Environment bound to the real host
func NewEnvironment() *Environment {
	return &Environment{
		Binary:   DefaultBinary,
		Runner:   ExecRunner{},
		LookPath: exec.LookPath,
		Getenv:   os.Getenv,
		Stdout:   os.Stdout,
	}
}

// ConfirmExecutable checks that the binary resolves on PATH
func (e *Environment) ConfirmExecutable() error {
	if _, err := e.LookPath(e.Binary); err != nil {
		f := fail(CheckExecutable, ExitToolNotFound,
			"%s executable not found in path. Is %s installed?", e.Binary, e.Binary)
		f.Err = err
		return f
	}
	return nil
}

// ConfirmVersion runs "<binary> --version" and accepts only the 3.x line.
// The 2.x JSON output differs from 3.x and cannot be consumed downstream.
func (e *Environment) ConfirmVersion(ctx context.Context) error {
	out, err := e.Runner.Output(ctx, e.Binary, "--version")
	version := strings.TrimSpace(string(out))

	switch {
	case strings.Contains(version, versionPrefix+"-3"):
		return nil
	case strings.Contains(version, versionPrefix+"-2"):
		return fail(CheckVersion, ExitIncompatibleVersion,
			"Your fio version (%s) is not compatible. Please use fio-3.x", version)
	default:
		f := fail(CheckVersion, ExitIncompatibleVersion, "Could not detect fio version.")
		f.Err = err
		return f
	}
}

// ConfirmOutputEncoding checks that stdout can carry wide characters: the
// locale charset must be able to encode the canary and the canary must be
// writable. On failure it prints how to override the locale.
func (e *Environment) ConfirmOutputEncoding() error {
	charset := localeCharset(e.Getenv)

	if err := canEncode(charset, encodingCanary); err != nil {
		return e.encodingFailure(charset, err)
	}
	if _, err := io.WriteString(e.Stdout, encodingCanary+"\n"); err != nil {
		return e.encodingFailure(charset, err)
	}
	return nil
}

func (e *Environment) encodingFailure(charset string, cause error) error {
	fmt.Fprintln(e.Stdout)
	fmt.Fprintf(e.Stdout, "It seems your output encoding (%s) is not UTF-8. This tool requires UTF-8.\n", charset)
	fmt.Fprintln(e.Stdout, "You can change the encoding with 'export LC_ALL=C.UTF-8'")
	fmt.Fprintln(e.Stdout, "Or you can run the tool like: LC_ALL=C.UTF-8 bench-fio check ...")
	fmt.Fprintln(e.Stdout, "Changing the locale could affect other applications, beware.")
	fmt.Fprintln(e.Stdout)

	f := fail(CheckEncoding, ExitEncoding, "output encoding %s cannot represent required characters", charset)
	f.Err = cause
	return f
}

// localeCharset returns the codeset of the effective locale, following the
// LC_ALL > LC_CTYPE > LANG precedence. Locales without a codeset and the
// C/POSIX locale report UTF-8 since Go always emits UTF-8.
func localeCharset(getenv func(string) string) string {
	var locale string
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := getenv(key); v != "" {
			locale = v
			break
		}
	}

	if locale == "" || locale == "C" || locale == "POSIX" {
		return "UTF-8"
	}

	dot := strings.IndexByte(locale, '.')
	if dot < 0 {
		return "UTF-8"
	}
	charset := locale[dot+1:]
	if at := strings.IndexByte(charset, '@'); at >= 0 {
		charset = charset[:at]
	}
	if charset == "" {
		return "UTF-8"
	}
	return charset
}

// canEncode reports an error when charset is known and cannot encode s.
// Unknown charsets are let through.
func canEncode(charset, s string) error {
	enc := lookupEncoding(charset)
	if enc == nil {
		return nil
	}
	_, err := enc.NewEncoder().String(s)
	return err
}

func lookupEncoding(name string) encoding.Encoding {
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc
	}
	if enc, err := htmlindex.Get(name); err == nil {
		return enc
	}
	return nil
}
