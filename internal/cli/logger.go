package cli

import (
	"fmt"

	"go.uber.org/zap"
)

// newLogger returns a development logger on stderr when verbose is set and
// a no-op logger otherwise
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}
	return logger, nil
}
