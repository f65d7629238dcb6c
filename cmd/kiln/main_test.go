package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/zerr"

	"github.com/kilnhq/kiln/internal/core/domain"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"toolchain unavailable", domain.ErrToolchainUnavailable, exitToolchainUnavailable},
		{"dependency compile failure", domain.ErrDependencyCompileFailed, exitDependencyCompile},
		{"project compile failure", domain.ErrProjectCompileFailed, exitProjectCompile},
		{"invalid bundle", domain.ErrInvalidBundle, exitInvalidBundle},
		{"cache mismatch", domain.ErrCacheMismatch, exitCacheMismatch},
		{"unclassified", errors.New("disk full"), exitFailure},
		{"wrapped sentinel", zerr.With(zerr.Wrap(domain.ErrDependencyCompileFailed, "compiling serde"), "dependency", "serde@1.0.200"), exitDependencyCompile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestExitCodesAreDistinct(t *testing.T) {
	codes := []int{
		exitOK,
		exitFailure,
		exitToolchainUnavailable,
		exitDependencyCompile,
		exitProjectCompile,
		exitInvalidBundle,
		exitCacheMismatch,
	}
	seen := make(map[int]bool, len(codes))
	for _, code := range codes {
		assert.False(t, seen[code], "exit code %d assigned twice", code)
		seen[code] = true
	}
}
