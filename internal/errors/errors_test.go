package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagError_NamesPath(t *testing.T) {
	err := WrapNotFound("scan_user_log", "/var/log/user.log", errors.New("no such file"))
	assert.Contains(t, err.Error(), "scan_user_log")
	assert.Contains(t, err.Error(), "/var/log/user.log")
}

func TestDiagError_IsMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", WrapNotFound("op", "p", errors.New("x")), ErrNotFound},
		{"parse", WrapParse("op", "p", errors.New("x")), ErrParse},
		{"missing field", WrapMissingField("op", "p", errors.New("x")), ErrMissingField},
		{"decoding", WrapDecoding("op", "p", errors.New("x")), ErrDecoding},
		{"io", WrapIO("op", "p", errors.New("x")), ErrIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			for _, other := range []error{ErrNotFound, ErrParse, ErrMissingField, ErrDecoding, ErrIO} {
				if other == tt.sentinel {
					continue
				}
				assert.NotErrorIs(t, tt.err, other)
			}
		})
	}
}

func TestDiagError_Unwrap(t *testing.T) {
	underlying := errors.New("disk full")
	err := WrapIO("write_json_report", "out.json", underlying)

	var diagErr *DiagError
	require.True(t, errors.As(err, &diagErr))
	assert.Equal(t, underlying, diagErr.Unwrap())
	assert.ErrorIs(t, err, underlying)
}

func TestDiagError_WrappedFurther(t *testing.T) {
	err := fmt.Errorf("run failed: %w", WrapNotFound("parse_events", "events.xml", errors.New("gone")))
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "events.xml")
}
