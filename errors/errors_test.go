package errors_test

import (
	"fmt"
	"testing"

	"github.com/speakeasy-api/clientgen/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const errTest = errors.Error("test error")

func TestError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "test error", errTest.Error())
}

func TestError_Is_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{
			name: "bare sentinel",
			err:  errTest,
		},
		{
			name: "wrapped cause",
			err:  errTest.Wrap(errors.New("underlying failure")),
		},
		{
			name: "fmt wrapped",
			err:  fmt.Errorf("outer: %w", errTest),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.True(t, errors.Is(tt.err, errTest))
		})
	}
}

func TestError_Wrap_MessageContainsCause(t *testing.T) {
	t.Parallel()

	wrapped := errTest.Wrap(errors.New("underlying failure"))
	require.Error(t, wrapped)
	assert.Equal(t, "test error -- underlying failure", wrapped.Error())
}

func TestError_Is_Mismatch(t *testing.T) {
	t.Parallel()

	const other = errors.Error("other error")
	assert.False(t, errors.Is(errTest.Wrap(errors.New("cause")), other))
}
