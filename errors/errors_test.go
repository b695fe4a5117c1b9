package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapFormatsComponentMethodAction(t *testing.T) {
	base := stderrors.New("boom")
	err := Wrap(base, "endpoint", "Send", "frame write")
	require.Error(t, err)
	assert.Equal(t, "endpoint.Send: frame write failed: boom", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "a", "b", "c"))
	assert.NoError(t, WrapTransient(nil, "a", "b", "c"))
	assert.NoError(t, WrapInvalid(nil, "a", "b", "c"))
	assert.NoError(t, WrapFatal(nil, "a", "b", "c"))
}

func TestClassifiedWrappers(t *testing.T) {
	base := stderrors.New("boom")

	tests := []struct {
		name  string
		err   error
		class ErrorClass
	}{
		{"transient", WrapTransient(base, "c", "m", "a"), ErrorTransient},
		{"invalid", WrapInvalid(base, "c", "m", "a"), ErrorInvalid},
		{"fatal", WrapFatal(base, "c", "m", "a"), ErrorFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.class, Classify(tt.err))
			var ce *ClassifiedError
			require.True(t, stderrors.As(tt.err, &ce))
			assert.Equal(t, "c", ce.Component)
			assert.ErrorIs(t, tt.err, base)
		})
	}
}

func TestSentinelClassification(t *testing.T) {
	assert.True(t, IsTransient(ErrEndpointLost))
	assert.True(t, IsTransient(ErrConnectionTimeout))
	assert.True(t, IsInvalid(ErrMalformedFrame))
	assert.True(t, IsInvalid(ErrUnknownActionOp))
	assert.True(t, IsFatal(ErrInvalidConfig))
	assert.True(t, IsFatal(ErrStopped))

	assert.False(t, IsTransient(nil))
	assert.False(t, IsFatal(nil))
	assert.False(t, IsInvalid(nil))
}

func TestClassStrings(t *testing.T) {
	assert.Equal(t, "transient", ErrorTransient.String())
	assert.Equal(t, "invalid", ErrorInvalid.String())
	assert.Equal(t, "fatal", ErrorFatal.String())
}
