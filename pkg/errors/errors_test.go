package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndIsCode(t *testing.T) {
	base := errors.New("boom")
	inner := Wrap(CodeLLM, "model call failed", base)
	outer := fmt.Errorf("step failed: %w", Wrap(CodeQueue, "enqueue failed", inner))

	require.True(t, IsCode(outer, CodeQueue))
	require.True(t, IsCode(outer, CodeLLM))
	require.False(t, IsCode(outer, CodeSMS))
	require.ErrorIs(t, outer, base)
	require.Equal(t, CodeQueue, CodeOf(outer))
	require.Equal(t, "model call failed: boom", inner.Error())
	require.Equal(t, "", CodeOf(base))
}
