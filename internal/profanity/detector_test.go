package profanity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacesedan/reviewflow/internal/profanity"
)

func TestIsProfane(t *testing.T) {
	detector := profanity.NewDetector()

	require.True(t, detector.IsProfane("total shit product"))
	require.False(t, detector.IsProfane("great product works well"))
	require.False(t, detector.IsProfane(""))
}
