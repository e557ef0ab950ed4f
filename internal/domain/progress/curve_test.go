package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPForLevelStrictlyIncreasing(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	for level := 1; level < params.MaxLevel; level++ {
		if XPForLevel(level, params) >= XPForLevel(level+1, params) {
			t.Fatalf("curve not strictly increasing at level %d: %d >= %d",
				level, XPForLevel(level, params), XPForLevel(level+1, params))
		}
	}
}

func TestXPForLevelBase(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	assert.Equal(t, 0, XPForLevel(1, params), "level 1 requires no XP")
	assert.Equal(t, 0, XPForLevel(0, params), "out-of-range levels clamp to zero")
	assert.Equal(t, 100, XPForLevel(2, params))
}

func TestLevelForXP(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		xp       int
		expected int
	}{
		{name: "zero XP is level 1", xp: 0, expected: 1},
		{name: "just below level 2 threshold", xp: XPForLevel(2, params) - 1, expected: 1},
		{name: "exactly at level 2 threshold", xp: XPForLevel(2, params), expected: 2},
		{name: "between level 3 and 4", xp: XPForLevel(4, params) - 1, expected: 3},
		{name: "far beyond the curve caps at max level", xp: 1 << 30, expected: params.MaxLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, LevelForXP(tc.xp, params))
		})
	}
}

// LevelForXP must agree with XPForLevel for every level; a mismatch between
// the two is exactly the progress-bar bug the curve is centralized to avoid.
func TestCurveRoundTrip(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	for level := 1; level <= params.MaxLevel; level++ {
		assert.Equal(t, level, LevelForXP(XPForLevel(level, params), params),
			"round trip failed at level %d", level)
	}
}
