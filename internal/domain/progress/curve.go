// Package progress implements the gamification rules: the XP level curve,
// the daily streak transition, and the badge catalog with its unlock
// predicates. Everything here is a pure function over ProgressState so the
// service layer and the API can share one source of truth.
package progress

import "math"

// XPForLevel returns the cumulative XP required to reach the given level.
// The curve is strictly increasing in the level; level 1 requires 0 XP.
// UI progress bars and AddXP must use this same function, otherwise the two
// drift apart and a user can sit at 100% forever.
func XPForLevel(level int, params *Params) int {
	if level <= 1 {
		return 0
	}
	return int(math.Round(params.XPCurveBase * math.Pow(float64(level-1), params.XPCurveExponent)))
}

// LevelForXP returns the highest level whose XP requirement is satisfied by
// the given cumulative XP. The result is always at least 1 and never exceeds
// params.MaxLevel.
func LevelForXP(xp int, params *Params) int {
	level := 1
	for level < params.MaxLevel && xp >= XPForLevel(level+1, params) {
		level++
	}
	return level
}
