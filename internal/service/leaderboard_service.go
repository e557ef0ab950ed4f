package service

import (
	"sort"

	"github.com/minhokim/sejong-api/internal/domain/progress"
)

// LeaderboardEntry represents a single row of the leaderboard.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Name          string `json:"name"`
	XP            int    `json:"xp"`
	Level         int    `json:"level"`
	IsCurrentUser bool   `json:"is_current_user"`
}

// sampleCompetitor is a fixed board member the caller is ranked against.
// There is no real multi-user competition yet; the board gives a solo
// learner something to climb.
type sampleCompetitor struct {
	name string
	xp   int
}

// sampleBoard is the static competitor set.
func sampleBoard() []sampleCompetitor {
	return []sampleCompetitor{
		{name: "Jiyoon", xp: 4850},
		{name: "Minjae", xp: 3920},
		{name: "Hana", xp: 3100},
		{name: "Daniel", xp: 2440},
		{name: "Sofia", xp: 1875},
		{name: "Lucas", xp: 1320},
		{name: "Emma", xp: 960},
		{name: "Tom", xp: 540},
		{name: "Yuki", xp: 210},
	}
}

// Leaderboard merges the caller into the static sample board, sorts by XP
// descending with a stable name tie-break, assigns dense 1-based ranks, and
// flags the caller's row. Pure function: no I/O, deterministic for a given
// input.
func Leaderboard(currentUserName string, currentUserXP int, params *progress.Params) []LeaderboardEntry {
	if params == nil {
		params = progress.NewDefaultParams()
	}

	competitors := sampleBoard()
	entries := make([]LeaderboardEntry, 0, len(competitors)+1)
	for _, c := range competitors {
		entries = append(entries, LeaderboardEntry{
			Name:  c.name,
			XP:    c.xp,
			Level: progress.LevelForXP(c.xp, params),
		})
	}

	entries = append(entries, LeaderboardEntry{
		Name:          currentUserName,
		XP:            currentUserXP,
		Level:         progress.LevelForXP(currentUserXP, params),
		IsCurrentUser: true,
	})

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].XP != entries[j].XP {
			return entries[i].XP > entries[j].XP
		}
		return entries[i].Name < entries[j].Name
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
