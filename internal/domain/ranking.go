package domain

// RankingTab selects which leaderboard to fetch.
type RankingTab string

const (
	RankingTabPoints  RankingTab = "points"
	RankingTabWinRate RankingTab = "winRate"
	RankingTabStreak  RankingTab = "streak"
)

// Valid reports whether the tab names a known leaderboard.
func (t RankingTab) Valid() bool {
	switch t {
	case RankingTabPoints, RankingTabWinRate, RankingTabStreak:
		return true
	}
	return false
}

// RankingEntry is one leaderboard row.
type RankingEntry struct {
	Rank        int     `json:"rank"`
	UserID      int64   `json:"userId"`
	Nickname    string  `json:"nickname"`
	AvatarIcon  string  `json:"avatarIcon,omitempty"`
	RankingType string  `json:"rankingType"`
	Points      int64   `json:"points"`
	WinRate     float64 `json:"winRate"`
	Streak      int     `json:"streak"`
}
