package domain

import (
	"encoding/json"
	"time"
)

// VoteStatus represents the lifecycle state of a vote. Transitions are owned
// by the backend; the client only reads the status to decide whether betting
// controls are enabled.
type VoteStatus string

const (
	VoteStatusOpen     VoteStatus = "OPEN"
	VoteStatusFinished VoteStatus = "FINISHED"
	VoteStatusResolved VoteStatus = "RESOLVED"
	VoteStatusRewarded VoteStatus = "REWARDED"
)

// Closed reports whether the vote no longer accepts participation.
func (s VoteStatus) Closed() bool {
	return s == VoteStatusFinished || s == VoteStatusResolved || s == VoteStatusRewarded
}

// VoteKind distinguishes odds-driven AI votes from multi-option survey votes.
type VoteKind string

const (
	VoteKindAI     VoteKind = "AI"
	VoteKindNormal VoteKind = "NORMAL"
)

// Vote is a prediction market ("vote") as returned by the backend detail
// endpoints. AI votes carry odds and point wagers; normal votes are plain
// participant tallies.
type Vote struct {
	ID                int64           `json:"voteId"`
	Kind              VoteKind        `json:"type"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	Status            VoteStatus      `json:"status"`
	CreatedAt         time.Time       `json:"createdAt"`
	EndAt             time.Time       `json:"endAt"`
	TotalParticipants int             `json:"totalParticipants"`
	TotalPoints       int64           `json:"totalPoints"`
	Options           []VoteOption    `json:"options"`
	MyParticipation   *Participation  `json:"myParticipation,omitempty"`
	Comments          []Comment       `json:"comments,omitempty"`
	ExpectedOdds      *float64        `json:"expectedOdds,omitempty"`
	ExpectedReward    *int64          `json:"expectedReward,omitempty"`
	CorrectByOption   map[int64]int64 `json:"correctChoicesByOption,omitempty"`
}

// VoteOption is a sub-question within a vote, holding the selectable choices.
type VoteOption struct {
	ID                int64        `json:"optionId"`
	Title             string       `json:"title"`
	TotalParticipants int          `json:"totalParticipants"`
	TotalPoints       int64        `json:"totalPoints"`
	CorrectChoiceID   int64        `json:"correctChoiceId"`
	Choices           []VoteChoice `json:"choices"`
}

// UnmarshalJSON tolerates the payload variants the backend has shipped over
// time: the option ID may arrive as "optionId" or "id", and the title as
// "title" or "optionTitle".
func (o *VoteOption) UnmarshalJSON(data []byte) error {
	type alias VoteOption
	aux := struct {
		*alias
		AltID    int64  `json:"id"`
		AltTitle string `json:"optionTitle"`
	}{alias: (*alias)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if o.ID == 0 {
		o.ID = aux.AltID
	}
	if o.Title == "" {
		o.Title = aux.AltTitle
	}
	return nil
}

// VoteChoice is one selectable outcome within an option.
type VoteChoice struct {
	ID                int64   `json:"choiceId"`
	Text              string  `json:"text"`
	ParticipantsCount int     `json:"participantsCount"`
	PointsTotal       int64   `json:"pointsTotal"`
	Odds              float64 `json:"odds"`
	IsCorrect         bool    `json:"isCorrect"`
	IsMyChoice        bool    `json:"isMyChoice"`
}

// UnmarshalJSON tolerates the choice ID arriving as "choiceId" or "id" and
// the label as "text" or "choiceText".
func (c *VoteChoice) UnmarshalJSON(data []byte) error {
	type alias VoteChoice
	aux := struct {
		*alias
		AltID   int64  `json:"id"`
		AltText string `json:"choiceText"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.ID == 0 {
		c.ID = aux.AltID
	}
	if c.Text == "" {
		c.Text = aux.AltText
	}
	return nil
}

// Participation is the current user's recorded position on a vote.
type Participation struct {
	HasParticipated      bool       `json:"hasParticipated"`
	IsCancelled          bool       `json:"isCancelled"`
	OptionID             int64      `json:"optionId"`
	ChoiceID             int64      `json:"choiceId"`
	ChoiceText           string     `json:"choiceText,omitempty"`
	PointsBet            int64      `json:"pointsBet"`
	OddsAtParticipation  float64    `json:"oddsAtParticipation"`
	ExpectedReward       int64      `json:"expectedReward"`
	VotedAt              *time.Time `json:"votedAt,omitempty"`
	CanceledAt           *time.Time `json:"canceledAt,omitempty"`
}

// OddsQuote is the backend's odds simulation for an option: the current
// multiplier and the expected multiplier after a candidate wager. The client
// never computes odds itself.
type OddsQuote struct {
	VoteID int64      `json:"voteId"`
	Odds   []OddsItem `json:"odds"`
}

// OddsItem carries the odds for a single option.
type OddsItem struct {
	OptionID    int64   `json:"optionId"`
	OptionTitle string  `json:"optionTitle"`
	Odds        float64 `json:"odds"`
}

// ParticipateRequest is the wager submission payload for AI votes.
type ParticipateRequest struct {
	ChoiceID int64 `json:"choiceId"`
	Points   int64 `json:"points"`
}

// NormalParticipateRequest is the selection payload for survey votes. Survey
// participation carries no amount.
type NormalParticipateRequest struct {
	OptionID int64 `json:"optionId"`
	ChoiceID int64 `json:"choiceId"`
}

// VoteStatistics summarises the current user's betting history.
type VoteStatistics struct {
	TotalVotes   int     `json:"totalVotes"`
	WinCount     int     `json:"winCount"`
	LoseCount    int     `json:"loseCount"`
	WinRate      float64 `json:"winRate"`
	TotalBet     int64   `json:"totalBet"`
	TotalReward  int64   `json:"totalReward"`
	CurrentStreak int    `json:"currentStreak"`
}

// NormalVoteCreateRequest is the payload for creating or replacing a survey
// vote. Options and choices are created inline.
type NormalVoteCreateRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Category    string              `json:"category,omitempty"`
	EndAt       time.Time           `json:"endAt"`
	Options     []NormalVoteOption  `json:"options"`
}

// NormalVoteOption is one inline option of a survey-vote creation payload.
type NormalVoteOption struct {
	Title   string   `json:"title"`
	Choices []string `json:"choices"`
}

// VoteResolutionRequest names the winning choice when an admin finishes or
// settles a vote.
type VoteResolutionRequest struct {
	CorrectChoiceID int64 `json:"correctChoiceId"`
}
