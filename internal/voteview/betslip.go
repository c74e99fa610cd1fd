package voteview

import (
	"math"

	"github.com/usyj/makgora-client/internal/domain"
)

// PresetAmounts are the quick-pick wager sizes offered alongside free-form
// input.
var PresetAmounts = []int64{50, 100, 250, 500, 1000}

// Betslip is the projection shown before a wager is confirmed. Odds come
// from the backend's simulation endpoint; the client only multiplies.
type Betslip struct {
	VoteID         int64   `json:"voteId"`
	ChoiceID       int64   `json:"choiceId"`
	Amount         int64   `json:"amount"`
	CurrentOdds    float64 `json:"currentOdds"`
	ExpectedOdds   float64 `json:"expectedOdds"`
	ExpectedReward int64   `json:"expectedReward"`
	Disabled       bool    `json:"disabled"`
}

// ProjectReward converts a candidate wager into its displayed point payout,
// rounded to the nearest integer.
func ProjectReward(amount int64, expectedOdds float64) int64 {
	return int64(math.Round(float64(amount) * expectedOdds))
}

// BuildBetslip assembles the confirmation view for a candidate wager. The
// quote is matched to the choice's parent option; a missing quote leaves
// the odds fields zero and the reward unprojected.
func BuildBetslip(v domain.Vote, quote domain.OddsQuote, choiceID, amount int64) Betslip {
	slip := Betslip{
		VoteID:   v.ID,
		ChoiceID: choiceID,
		Amount:   amount,
		Disabled: v.Status.Closed(),
	}

	optionID := int64(0)
	for _, opt := range v.Options {
		for _, ch := range opt.Choices {
			if ch.ID == choiceID {
				optionID = opt.ID
				slip.CurrentOdds = ch.Odds
			}
		}
	}
	for _, item := range quote.Odds {
		if item.OptionID == optionID {
			slip.ExpectedOdds = item.Odds
		}
	}
	if slip.ExpectedOdds > 0 {
		slip.ExpectedReward = ProjectReward(amount, slip.ExpectedOdds)
	}
	return slip
}
