// Package voteview computes the display aggregates for a vote payload:
// outcome-bucket percentage splits, per-choice shares, the viewer's resolved
// position and the reward projection for a candidate wager. Everything here
// is pure arithmetic over a fetched vote; odds themselves always come from
// the backend.
package voteview

import (
	"math"
	"strings"

	"github.com/usyj/makgora-client/internal/domain"
)

// Bucket is the normalized outcome class of a choice label.
type Bucket string

const (
	BucketYes     Bucket = "YES"
	BucketNo      Bucket = "NO"
	BucketDraw    Bucket = "DRAW"
	BucketUnknown Bucket = "UNKNOWN"
)

// Classify maps a raw choice label to its outcome bucket. Upstream label
// text is inconsistent ("yes", "YES!", "No Draw"), so classification is a
// case-insensitive substring check in priority order YES, NO, DRAW.
func Classify(label string) Bucket {
	upper := strings.ToUpper(label)
	switch {
	case strings.Contains(upper, "YES"):
		return BucketYes
	case strings.Contains(upper, "NO"):
		return BucketNo
	case strings.Contains(upper, "DRAW"):
		return BucketDraw
	default:
		return BucketUnknown
	}
}

// Placeholder split shown before anyone has participated. Splitting a zero
// total would divide by zero, and a blank bar reads as broken, so empty
// votes render as an even-looking 33/33/34.
const (
	EmptyYesPercent  = 33
	EmptyDrawPercent = 33
	EmptyNoPercent   = 34
)

// Split is a yes/draw/no percentage breakdown. The three values always sum
// to exactly 100: yes and draw are rounded independently and no absorbs the
// rounding remainder.
type Split struct {
	Yes  int `json:"yesPercent"`
	Draw int `json:"drawPercent"`
	No   int `json:"noPercent"`
}

// ComputeSplit turns bucket participant counts into a Split.
func ComputeSplit(yes, draw, no int64) Split {
	total := yes + draw + no
	if total == 0 {
		return Split{Yes: EmptyYesPercent, Draw: EmptyDrawPercent, No: EmptyNoPercent}
	}
	yesP := int(math.Round(float64(yes) / float64(total) * 100))
	drawP := int(math.Round(float64(draw) / float64(total) * 100))
	return Split{Yes: yesP, Draw: drawP, No: 100 - yesP - drawP}
}

// ChoiceView is one choice row with its share of the option's participants.
type ChoiceView struct {
	ChoiceID     int64  `json:"choiceId"`
	Label        string `json:"label"`
	Bucket       Bucket `json:"bucket"`
	Participants int64  `json:"participants"`
	Percent      int    `json:"percent"`
	Odds         float64 `json:"odds,omitempty"`
}

// OptionView is one option with its bucket split and choice rows.
type OptionView struct {
	OptionID     int64        `json:"optionId"`
	Title        string       `json:"title"`
	Participants int64        `json:"participants"`
	Split        Split        `json:"split"`
	Choices      []ChoiceView `json:"choices"`
}

// View is the fully aggregated display model for one vote.
type View struct {
	VoteID   int64             `json:"voteId"`
	Title    string            `json:"title"`
	Status   domain.VoteStatus `json:"status"`
	Kind     domain.VoteKind   `json:"kind"`
	Split    Split             `json:"split"`
	Options  []OptionView      `json:"options"`
	Position *Position         `json:"position,omitempty"`
	Disabled bool              `json:"bettingDisabled"`
}

// Build aggregates a vote payload into its display model. The top-level
// split combines every option; each option also carries its own split and
// per-choice shares.
func Build(v domain.Vote) View {
	view := View{
		VoteID:   v.ID,
		Title:    v.Title,
		Status:   v.Status,
		Kind:     v.Kind,
		Disabled: v.Status.Closed(),
		Options:  make([]OptionView, 0, len(v.Options)),
	}

	var totalYes, totalDraw, totalNo int64
	for _, opt := range v.Options {
		var yes, draw, no, optTotal int64
		for _, ch := range opt.Choices {
			optTotal += int64(ch.ParticipantsCount)
			switch Classify(ch.Text) {
			case BucketYes:
				yes += int64(ch.ParticipantsCount)
			case BucketDraw:
				draw += int64(ch.ParticipantsCount)
			case BucketNo:
				no += int64(ch.ParticipantsCount)
			}
		}
		totalYes += yes
		totalDraw += draw
		totalNo += no

		ov := OptionView{
			OptionID:     opt.ID,
			Title:        opt.Title,
			Participants: optTotal,
			Split:        ComputeSplit(yes, draw, no),
			Choices:      make([]ChoiceView, 0, len(opt.Choices)),
		}
		for _, ch := range opt.Choices {
			ov.Choices = append(ov.Choices, ChoiceView{
				ChoiceID:     ch.ID,
				Label:        ch.Text,
				Bucket:       Classify(ch.Text),
				Participants: int64(ch.ParticipantsCount),
				Percent:      choicePercent(int64(ch.ParticipantsCount), optTotal),
				Odds:         ch.Odds,
			})
		}
		view.Options = append(view.Options, ov)
	}

	view.Split = ComputeSplit(totalYes, totalDraw, totalNo)
	if pos, ok := ResolvePosition(v); ok {
		view.Position = &pos
	}
	return view
}

// choicePercent is the choice's share of its option's participants. Unlike
// the bucket split there is no placeholder: an empty option shows 0.
func choicePercent(participants, optionTotal int64) int {
	if optionTotal == 0 {
		return 0
	}
	return int(math.Round(float64(participants) / float64(optionTotal) * 100))
}

// NoSelectionLabel is shown when a participation record resolves to no
// known choice. The backend occasionally returns participations whose
// choice has since been edited away.
const NoSelectionLabel = "(no selection info)"

// Position is the viewer's resolved participation on a vote.
type Position struct {
	ChoiceID  int64  `json:"choiceId,omitempty"`
	Display   string `json:"display"`
	PointsBet int64  `json:"pointsBet,omitempty"`
	Odds      float64 `json:"odds,omitempty"`
	Reward    int64  `json:"expectedReward,omitempty"`
	Cancelled bool   `json:"cancelled,omitempty"`
}

// ResolvePosition maps the vote's myParticipation record onto a concrete
// choice. Resolution tries the choice id first, then falls back to label
// text, then to the no-selection placeholder. The display string is
// "<OptionTitle> - <ChoiceLabel>", or just the label when the parent
// option cannot be found.
func ResolvePosition(v domain.Vote) (Position, bool) {
	p := v.MyParticipation
	if p == nil || !p.HasParticipated {
		return Position{}, false
	}

	pos := Position{
		ChoiceID:  p.ChoiceID,
		PointsBet: p.PointsBet,
		Odds:      p.OddsAtParticipation,
		Reward:    p.ExpectedReward,
		Cancelled: p.IsCancelled,
		Display:   NoSelectionLabel,
	}

	type located struct {
		optionTitle string
		label       string
	}
	var byID, byLabel *located
	for _, opt := range v.Options {
		for _, ch := range opt.Choices {
			if ch.ID == p.ChoiceID {
				byID = &located{optionTitle: opt.Title, label: ch.Text}
			}
			if byLabel == nil && p.ChoiceText != "" && ch.Text == p.ChoiceText {
				byLabel = &located{optionTitle: opt.Title, label: ch.Text}
			}
		}
	}

	found := byID
	if found == nil {
		found = byLabel
	}
	if found != nil {
		if found.optionTitle != "" {
			pos.Display = found.optionTitle + " - " + found.label
		} else {
			pos.Display = found.label
		}
	} else if p.ChoiceText != "" {
		pos.Display = p.ChoiceText
	}
	return pos, true
}
