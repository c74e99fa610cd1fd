package voteview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usyj/makgora-client/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		label string
		want  Bucket
	}{
		{"yes", BucketYes},
		{"Yes!!", BucketYes},
		{"YESSS", BucketYes},
		{"no", BucketNo},
		{"No way", BucketNo},
		{"draw", BucketDraw},
		{"drawn", BucketDraw},
		{"MAYBE", BucketUnknown},
		{"", BucketUnknown},
		// YES wins over NO, NO wins over DRAW when both substrings appear.
		{"yes or no", BucketYes},
		{"No Draw", BucketNo},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.label), "label %q", tc.label)
	}
}

func TestComputeSplitEmpty(t *testing.T) {
	got := ComputeSplit(0, 0, 0)
	assert.Equal(t, Split{Yes: 33, Draw: 33, No: 34}, got)
}

func TestComputeSplitRemainderGoesToNo(t *testing.T) {
	got := ComputeSplit(60, 0, 40)
	assert.Equal(t, Split{Yes: 60, Draw: 0, No: 40}, got)

	// 1/3 each rounds yes and draw to 33; no absorbs the remainder.
	got = ComputeSplit(1, 1, 1)
	assert.Equal(t, 100, got.Yes+got.Draw+got.No)
	assert.Equal(t, Split{Yes: 33, Draw: 33, No: 34}, got)
}

func TestComputeSplitAlwaysSumsToHundred(t *testing.T) {
	cases := [][3]int64{
		{1, 0, 0}, {0, 0, 1}, {7, 11, 13}, {999, 1, 1}, {17, 17, 16},
	}
	for _, c := range cases {
		got := ComputeSplit(c[0], c[1], c[2])
		assert.Equal(t, 100, got.Yes+got.Draw+got.No, "counts %v", c)
	}
}

func testVote() domain.Vote {
	return domain.Vote{
		ID:     42,
		Title:  "Will it ship",
		Status: domain.VoteStatusOpen,
		Kind:   domain.VoteKindAI,
		Options: []domain.VoteOption{
			{
				ID:    1,
				Title: "Q1 release",
				Choices: []domain.VoteChoice{
					{ID: 10, Text: "YES", ParticipantsCount: 60, Odds: 1.5},
					{ID: 11, Text: "NO", ParticipantsCount: 40, Odds: 2.4},
				},
			},
			{
				ID:    2,
				Title: "Q2 release",
				Choices: []domain.VoteChoice{
					{ID: 20, Text: "YES", ParticipantsCount: 0},
					{ID: 21, Text: "NO", ParticipantsCount: 0},
				},
			},
		},
	}
}

func TestBuildAggregatesSplits(t *testing.T) {
	view := Build(testVote())

	// Top-level split combines both options: 60 yes, 40 no.
	assert.Equal(t, Split{Yes: 60, Draw: 0, No: 40}, view.Split)

	require.Len(t, view.Options, 2)
	assert.Equal(t, Split{Yes: 60, Draw: 0, No: 40}, view.Options[0].Split)
	// Zero-participation option gets the placeholder split.
	assert.Equal(t, Split{Yes: 33, Draw: 33, No: 34}, view.Options[1].Split)
}

func TestBuildChoicePercents(t *testing.T) {
	view := Build(testVote())

	require.Len(t, view.Options[0].Choices, 2)
	assert.Equal(t, 60, view.Options[0].Choices[0].Percent)
	assert.Equal(t, 40, view.Options[0].Choices[1].Percent)

	// Empty option: plain zero, no placeholder at choice level.
	assert.Equal(t, 0, view.Options[1].Choices[0].Percent)
}

func TestBuildDisabledByStatus(t *testing.T) {
	v := testVote()
	for _, st := range []domain.VoteStatus{
		domain.VoteStatusFinished, domain.VoteStatusResolved, domain.VoteStatusRewarded,
	} {
		v.Status = st
		assert.True(t, Build(v).Disabled, "status %s", st)
	}
	v.Status = domain.VoteStatusOpen
	assert.False(t, Build(v).Disabled)
}

func TestResolvePositionByID(t *testing.T) {
	v := testVote()
	v.MyParticipation = &domain.Participation{
		HasParticipated: true,
		ChoiceID:        11,
		PointsBet:       100,
	}

	pos, ok := ResolvePosition(v)
	require.True(t, ok)
	assert.Equal(t, "Q1 release - NO", pos.Display)
	assert.Equal(t, int64(100), pos.PointsBet)
}

func TestResolvePositionFallsBackToLabel(t *testing.T) {
	v := testVote()
	v.MyParticipation = &domain.Participation{
		HasParticipated: true,
		ChoiceID:        999, // stale id
		ChoiceText:      "YES",
	}

	pos, ok := ResolvePosition(v)
	require.True(t, ok)
	assert.Equal(t, "Q1 release - YES", pos.Display)
}

func TestResolvePositionPlaceholder(t *testing.T) {
	v := testVote()
	v.MyParticipation = &domain.Participation{
		HasParticipated: true,
		ChoiceID:        999,
	}

	pos, ok := ResolvePosition(v)
	require.True(t, ok)
	assert.Equal(t, NoSelectionLabel, pos.Display)
}

func TestResolvePositionAbsent(t *testing.T) {
	v := testVote()

	_, ok := ResolvePosition(v)
	assert.False(t, ok)

	v.MyParticipation = &domain.Participation{HasParticipated: false}
	_, ok = ResolvePosition(v)
	assert.False(t, ok)
}

func TestProjectReward(t *testing.T) {
	assert.Equal(t, int64(185), ProjectReward(100, 1.85))
	assert.Equal(t, int64(616), ProjectReward(333, 1.85)) // 616.05 rounds down
	assert.Equal(t, int64(0), ProjectReward(0, 1.85))
}

func TestBuildBetslip(t *testing.T) {
	v := testVote()
	quote := domain.OddsQuote{
		VoteID: 42,
		Odds:   []domain.OddsItem{{OptionID: 1, Odds: 1.85}},
	}

	slip := BuildBetslip(v, quote, 11, 100)
	assert.Equal(t, int64(11), slip.ChoiceID)
	assert.Equal(t, 2.4, slip.CurrentOdds)
	assert.Equal(t, 1.85, slip.ExpectedOdds)
	assert.Equal(t, int64(185), slip.ExpectedReward)
	assert.False(t, slip.Disabled)
}

func TestBuildBetslipClosedVote(t *testing.T) {
	v := testVote()
	v.Status = domain.VoteStatusFinished

	slip := BuildBetslip(v, domain.OddsQuote{}, 11, 100)
	assert.True(t, slip.Disabled)
	assert.Zero(t, slip.ExpectedReward)
}
