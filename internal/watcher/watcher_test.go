package watcher

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/notify"
)

type fakeLister struct {
	votes []domain.Vote
}

func (f *fakeLister) ListVotes(context.Context) ([]domain.Vote, error) {
	return f.votes, nil
}

func (f *fakeLister) GetVoteDetail(_ context.Context, voteID int64) (domain.Vote, error) {
	for _, v := range f.votes {
		if v.ID == voteID {
			return v, nil
		}
	}
	return domain.Vote{}, domain.ErrNotFound
}

type fakeViews struct {
	mu      sync.Mutex
	gen     uint64
	entries map[int64]domain.VoteViewEntry
}

func newFakeViews() *fakeViews {
	return &fakeViews{entries: make(map[int64]domain.VoteViewEntry)}
}

func (f *fakeViews) NextGeneration(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	return f.gen, nil
}

func (f *fakeViews) SetIfNewer(_ context.Context, entry domain.VoteViewEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cur, ok := f.entries[entry.VoteID]; ok && cur.Generation > entry.Generation {
		return domain.ErrStaleGeneration
	}
	f.entries[entry.VoteID] = entry
	return nil
}

func (f *fakeViews) Get(_ context.Context, voteID int64) (domain.VoteViewEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[voteID]
	if !ok {
		return domain.VoteViewEntry{}, domain.ErrNotFound
	}
	return entry, nil
}

func (f *fakeViews) Invalidate(_ context.Context, voteID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, voteID)
	return nil
}

type fakeBus struct {
	mu       sync.Mutex
	messages [][]byte
}

func (f *fakeBus) Publish(_ context.Context, _ string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, payload)
	return nil
}

func (f *fakeBus) Subscribe(context.Context, string) (<-chan []byte, error) {
	return nil, nil
}

type recordedEvent struct {
	event          notify.Event
	title, message string
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeNotifier) Notify(_ context.Context, event notify.Event, title, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{event, title, message})
	return nil
}

func testWatcher(lister *fakeLister, views *fakeViews, bus *fakeBus, notifier *fakeNotifier) *Watcher {
	return New(lister, views, bus, nil, notifier,
		time.Second, 100, slog.New(slog.DiscardHandler))
}

func openVote(id int64, title string) domain.Vote {
	return domain.Vote{
		ID: id, Title: title, Status: domain.VoteStatusOpen,
		Options: []domain.VoteOption{{
			ID: 1, Title: "Outcome",
			Choices: []domain.VoteChoice{
				{ID: 10, Text: "YES", ParticipantsCount: 3},
				{ID: 11, Text: "NO", ParticipantsCount: 1},
			},
		}},
	}
}

func TestCycleRefreshesOpenVotes(t *testing.T) {
	lister := &fakeLister{votes: []domain.Vote{
		openVote(1, "first"),
		{ID: 2, Title: "closed", Status: domain.VoteStatusFinished},
	}}
	views := newFakeViews()
	bus := &fakeBus{}
	w := testWatcher(lister, views, bus, nil)

	require.NoError(t, w.RunCycle(context.Background()))

	entry, err := views.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), entry.Generation)
	assert.NotEmpty(t, entry.Payload)

	// Closed votes are not refreshed.
	_, err = views.Get(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.Len(t, bus.messages, 1)
	var sig RefreshSignal
	require.NoError(t, json.Unmarshal(bus.messages[0], &sig))
	assert.Equal(t, int64(1), sig.VoteID)
	assert.Equal(t, uint64(1), sig.Generation)
}

func TestGenerationsIncreasePerCycle(t *testing.T) {
	lister := &fakeLister{votes: []domain.Vote{openVote(1, "v")}}
	views := newFakeViews()
	w := testWatcher(lister, views, &fakeBus{}, nil)

	require.NoError(t, w.RunCycle(context.Background()))
	require.NoError(t, w.RunCycle(context.Background()))

	entry, err := views.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), entry.Generation)
}

func TestStaleWriteIsNotAnError(t *testing.T) {
	lister := &fakeLister{votes: []domain.Vote{openVote(1, "v")}}
	views := newFakeViews()
	// A racing instance already wrote a newer generation for this vote.
	require.NoError(t, views.SetIfNewer(context.Background(), domain.VoteViewEntry{
		VoteID: 1, Generation: 99, Payload: []byte("{}"),
	}))
	w := testWatcher(lister, views, &fakeBus{}, nil)

	require.NoError(t, w.RunCycle(context.Background()))

	entry, err := views.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), entry.Generation, "newer entry must survive")
}

func TestGenerationsContinueAfterRestart(t *testing.T) {
	lister := &fakeLister{votes: []domain.Vote{openVote(1, "v")}}
	views := newFakeViews()
	// Cached state left by a previous process: the counter and the entry
	// both sit at generation 500.
	views.gen = 500
	require.NoError(t, views.SetIfNewer(context.Background(), domain.VoteViewEntry{
		VoteID: 1, Generation: 500, Payload: []byte(`{"stale":true}`),
	}))

	// A freshly started watcher must pick up the sequence, not restart it.
	w := testWatcher(lister, views, &fakeBus{}, nil)
	require.NoError(t, w.RunCycle(context.Background()))

	entry, err := views.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(501), entry.Generation)
	assert.NotContains(t, string(entry.Payload), "stale")
}

func TestStatusTransitionNotifies(t *testing.T) {
	lister := &fakeLister{votes: []domain.Vote{openVote(1, "match")}}
	notifier := &fakeNotifier{}
	w := testWatcher(lister, newFakeViews(), &fakeBus{}, notifier)

	require.NoError(t, w.RunCycle(context.Background()))
	assert.Empty(t, notifier.events, "first sighting records silently")

	lister.votes[0].Status = domain.VoteStatusFinished
	require.NoError(t, w.RunCycle(context.Background()))

	require.Len(t, notifier.events, 1)
	assert.Equal(t, notify.EventVoteFinished, notifier.events[0].event)
	assert.Contains(t, notifier.events[0].message, "match")

	// Unchanged status stays quiet.
	require.NoError(t, w.RunCycle(context.Background()))
	assert.Len(t, notifier.events, 1)
}

type fakeIssueLister struct {
	issues []domain.Issue
}

func (f *fakeIssueLister) ListIssues(context.Context) ([]domain.Issue, error) {
	return f.issues, nil
}

func TestNewPendingIssueNotifies(t *testing.T) {
	issues := &fakeIssueLister{issues: []domain.Issue{
		{ID: 1, Title: "old suggestion", Status: domain.IssueStatusPending},
	}}
	notifier := &fakeNotifier{}
	w := testWatcher(&fakeLister{}, newFakeViews(), &fakeBus{}, notifier)
	w.WatchIssues(issues)

	require.NoError(t, w.RunCycle(context.Background()))
	assert.Empty(t, notifier.events, "first cycle primes silently")

	issues.issues = append(issues.issues,
		domain.Issue{ID: 2, Title: "fresh suggestion", Nickname: "kim", Status: domain.IssueStatusPending},
		domain.Issue{ID: 3, Title: "already handled", Status: domain.IssueStatusApproved},
	)
	require.NoError(t, w.RunCycle(context.Background()))

	require.Len(t, notifier.events, 1)
	assert.Equal(t, notify.EventIssuePending, notifier.events[0].event)
	assert.Contains(t, notifier.events[0].message, "fresh suggestion")

	// Known issues never re-notify.
	require.NoError(t, w.RunCycle(context.Background()))
	assert.Len(t, notifier.events, 1)
}
