// Package watcher polls open votes on a fixed interval, recomputes their
// display aggregates and pushes refresh signals to connected clients. Each
// cycle is stamped with a generation drawn from the view cache's shared
// counter; the cache rejects writes from an older cycle, so neither a
// stalled poll nor a freshly restarted instance can overwrite or get stuck
// behind a fresher result.
package watcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/notify"
	"github.com/usyj/makgora-client/internal/voteview"
)

// RefreshChannel is the signal-bus channel refresh signals are published on.
const RefreshChannel = "vote:refresh"

// cycleLockKey guards a poll cycle across gateway instances.
const cycleLockKey = "watcher:cycle"

// VoteLister is the slice of the platform client the watcher reads with.
type VoteLister interface {
	ListVotes(ctx context.Context) ([]domain.Vote, error)
	GetVoteDetail(ctx context.Context, voteID int64) (domain.Vote, error)
}

// IssueLister reads user-submitted issue suggestions.
type IssueLister interface {
	ListIssues(ctx context.Context) ([]domain.Issue, error)
}

// Notifier receives vote lifecycle and issue events.
type Notifier interface {
	Notify(ctx context.Context, event notify.Event, title, message string) error
}

// RefreshSignal is the payload published for every refreshed vote.
type RefreshSignal struct {
	VoteID     int64             `json:"voteId"`
	Generation uint64            `json:"generation"`
	Status     domain.VoteStatus `json:"status"`
}

// Watcher runs the refresh loop.
type Watcher struct {
	client   VoteLister
	views    domain.ViewCache
	bus      domain.SignalBus
	locks    domain.LockManager
	notifier Notifier
	logger   *slog.Logger

	interval time.Duration
	maxVotes int

	issues      IssueLister
	knownIssues map[int64]struct{}

	lastStatus map[int64]domain.VoteStatus
}

// New creates a Watcher. locks and notifier may be nil; locking then falls
// back to single-instance operation and transitions are only logged.
func New(client VoteLister, views domain.ViewCache, bus domain.SignalBus, locks domain.LockManager, notifier Notifier, interval time.Duration, maxVotes int, logger *slog.Logger) *Watcher {
	return &Watcher{
		client:     client,
		views:      views,
		bus:        bus,
		locks:      locks,
		notifier:   notifier,
		logger:     logger.With(slog.String("component", "watcher")),
		interval:   interval,
		maxVotes:   maxVotes,
		lastStatus: make(map[int64]domain.VoteStatus),
	}
}

// WatchIssues enables issue polling: each cycle lists issue suggestions and
// notifies on ones not seen before. The first cycle only primes the seen set.
func (w *Watcher) WatchIssues(l IssueLister) {
	w.issues = l
}

// RunLoop polls on a repeating interval until the context is cancelled.
func (w *Watcher) RunLoop(ctx context.Context) error {
	// Run immediately on start.
	if err := w.RunCycle(ctx); err != nil {
		w.logger.Error("watch cycle failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := w.RunCycle(ctx); err != nil {
				w.logger.Error("watch cycle failed", slog.String("error", err.Error()))
			}
		}
	}
}

// RunCycle executes one poll: list votes, refresh each open one, detect
// status transitions. The cycle is skipped when another instance holds the
// cycle lock.
func (w *Watcher) RunCycle(ctx context.Context) error {
	if w.locks != nil {
		unlock, err := w.locks.Acquire(ctx, cycleLockKey, w.interval)
		if err != nil {
			if errors.Is(err, domain.ErrLockHeld) {
				w.logger.Debug("cycle already running elsewhere")
				return nil
			}
			return fmt.Errorf("watcher: acquire cycle lock: %w", err)
		}
		defer unlock()
	}

	// Generations come from the view cache itself, so the sequence
	// continues across restarts and stays coherent when several
	// instances take turns at the cycle lock.
	gen, err := w.views.NextGeneration(ctx)
	if err != nil {
		return fmt.Errorf("watcher: next generation: %w", err)
	}

	votes, err := w.client.ListVotes(ctx)
	if err != nil {
		return fmt.Errorf("watcher: list votes: %w", err)
	}

	refreshed := 0
	for _, v := range votes {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("watcher: cycle cancelled: %w", err)
		}
		w.detectTransition(ctx, v)
		if v.Status != domain.VoteStatusOpen {
			continue
		}
		if w.maxVotes > 0 && refreshed >= w.maxVotes {
			break
		}
		if err := w.refresh(ctx, gen, v.ID); err != nil {
			w.logger.Warn("vote refresh failed",
				slog.Int64("vote_id", v.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		refreshed++
	}

	w.checkIssues(ctx)

	w.logger.Info("watch cycle complete",
		slog.Uint64("generation", gen),
		slog.Int("refreshed", refreshed),
		slog.Int("votes", len(votes)),
	)
	return nil
}

// refresh fetches one vote, rebuilds its view and publishes the refresh
// signal. A stale-generation rejection means a newer cycle already wrote
// this vote; that is expected, not an error.
func (w *Watcher) refresh(ctx context.Context, gen uint64, voteID int64) error {
	vote, err := w.client.GetVoteDetail(ctx, voteID)
	if err != nil {
		return fmt.Errorf("fetch vote %d: %w", voteID, err)
	}

	payload, err := json.Marshal(voteview.Build(vote))
	if err != nil {
		return fmt.Errorf("marshal view for vote %d: %w", voteID, err)
	}

	err = w.views.SetIfNewer(ctx, domain.VoteViewEntry{
		VoteID:     voteID,
		Generation: gen,
		Payload:    payload,
		UpdatedAt:  time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrStaleGeneration) {
			w.logger.Debug("stale cycle write skipped",
				slog.Int64("vote_id", voteID),
				slog.Uint64("generation", gen),
			)
			return nil
		}
		return fmt.Errorf("cache view for vote %d: %w", voteID, err)
	}

	signal, err := json.Marshal(RefreshSignal{VoteID: voteID, Generation: gen, Status: vote.Status})
	if err != nil {
		return fmt.Errorf("marshal signal for vote %d: %w", voteID, err)
	}
	if err := w.bus.Publish(ctx, RefreshChannel, signal); err != nil {
		return fmt.Errorf("publish refresh for vote %d: %w", voteID, err)
	}
	return nil
}

// checkIssues lists issue suggestions and notifies on newly appeared ones.
// Listing failures are logged at warn; issue polling never fails a cycle.
func (w *Watcher) checkIssues(ctx context.Context) {
	if w.issues == nil {
		return
	}

	issues, err := w.issues.ListIssues(ctx)
	if err != nil {
		w.logger.Warn("issue poll failed", slog.String("error", err.Error()))
		return
	}

	priming := w.knownIssues == nil
	if priming {
		w.knownIssues = make(map[int64]struct{}, len(issues))
	}
	for _, issue := range issues {
		if _, seen := w.knownIssues[issue.ID]; seen {
			continue
		}
		w.knownIssues[issue.ID] = struct{}{}
		if priming || issue.Status != domain.IssueStatusPending {
			continue
		}

		w.logger.Info("new issue submitted",
			slog.Int64("issue_id", issue.ID),
			slog.String("title", issue.Title),
		)
		if w.notifier == nil {
			continue
		}
		message := fmt.Sprintf("%s (#%d) by %s", issue.Title, issue.ID, issue.Nickname)
		if err := w.notifier.Notify(ctx, notify.EventIssuePending, "New issue suggestion", message); err != nil {
			w.logger.Warn("issue notification failed",
				slog.Int64("issue_id", issue.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// detectTransition compares a vote's status against the previous cycle and
// emits a notification on change. The first sighting of a vote records the
// status silently.
func (w *Watcher) detectTransition(ctx context.Context, v domain.Vote) {
	prev, seen := w.lastStatus[v.ID]
	w.lastStatus[v.ID] = v.Status
	if !seen || prev == v.Status {
		return
	}

	w.logger.Info("vote status changed",
		slog.Int64("vote_id", v.ID),
		slog.String("from", string(prev)),
		slog.String("to", string(v.Status)),
	)
	if w.notifier == nil {
		return
	}

	event := statusEvent(v.Status)
	if event == "" {
		return
	}
	title := fmt.Sprintf("Vote %s", v.Status)
	message := fmt.Sprintf("%s (#%d): %s -> %s", v.Title, v.ID, prev, v.Status)
	if err := w.notifier.Notify(ctx, event, title, message); err != nil {
		w.logger.Warn("transition notification failed",
			slog.Int64("vote_id", v.ID),
			slog.String("error", err.Error()),
		)
	}
}

func statusEvent(s domain.VoteStatus) notify.Event {
	switch s {
	case domain.VoteStatusOpen:
		return notify.EventVoteOpened
	case domain.VoteStatusFinished:
		return notify.EventVoteFinished
	case domain.VoteStatusResolved:
		return notify.EventVoteResolved
	case domain.VoteStatusRewarded:
		return notify.EventVoteRewarded
	}
	return ""
}
