package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	name   string
	err    error
	events []Event
}

func (r *recordingSender) Send(_ context.Context, event Event, _, _ string) error {
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingSender) Name() string { return r.name }

func TestNotifierFiltersByEvent(t *testing.T) {
	sender := &recordingSender{name: "rec"}
	n := NewNotifier([]Sender{sender}, []string{"vote.finished", "issue.pending"},
		slog.New(slog.DiscardHandler))

	require.NoError(t, n.Notify(context.Background(), EventVoteOpened, "t", "m"))
	require.NoError(t, n.Notify(context.Background(), EventVoteFinished, "t", "m"))
	require.NoError(t, n.Notify(context.Background(), EventIssuePending, "t", "m"))

	assert.Equal(t, []Event{EventVoteFinished, EventIssuePending}, sender.events)
}

func TestNotifierEmptyAllowListPassesEverything(t *testing.T) {
	sender := &recordingSender{name: "rec"}
	n := NewNotifier([]Sender{sender}, nil, slog.New(slog.DiscardHandler))

	require.NoError(t, n.Notify(context.Background(), EventVoteRewarded, "t", "m"))
	assert.Equal(t, []Event{EventVoteRewarded}, sender.events)
}

func TestNotifierDeliversPastFailingSender(t *testing.T) {
	broken := &recordingSender{name: "broken", err: errors.New("webhook down")}
	healthy := &recordingSender{name: "healthy"}
	n := NewNotifier([]Sender{broken, healthy}, nil, slog.New(slog.DiscardHandler))

	err := n.Notify(context.Background(), EventVoteResolved, "t", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	// The failure of one sender must not starve the other.
	assert.Equal(t, []Event{EventVoteResolved}, healthy.events)
}

func TestDiscordSenderPostsEventColoredEmbed(t *testing.T) {
	var got discordPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sender := NewDiscordSender(srv.URL)
	require.NoError(t, sender.Send(context.Background(), EventVoteRewarded, "Vote REWARDED", "points settled"))

	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "Vote REWARDED", got.Embeds[0].Title)
	assert.Equal(t, "points settled", got.Embeds[0].Description)
	wantColor, _ := EventVoteRewarded.accent()
	assert.Equal(t, wantColor, got.Embeds[0].Color)
}

func TestDiscordSenderSurfacesWebhookError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid webhook token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := NewDiscordSender(srv.URL)
	err := sender.Send(context.Background(), EventVoteOpened, "t", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
