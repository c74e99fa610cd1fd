package notify

// Event identifies what happened on the platform. Operators list the ones
// they want in the [notify] config section; an empty list forwards
// everything.
type Event string

const (
	// EventVoteOpened fires when a vote first appears as OPEN.
	EventVoteOpened Event = "vote.opened"
	// EventVoteFinished fires when betting closes.
	EventVoteFinished Event = "vote.finished"
	// EventVoteResolved fires when the correct choice is picked.
	EventVoteResolved Event = "vote.resolved"
	// EventVoteRewarded fires when points are settled.
	EventVoteRewarded Event = "vote.rewarded"
	// EventIssuePending fires when a user submits a new issue suggestion.
	EventIssuePending Event = "issue.pending"
)

// accent returns the per-event rendering hints the senders share: an embed
// color for Discord and a symbol prefix for Telegram.
func (e Event) accent() (color int, symbol string) {
	switch e {
	case EventVoteOpened:
		return 0x2ecc71, "\U0001f7e2" // green
	case EventVoteFinished:
		return 0xe67e22, "\U0001f536" // orange
	case EventVoteResolved:
		return 0x3498db, "\U0001f537" // blue
	case EventVoteRewarded:
		return 0xf1c40f, "\U0001f4b0" // gold
	case EventIssuePending:
		return 0x9b59b6, "\U0001f4dd" // purple
	}
	return 0x95a5a6, "ℹ️" // grey
}
