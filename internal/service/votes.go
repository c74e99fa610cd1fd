package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/usyj/makgora-client/internal/commentview"
	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/session"
	"github.com/usyj/makgora-client/internal/voteview"
)

// VoteDetail is the aggregated page model for one vote: the raw payload,
// the computed percentage view, the odds quote (AI votes) and the annotated
// comment thread.
type VoteDetail struct {
	Vote     domain.Vote        `json:"vote"`
	View     voteview.View      `json:"view"`
	Odds     domain.OddsQuote   `json:"odds"`
	Comments commentview.Thread `json:"comments"`
}

// VoteService serves vote pages and participation intents for both AI and
// survey votes.
type VoteService struct {
	clients  *Clients
	sessions *session.Manager
	views    domain.ViewCache
	log      *slog.Logger
}

// NewVoteService wires a VoteService. The view cache may be nil when the
// watcher is disabled; detail reads always hit the backend regardless.
func NewVoteService(clients *Clients, sessions *session.Manager, views domain.ViewCache, logger *slog.Logger) *VoteService {
	return &VoteService{
		clients:  clients,
		sessions: sessions,
		views:    views,
		log:      logger.With("component", "votes"),
	}
}

func (s *VoteService) viewerID(ctx context.Context, sessionID string) int64 {
	if sessionID == "" {
		return 0
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return 0
	}
	return sess.User.ID
}

// List returns all AI votes.
func (s *VoteService) List(ctx context.Context, sessionID string) ([]domain.Vote, error) {
	return s.clients.For(sessionID).ListVotes(ctx)
}

// Detail fetches the vote page: detail, odds and comments are retrieved
// concurrently, then aggregated. Odds are skipped for survey votes.
func (s *VoteService) Detail(ctx context.Context, sessionID string, voteID int64) (VoteDetail, error) {
	client := s.clients.For(sessionID)

	var out VoteDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := client.GetVoteDetail(gctx, voteID)
		if err != nil {
			return err
		}
		out.Vote = v
		return nil
	})
	g.Go(func() error {
		comments, err := client.VoteComments(gctx, voteID)
		if err != nil {
			return err
		}
		out.Comments = commentview.Annotate(comments, s.viewerID(gctx, sessionID))
		return nil
	})
	g.Go(func() error {
		quote, err := client.GetVoteOdds(gctx, voteID)
		if err != nil {
			// Survey votes have no odds endpoint; the page renders
			// without a quote.
			if domain.IsStatus(err, 404) {
				return nil
			}
			return err
		}
		out.Odds = quote
		return nil
	})
	if err := g.Wait(); err != nil {
		return VoteDetail{}, fmt.Errorf("votes: detail %d: %w", voteID, err)
	}

	out.View = voteview.Build(out.Vote)
	return out, nil
}

// Betslip projects a candidate wager using a fresh detail and odds quote.
func (s *VoteService) Betslip(ctx context.Context, sessionID string, voteID, choiceID, amount int64) (voteview.Betslip, error) {
	if amount <= 0 {
		return voteview.Betslip{}, fmt.Errorf("votes: betslip: amount must be positive")
	}
	client := s.clients.For(sessionID)

	var (
		vote  domain.Vote
		quote domain.OddsQuote
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := client.GetVoteDetail(gctx, voteID)
		if err != nil {
			return err
		}
		vote = v
		return nil
	})
	g.Go(func() error {
		q, err := client.GetVoteOdds(gctx, voteID)
		if err != nil {
			return err
		}
		quote = q
		return nil
	})
	if err := g.Wait(); err != nil {
		return voteview.Betslip{}, fmt.Errorf("votes: betslip for vote %d: %w", voteID, err)
	}

	if vote.Status.Closed() {
		return voteview.Betslip{}, domain.ErrVoteClosed
	}
	return voteview.BuildBetslip(vote, quote, choiceID, amount), nil
}

// Participate places a wager and returns the re-fetched page. The status
// check is pessimistic; the backend remains authoritative and its rejection
// message is surfaced verbatim.
func (s *VoteService) Participate(ctx context.Context, sessionID string, voteID int64, req domain.ParticipateRequest) (VoteDetail, error) {
	if req.Points <= 0 {
		return VoteDetail{}, fmt.Errorf("votes: participate: points must be positive")
	}
	client := s.clients.For(sessionID)

	if _, err := client.Participate(ctx, voteID, req); err != nil {
		return VoteDetail{}, fmt.Errorf("votes: participate in %d: %w", voteID, err)
	}
	s.invalidateView(ctx, voteID)
	return s.Detail(ctx, sessionID, voteID)
}

// Cancel withdraws the caller's wager and returns the re-fetched page.
func (s *VoteService) Cancel(ctx context.Context, sessionID string, voteID int64) (VoteDetail, error) {
	if err := s.clients.For(sessionID).CancelParticipation(ctx, voteID); err != nil {
		return VoteDetail{}, fmt.Errorf("votes: cancel %d: %w", voteID, err)
	}
	s.invalidateView(ctx, voteID)
	return s.Detail(ctx, sessionID, voteID)
}

// MyVotes returns the caller's participation history.
func (s *VoteService) MyVotes(ctx context.Context, sessionID string) ([]domain.Vote, error) {
	return s.clients.For(sessionID).MyVotes(ctx)
}

// Statistics returns the caller's aggregate betting record.
func (s *VoteService) Statistics(ctx context.Context, sessionID string) (domain.VoteStatistics, error) {
	return s.clients.For(sessionID).MyVoteStatistics(ctx)
}

// ListNormal returns all survey votes.
func (s *VoteService) ListNormal(ctx context.Context, sessionID string) ([]domain.Vote, error) {
	return s.clients.For(sessionID).ListNormalVotes(ctx)
}

// NormalDetail fetches a survey vote page: detail and comments in parallel,
// no odds.
func (s *VoteService) NormalDetail(ctx context.Context, sessionID string, voteID int64) (VoteDetail, error) {
	client := s.clients.For(sessionID)

	var out VoteDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := client.GetNormalVote(gctx, voteID)
		if err != nil {
			return err
		}
		out.Vote = v
		return nil
	})
	g.Go(func() error {
		comments, err := client.NormalVoteComments(gctx, voteID)
		if err != nil {
			return err
		}
		out.Comments = commentview.Annotate(comments, s.viewerID(gctx, sessionID))
		return nil
	})
	if err := g.Wait(); err != nil {
		return VoteDetail{}, fmt.Errorf("votes: normal detail %d: %w", voteID, err)
	}

	out.View = voteview.Build(out.Vote)
	return out, nil
}

// CreateNormal creates a survey vote.
func (s *VoteService) CreateNormal(ctx context.Context, sessionID string, req domain.NormalVoteCreateRequest) (domain.Vote, error) {
	return s.clients.For(sessionID).CreateNormalVote(ctx, req)
}

// UpdateNormal replaces a survey vote. The backend enforces authorship.
func (s *VoteService) UpdateNormal(ctx context.Context, sessionID string, voteID int64, req domain.NormalVoteCreateRequest) (domain.Vote, error) {
	vote, err := s.clients.For(sessionID).UpdateNormalVote(ctx, voteID, req)
	if err != nil {
		return domain.Vote{}, fmt.Errorf("votes: update normal %d: %w", voteID, err)
	}
	return vote, nil
}

// DeleteNormal removes a survey vote.
func (s *VoteService) DeleteNormal(ctx context.Context, sessionID string, voteID int64) error {
	if err := s.clients.For(sessionID).DeleteNormalVote(ctx, voteID); err != nil {
		return fmt.Errorf("votes: delete normal %d: %w", voteID, err)
	}
	return nil
}

// ParticipateNormal records a survey selection and returns the re-fetched
// page. Survey participation carries no points.
func (s *VoteService) ParticipateNormal(ctx context.Context, sessionID string, voteID int64, req domain.NormalParticipateRequest) (VoteDetail, error) {
	if _, err := s.clients.For(sessionID).ParticipateNormal(ctx, voteID, req); err != nil {
		return VoteDetail{}, fmt.Errorf("votes: participate in normal %d: %w", voteID, err)
	}
	return s.NormalDetail(ctx, sessionID, voteID)
}

// CancelNormal withdraws a survey selection and returns the re-fetched page.
func (s *VoteService) CancelNormal(ctx context.Context, sessionID string, voteID int64) (VoteDetail, error) {
	if err := s.clients.For(sessionID).CancelNormalParticipation(ctx, voteID); err != nil {
		return VoteDetail{}, fmt.Errorf("votes: cancel normal %d: %w", voteID, err)
	}
	return s.NormalDetail(ctx, sessionID, voteID)
}

func (s *VoteService) invalidateView(ctx context.Context, voteID int64) {
	if s.views == nil {
		return
	}
	if err := s.views.Invalidate(ctx, voteID); err != nil {
		s.log.Warn("view invalidation failed", "vote_id", voteID, "error", err)
	}
}
