package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/server/handler"
	"github.com/usyj/makgora-client/internal/server/middleware"
	"github.com/usyj/makgora-client/internal/server/ws"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port            int
	CORSOrigins     []string
	CookieName      string
	RateLimit       int // requests per window per client IP; 0 disables
	RateLimitWindow time.Duration
}

// Handlers aggregates all HTTP handlers that the server needs to register.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Votes     *handler.VoteHandler
	Comments  *handler.CommentHandler
	Articles  *handler.ArticleHandler
	Store     *handler.StoreHandler
	Rankings  *handler.RankingHandler
	Community *handler.CommunityHandler
	Profile   *handler.ProfileHandler
	Admin     *handler.AdminHandler
}

// Server is the headless HTTP + WebSocket gateway for the voting platform.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	logger     *slog.Logger
}

// NewServer creates a Server with all routes registered on the ServeMux and
// wires the middleware chain: CORS, request logging, session resolution and
// rate limiting. The WebSocket hub attaches at /ws.
func NewServer(cfg Config, handlers Handlers, sessions middleware.SessionResolver, limiter domain.RateLimiter, wsHub *ws.Hub, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	// Health check.
	mux.HandleFunc("GET /api/health", handlers.Health.HealthCheck)

	// Auth and session.
	mux.HandleFunc("POST /api/auth/login", handlers.Auth.Login)
	mux.HandleFunc("POST /api/auth/register", handlers.Auth.Register)
	mux.HandleFunc("POST /api/auth/logout", handlers.Auth.Logout)
	mux.HandleFunc("GET /api/auth/session", handlers.Auth.Session)

	// AI votes.
	mux.HandleFunc("GET /api/votes", handlers.Votes.List)
	mux.HandleFunc("GET /api/votes/my", handlers.Votes.MyVotes)
	mux.HandleFunc("GET /api/votes/my/statistics", handlers.Votes.Statistics)
	mux.HandleFunc("GET /api/votes/{id}", handlers.Votes.Detail)
	mux.HandleFunc("GET /api/votes/{id}/betslip", handlers.Votes.Betslip)
	mux.HandleFunc("POST /api/votes/{id}/participate", handlers.Votes.Participate)
	mux.HandleFunc("PATCH /api/votes/{id}/participation", handlers.Votes.Cancel)

	// Survey votes.
	mux.HandleFunc("GET /api/normal-votes", handlers.Votes.ListNormal)
	mux.HandleFunc("POST /api/normal-votes", handlers.Votes.CreateNormal)
	mux.HandleFunc("GET /api/normal-votes/{id}", handlers.Votes.NormalDetail)
	mux.HandleFunc("PUT /api/normal-votes/{id}", handlers.Votes.UpdateNormal)
	mux.HandleFunc("DELETE /api/normal-votes/{id}", handlers.Votes.DeleteNormal)
	mux.HandleFunc("POST /api/normal-votes/{id}/participate", handlers.Votes.ParticipateNormal)
	mux.HandleFunc("POST /api/normal-votes/{id}/cancel", handlers.Votes.CancelNormal)

	// Vote discussion threads.
	mux.HandleFunc("GET /api/comments", handlers.Comments.Thread)
	mux.HandleFunc("POST /api/comments", handlers.Comments.Add)
	mux.HandleFunc("POST /api/comments/{id}/react", handlers.Comments.React)
	mux.HandleFunc("DELETE /api/comments/{id}", handlers.Comments.Delete)

	// News articles and their threads.
	mux.HandleFunc("GET /api/articles", handlers.Articles.List)
	mux.HandleFunc("GET /api/articles/{id}", handlers.Articles.Detail)
	mux.HandleFunc("POST /api/articles/{id}/reaction", handlers.Articles.React)
	mux.HandleFunc("POST /api/articles/{id}/comments", handlers.Articles.AddComment)
	mux.HandleFunc("PUT /api/articles/{id}/comments/{commentId}", handlers.Articles.UpdateComment)
	mux.HandleFunc("DELETE /api/articles/{id}/comments/{commentId}", handlers.Articles.DeleteComment)
	mux.HandleFunc("POST /api/articles/comments/{commentId}/reactions", handlers.Articles.ReactToComment)

	// Point shop.
	mux.HandleFunc("GET /api/store/items", handlers.Store.Items)
	mux.HandleFunc("GET /api/store/my-items", handlers.Store.MyItems)
	mux.HandleFunc("GET /api/store/items/{id}", handlers.Store.Item)
	mux.HandleFunc("POST /api/store/items/{id}/purchase", handlers.Store.Purchase)

	// Leaderboard.
	mux.HandleFunc("GET /api/rankings/top/{tab}", handlers.Rankings.Top)
	mux.HandleFunc("GET /api/rankings/me", handlers.Rankings.Mine)

	// Community board.
	mux.HandleFunc("GET /api/community/posts", handlers.Community.Posts)
	mux.HandleFunc("POST /api/community/posts", handlers.Community.Create)
	mux.HandleFunc("GET /api/community/posts/{id}", handlers.Community.Post)
	mux.HandleFunc("PUT /api/community/posts/{id}", handlers.Community.Update)
	mux.HandleFunc("DELETE /api/community/posts/{id}", handlers.Community.Delete)
	mux.HandleFunc("POST /api/community/posts/{id}/react", handlers.Community.React)

	// My page.
	mux.HandleFunc("GET /api/profile", handlers.Profile.Page)
	mux.HandleFunc("PUT /api/profile", handlers.Profile.Update)
	mux.HandleFunc("POST /api/profile/items/{id}/apply", handlers.Profile.ApplyItem)
	mux.HandleFunc("DELETE /api/profile/frame", handlers.Profile.ClearFrame)
	mux.HandleFunc("DELETE /api/profile/badge", handlers.Profile.ClearBadge)

	// Operator console.
	mux.HandleFunc("GET /api/admin/users", handlers.Admin.Users)
	mux.HandleFunc("POST /api/admin/users", handlers.Admin.CreateAdmin)
	mux.HandleFunc("GET /api/admin/users/{id}", handlers.Admin.User)
	mux.HandleFunc("PUT /api/admin/users/{id}", handlers.Admin.UpdateUser)
	mux.HandleFunc("GET /api/admin/feeds", handlers.Admin.Feeds)
	mux.HandleFunc("POST /api/admin/feeds", handlers.Admin.CreateFeed)
	mux.HandleFunc("GET /api/admin/feeds/categories", handlers.Admin.FeedCategories)
	mux.HandleFunc("POST /api/admin/feeds/collect", handlers.Admin.Collect)
	mux.HandleFunc("PUT /api/admin/feeds/{id}", handlers.Admin.UpdateFeed)
	mux.HandleFunc("DELETE /api/admin/feeds/{id}", handlers.Admin.DeleteFeed)
	mux.HandleFunc("GET /api/admin/issues", handlers.Admin.Issues)
	mux.HandleFunc("POST /api/admin/issues/status", handlers.Admin.SetIssueStatus)
	mux.HandleFunc("POST /api/admin/votes/{id}/finish", handlers.Admin.FinishVote)
	mux.HandleFunc("POST /api/admin/votes/{id}/resolve-and-settle", handlers.Admin.ResolveAndSettleVote)
	mux.HandleFunc("POST /api/admin/votes/{id}/settle", handlers.Admin.SettleVote)
	mux.HandleFunc("POST /api/admin/votes/{id}/open", handlers.Admin.ReopenVote)

	// WebSocket endpoint.
	if wsHub != nil {
		mux.HandleFunc("GET /ws", wsHub.HandleWS)
	}

	// Build the middleware chain, innermost first.
	var h http.Handler = mux

	if limiter != nil && cfg.RateLimit > 0 {
		h = middleware.RateLimit(limiter, cfg.RateLimit, cfg.RateLimitWindow)(h)
	}
	h = middleware.Session(sessions, cfg.CookieName)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.CORS(cfg.CORSOrigins)(h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: srv,
		mux:        mux,
		logger:     logger,
	}
}

// Start begins listening for HTTP requests. It blocks until the server
// encounters an error or is shut down.
func (s *Server) Start() error {
	s.logger.Info("server: starting",
		slog.String("addr", s.httpServer.Addr),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// to complete within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server: shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
