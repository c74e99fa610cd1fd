package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/usyj/makgora-client/internal/cache/redis"
	"github.com/usyj/makgora-client/internal/config"
	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/notify"
	"github.com/usyj/makgora-client/internal/platform/makgora"
	"github.com/usyj/makgora-client/internal/service"
	"github.com/usyj/makgora-client/internal/session"
)

// Dependencies bundles every dependency that the application modes need to
// operate. It is constructed by Wire and torn down by the returned cleanup
// function.
type Dependencies struct {
	// Session state
	SessionStore domain.SessionStore
	Sessions     *session.Manager

	// Platform clients
	Clients *service.Clients
	// Anonymous is an unauthenticated client for public reads; the watcher
	// polls through it.
	Anonymous *makgora.Client

	// Caches
	ViewCache   domain.ViewCache
	RateLimiter domain.RateLimiter
	LockManager domain.LockManager
	SignalBus   domain.SignalBus

	// Services
	Auth      *service.AuthService
	Votes     *service.VoteService
	Comments  *service.CommentService
	Articles  *service.ArticleService
	Store     *service.StoreService
	Rankings  *service.RankingService
	Community *service.CommunityService
	Profile   *service.ProfileService
	Admin     *service.AdminService

	// Notifications
	Notifier *notify.Notifier
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that should
// be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{}

	// --- Redis ---
	redisClient, err := redis.New(ctx, redis.ClientConfig{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		PoolSize:   cfg.Redis.PoolSize,
		MaxRetries: cfg.Redis.MaxRetries,
		TLSEnabled: cfg.Redis.TLSEnabled,
		KeyPrefix:  cfg.Redis.KeyPrefix,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("wire: redis: %w", err)
	}
	closers = append(closers, func() { _ = redisClient.Close() })

	deps.SessionStore = redis.NewSessionStore(redisClient, cfg.Session.TTL.Duration)
	deps.ViewCache = redis.NewViewCache(redisClient)
	deps.RateLimiter = redis.NewRateLimiter(redisClient)
	deps.LockManager = redis.NewLockManager(redisClient)
	deps.SignalBus = redis.NewSignalBus(redisClient)

	// --- Sessions and platform clients ---
	deps.Sessions = session.NewManager(deps.SessionStore, logger)
	deps.Clients = service.NewClients(cfg.Backend.BaseURL, cfg.Backend.Timeout.Duration, deps.Sessions)
	deps.Anonymous = makgora.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout.Duration)

	// --- Services ---
	deps.Auth = service.NewAuthService(deps.Clients, deps.Sessions, logger)
	deps.Votes = service.NewVoteService(deps.Clients, deps.Sessions, deps.ViewCache, logger)
	deps.Comments = service.NewCommentService(deps.Clients, deps.Sessions, logger)
	deps.Articles = service.NewArticleService(deps.Clients, deps.Sessions, logger)
	deps.Store = service.NewStoreService(deps.Clients, deps.Sessions, logger)
	deps.Rankings = service.NewRankingService(deps.Clients)
	deps.Community = service.NewCommunityService(deps.Clients)
	deps.Profile = service.NewProfileService(deps.Clients, deps.Sessions, logger)
	deps.Admin = service.NewAdminService(deps.Clients, deps.Sessions, logger)

	// --- Notifications ---
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	deps.Notifier = notify.NewNotifier(senders, cfg.Notify.Events, logger)

	return deps, cleanup, nil
}
