package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/usyj/makgora-client/internal/server"
	"github.com/usyj/makgora-client/internal/server/handler"
	"github.com/usyj/makgora-client/internal/server/ws"
	"github.com/usyj/makgora-client/internal/watcher"
)

// ServeMode starts the HTTP gateway and the WebSocket hub, without the
// background vote watcher.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting serve mode")

	g, ctx := errgroup.WithContext(ctx)
	a.startGateway(ctx, g, deps)
	return g.Wait()
}

// WatchMode starts only the background vote watcher. Useful alongside a
// separate serve-mode process sharing the same Redis.
func (a *App) WatchMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting watch mode")

	g, ctx := errgroup.WithContext(ctx)
	a.startWatcher(ctx, g, deps)
	return g.Wait()
}

// FullMode starts everything: the gateway, the WebSocket hub and the vote
// watcher.
func (a *App) FullMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting full mode")

	g, ctx := errgroup.WithContext(ctx)
	if a.cfg.Server.Enabled {
		a.startGateway(ctx, g, deps)
	}
	if a.cfg.Watcher.Enabled {
		a.startWatcher(ctx, g, deps)
	}
	return g.Wait()
}

// startGateway wires the handlers, builds the HTTP server and the WebSocket
// hub, and registers both on the errgroup together with a shutdown watcher.
func (a *App) startGateway(ctx context.Context, g *errgroup.Group, deps *Dependencies) {
	hub := ws.NewHub(deps.SignalBus, a.logger, ws.Config{
		Mode:      a.cfg.Mode,
		StartedAt: time.Now().UTC(),
	})
	g.Go(func() error {
		return hub.Run(ctx)
	})

	cookie := handler.CookieConfig{
		Name:   a.cfg.Session.CookieName,
		Secure: a.cfg.Session.CookieSecure,
		TTL:    a.cfg.Session.TTL.Duration,
	}

	handlers := server.Handlers{
		Health:    handler.NewHealthHandler(a.logger),
		Auth:      handler.NewAuthHandler(deps.Auth, cookie, a.logger),
		Votes:     handler.NewVoteHandler(deps.Votes, a.logger),
		Comments:  handler.NewCommentHandler(deps.Comments, a.logger),
		Articles:  handler.NewArticleHandler(deps.Articles, deps.Comments, a.logger),
		Store:     handler.NewStoreHandler(deps.Store, a.logger),
		Rankings:  handler.NewRankingHandler(deps.Rankings, a.logger),
		Community: handler.NewCommunityHandler(deps.Community, a.logger),
		Profile:   handler.NewProfileHandler(deps.Profile, a.logger),
		Admin:     handler.NewAdminHandler(deps.Admin, a.logger),
	}

	srv := server.NewServer(server.Config{
		Port:            a.cfg.Server.Port,
		CORSOrigins:     a.cfg.Server.CORSOrigins,
		CookieName:      a.cfg.Session.CookieName,
		RateLimit:       a.cfg.Server.RateLimit,
		RateLimitWindow: time.Minute,
	}, handlers, deps.Sessions, deps.RateLimiter, hub, a.logger)

	g.Go(srv.Start)

	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
}

// startWatcher registers the open-vote refresh loop on the errgroup.
func (a *App) startWatcher(ctx context.Context, g *errgroup.Group, deps *Dependencies) {
	w := watcher.New(
		deps.Anonymous,
		deps.ViewCache,
		deps.SignalBus,
		deps.LockManager,
		deps.Notifier,
		a.cfg.Watcher.Interval.Duration,
		a.cfg.Watcher.MaxVotes,
		a.logger,
	)
	w.WatchIssues(deps.Anonymous)
	g.Go(func() error {
		return w.RunLoop(ctx)
	})
}
