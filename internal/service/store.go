package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/session"
)

// PurchaseResult is what a buy returns: the new item and the refreshed
// profile, so the UI can show the updated point balance immediately.
type PurchaseResult struct {
	Item domain.OwnedItem `json:"item"`
	User domain.User      `json:"user"`
}

// StoreService serves the point store.
type StoreService struct {
	clients  *Clients
	sessions *session.Manager
	log      *slog.Logger
}

// NewStoreService wires a StoreService.
func NewStoreService(clients *Clients, sessions *session.Manager, logger *slog.Logger) *StoreService {
	return &StoreService{
		clients:  clients,
		sessions: sessions,
		log:      logger.With("component", "store"),
	}
}

// Items lists purchasable items, optionally filtered.
func (s *StoreService) Items(ctx context.Context, sessionID, category, itemType string) ([]domain.StoreItem, error) {
	return s.clients.For(sessionID).ListStoreItems(ctx, category, itemType)
}

// Item returns one store item.
func (s *StoreService) Item(ctx context.Context, sessionID string, itemID int64) (domain.StoreItem, error) {
	return s.clients.For(sessionID).GetStoreItem(ctx, itemID)
}

// Purchase buys an item and re-fetches the profile for the new balance.
// Duplicate purchases and insufficient points are backend rejections and
// surface with the backend's message.
func (s *StoreService) Purchase(ctx context.Context, sessionID string, itemID int64) (PurchaseResult, error) {
	client := s.clients.For(sessionID)

	item, err := client.PurchaseItem(ctx, itemID)
	if err != nil {
		return PurchaseResult{}, fmt.Errorf("store: purchase %d: %w", itemID, err)
	}

	user, err := client.Me(ctx)
	if err != nil {
		return PurchaseResult{}, fmt.Errorf("store: refresh profile after purchase: %w", err)
	}
	if err := s.sessions.UpdateUser(ctx, sessionID, user); err != nil {
		s.log.Warn("session profile update failed", "session_id", sessionID, "error", err)
	}
	return PurchaseResult{Item: item, User: user}, nil
}

// MyItems lists the caller's owned items.
func (s *StoreService) MyItems(ctx context.Context, sessionID string) ([]domain.OwnedItem, error) {
	return s.clients.For(sessionID).MyItems(ctx)
}
