package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/server/middleware"
	"github.com/usyj/makgora-client/internal/service"
)

// StoreService defines what the store handler needs from the service layer.
type StoreService interface {
	Items(ctx context.Context, sessionID, category, itemType string) ([]domain.StoreItem, error)
	Item(ctx context.Context, sessionID string, itemID int64) (domain.StoreItem, error)
	Purchase(ctx context.Context, sessionID string, itemID int64) (service.PurchaseResult, error)
	MyItems(ctx context.Context, sessionID string) ([]domain.OwnedItem, error)
}

// StoreHandler serves the point-shop endpoints.
type StoreHandler struct {
	store  StoreService
	logger *slog.Logger
}

// NewStoreHandler creates a StoreHandler.
func NewStoreHandler(store StoreService, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{store: store, logger: logger}
}

// Items returns the catalogue, optionally filtered.
// GET /api/store/items?category=&type=
func (h *StoreHandler) Items(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Items(
		r.Context(),
		middleware.SessionID(r),
		r.URL.Query().Get("category"),
		r.URL.Query().Get("type"),
	)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Item returns one catalogue entry.
// GET /api/store/items/{id}
func (h *StoreHandler) Item(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	item, err := h.store.Item(r.Context(), middleware.SessionID(r), itemID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Purchase buys an item and returns the item plus the refreshed balance.
// POST /api/store/items/{id}/purchase
func (h *StoreHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	result, err := h.store.Purchase(r.Context(), middleware.SessionID(r), itemID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// MyItems returns the caller's inventory.
// GET /api/store/my-items
func (h *StoreHandler) MyItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.MyItems(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
