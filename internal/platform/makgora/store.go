package makgora

import (
	"context"
	"fmt"
	"net/url"

	"github.com/usyj/makgora-client/internal/domain"
)

// ListStoreItems returns purchasable items, optionally filtered by category
// and type.
func (c *Client) ListStoreItems(ctx context.Context, category, itemType string) ([]domain.StoreItem, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if itemType != "" {
		q.Set("type", itemType)
	}
	var out []domain.StoreItem
	if err := c.get(ctx, "/store/items", q, &out); err != nil {
		return nil, fmt.Errorf("list store items: %w", err)
	}
	return out, nil
}

// GetStoreItem returns one store item.
func (c *Client) GetStoreItem(ctx context.Context, itemID int64) (domain.StoreItem, error) {
	var out domain.StoreItem
	if err := c.get(ctx, fmt.Sprintf("/store/items/%d", itemID), nil, &out); err != nil {
		return domain.StoreItem{}, fmt.Errorf("get store item %d: %w", itemID, err)
	}
	return out, nil
}

// PurchaseItem spends the caller's points on an item. The backend rejects
// duplicate purchases and insufficient balances.
func (c *Client) PurchaseItem(ctx context.Context, itemID int64) (domain.OwnedItem, error) {
	var out domain.OwnedItem
	if err := c.post(ctx, "/store/purchase", domain.PurchaseRequest{ItemID: itemID}, &out); err != nil {
		return domain.OwnedItem{}, fmt.Errorf("purchase item %d: %w", itemID, err)
	}
	return out, nil
}

// MyItems returns the caller's owned items.
func (c *Client) MyItems(ctx context.Context) ([]domain.OwnedItem, error) {
	var out []domain.OwnedItem
	if err := c.get(ctx, "/store/my-items", nil, &out); err != nil {
		return nil, fmt.Errorf("list my items: %w", err)
	}
	return out, nil
}
