package domain

import "time"

// StoreItem is a purchasable cosmetic in the points shop.
type StoreItem struct {
	ID          int64  `json:"itemId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"` // e.g. "FRAME", "BADGE", "ICON"
	Type        string `json:"type"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl"`
}

// OwnedItem is a store item the current user has purchased.
type OwnedItem struct {
	Item        StoreItem `json:"item"`
	PurchasedAt time.Time `json:"purchasedAt"`
	Applied     bool      `json:"applied"`
}

// PurchaseRequest buys a store item with points.
type PurchaseRequest struct {
	ItemID int64 `json:"itemId"`
}
