package domain

import "time"

// Note is a free-text annotation attached to an item.
type Note struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
