package model

import (
	"encoding/json"
	"time"
)

// Position is a saved board. FEN is opaque to the server.
type Position struct {
	ID        string    `json:"id" bson:"_id"`
	OwnerID   string    `json:"-" bson:"-"`
	FEN       string    `json:"fen" bson:"fen"`
	Title     string    `json:"title" bson:"title"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// MarshalJSON emits the identifier under both "_id" and "id"; existing clients read either.
func (p Position) MarshalJSON() ([]byte, error) {
	type wire struct {
		UnderscoreID string    `json:"_id"`
		ID           string    `json:"id"`
		FEN          string    `json:"fen"`
		Title        string    `json:"title"`
		CreatedAt    time.Time `json:"createdAt"`
	}
	return json.Marshal(wire{
		UnderscoreID: p.ID,
		ID:           p.ID,
		FEN:          p.FEN,
		Title:        p.Title,
		CreatedAt:    p.CreatedAt,
	})
}
