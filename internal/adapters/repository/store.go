// Package repository keeps scored moments and ranks players by momentum shift.
package repository

import (
	"context"

	"github.com/okian/momentum/internal/domain/model"
)

// Entry is one leaderboard row: a player's score for one moment.
type Entry struct {
	Rank     int        `json:"rank"`
	MomentID string     `json:"moment_id"`
	Role     model.Role `json:"role"`
	Player   string     `json:"player_name"`
	Score    float64    `json:"mss"`
	GameDate string     `json:"game_date"`
	Event    string     `json:"event"`
}

// Store persists scored moments of type T and their leaderboard entries.
type Store[T any] interface {
	// Put stores value under id and replaces any earlier entries for id.
	Put(ctx context.Context, id string, value T, entries ...Entry) error

	// Get returns the value stored under id, or ErrNotFound.
	Get(ctx context.Context, id string) (T, error)

	// TopN returns up to n entries for role ordered by score desc.
	TopN(ctx context.Context, role model.Role, n int) ([]Entry, error)

	// Count returns the number of stored moments.
	Count(ctx context.Context) int
}
