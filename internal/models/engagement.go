package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewDB represents a movie_reviews row
type ReviewDB struct {
	ReviewID  uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	MovieID   int64     `db:"movie_id"`
	Rating    *float64  `db:"rating"`
	Review    *string   `db:"review"`
	AddedDate time.Time `db:"added_date"`
}

// ReviewView is a review joined with its author's display fields.
type ReviewView struct {
	ReviewID  uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	MovieID   int64     `json:"movie_id" db:"movie_id"`
	Rating    *float64  `json:"rating,omitempty" db:"rating"`
	Review    *string   `json:"review,omitempty" db:"review"`
	AddedDate time.Time `json:"added_date" db:"added_date"`
	Username  string    `json:"username" db:"username"`
	Avatar    *string   `json:"avatar,omitempty" db:"avatar"`
}

// ReviewInput is a review submission. A resubmission replaces rating, text
// and date together.
type ReviewInput struct {
	MovieID   int64
	Rating    *float64
	Review    *string
	AddedDate time.Time
}

// MovieReport aggregates one user's engagement with one movie.
type MovieReport struct {
	MovieID     int64       `json:"movie_id"`
	Liked       bool        `json:"liked"`
	InWatchlist bool        `json:"inWatchlist"`
	Review      *ReviewView `json:"review,omitempty"`
}

// Engagement event actions
const (
	ActionWatchlistAdded   = "watchlist_added"
	ActionWatchlistRemoved = "watchlist_removed"
	ActionLikeAdded        = "like_added"
	ActionLikeRemoved      = "like_removed"
	ActionReviewUpserted   = "review_upserted"
)

// EngagementEvent is published after every successful engagement mutation.
type EngagementEvent struct {
	EventID   string `json:"event_id"`  // Unique identifier of the event
	UserID    string `json:"user_id"`   // Acting user
	MovieID   int64  `json:"movie_id"`  // External catalog key
	Action    string `json:"action"`    // One of the Action* constants
	Timestamp int64  `json:"timestamp"` // Unix seconds
}
