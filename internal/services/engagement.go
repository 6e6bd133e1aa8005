package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"github.com/sbilibin2017/gw-movie-tracker/internal/result"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

//go:generate mockgen -source=engagement.go -destination=engagement_mock.go -package=services

const (
	msgReviewFetchFailed = "Couldn't fetch movie review data."
	msgReviewsFailed     = "Error fetching reviews."
)

// MovieSetStore is a per-user set of movie ids (watchlist or likes).
type MovieSetStore interface {
	Exists(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error)
	Add(ctx context.Context, userID uuid.UUID, movieID int64) error
	Remove(ctx context.Context, userID uuid.UUID, movieID int64) (int64, error)
	ListMovieIDs(ctx context.Context, userID uuid.UUID) ([]int64, error)
}

// ReviewStore persists reviews. GetWithAuthor reports absence as (nil, nil).
type ReviewStore interface {
	Exists(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error)
	Upsert(ctx context.Context, review models.ReviewDB) error
	GetWithAuthor(ctx context.Context, userID uuid.UUID, movieID int64) (*models.ReviewView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ReviewView, error)
	ListByMovie(ctx context.Context, movieID int64) ([]models.ReviewView, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// movieSet binds a MovieSetStore to the wording and event names of one
// engagement collection.
type movieSet struct {
	name          string
	store         MovieSetStore
	addedMsg      string
	presentMsg    string
	addFailedMsg  string
	listFailedMsg string
	addedAction   string
	removedAction string
}

// EngagementService owns watchlists, likes and reviews.
type EngagementService struct {
	watchlist   movieSet
	likes       movieSet
	reviews     ReviewStore
	kafkaWriter KafkaWriter
	log         *zap.SugaredLogger
}

// NewEngagementService creates a new EngagementService. kafkaWriter may be nil.
func NewEngagementService(
	watchlist MovieSetStore,
	likes MovieSetStore,
	reviews ReviewStore,
	kafkaWriter KafkaWriter,
	log *zap.SugaredLogger,
) *EngagementService {
	return &EngagementService{
		watchlist: movieSet{
			name:          "watchlist",
			store:         watchlist,
			addedMsg:      "Movie added to watchlist.",
			presentMsg:    "Movie already in watchlist.",
			addFailedMsg:  "Error adding movie to watchlist.",
			listFailedMsg: "Error fetching watchlist. Try again later.",
			addedAction:   models.ActionWatchlistAdded,
			removedAction: models.ActionWatchlistRemoved,
		},
		likes: movieSet{
			name:          "likes",
			store:         likes,
			addedMsg:      "Movie liked.",
			presentMsg:    "Movie already liked.",
			addFailedMsg:  "Error liking movie.",
			listFailedMsg: "Error fetching liked movies. Try again later.",
			addedAction:   models.ActionLikeAdded,
			removedAction: models.ActionLikeRemoved,
		},
		reviews:     reviews,
		kafkaWriter: kafkaWriter,
		log:         log,
	}
}

// IsInWatchlist reports whether the movie is on the user's watchlist.
// Storage faults read as "not present".
func (s *EngagementService) IsInWatchlist(ctx context.Context, userID uuid.UUID, movieID int64) bool {
	return s.contains(ctx, s.watchlist, userID, movieID)
}

// AddToWatchlist adds the movie; adding it twice succeeds without a duplicate.
func (s *EngagementService) AddToWatchlist(ctx context.Context, userID uuid.UUID, movieID int64) result.Result[models.Ack] {
	return s.add(ctx, s.watchlist, userID, movieID)
}

// RemoveFromWatchlist reports whether the delete ran without a storage error.
func (s *EngagementService) RemoveFromWatchlist(ctx context.Context, userID uuid.UUID, movieID int64) bool {
	return s.remove(ctx, s.watchlist, userID, movieID)
}

// ListWatchlist returns the user's watchlist in insertion order.
func (s *EngagementService) ListWatchlist(ctx context.Context, userID uuid.UUID) result.Result[[]int64] {
	return s.list(ctx, s.watchlist, userID)
}

// IsLiked reports whether the user liked the movie. Storage faults read as
// "not liked".
func (s *EngagementService) IsLiked(ctx context.Context, userID uuid.UUID, movieID int64) bool {
	return s.contains(ctx, s.likes, userID, movieID)
}

// AddToLikes likes the movie; liking it twice succeeds without a duplicate.
func (s *EngagementService) AddToLikes(ctx context.Context, userID uuid.UUID, movieID int64) result.Result[models.Ack] {
	return s.add(ctx, s.likes, userID, movieID)
}

// RemoveFromLikes reports whether the delete ran without a storage error.
func (s *EngagementService) RemoveFromLikes(ctx context.Context, userID uuid.UUID, movieID int64) bool {
	return s.remove(ctx, s.likes, userID, movieID)
}

// ListLikes returns the user's liked movies in insertion order.
func (s *EngagementService) ListLikes(ctx context.Context, userID uuid.UUID) result.Result[[]int64] {
	return s.list(ctx, s.likes, userID)
}

// UpsertReview stores the user's review of in.MovieID, replacing rating, text
// and date of an existing one. A zero AddedDate means now.
func (s *EngagementService) UpsertReview(ctx context.Context, in models.ReviewInput, userID uuid.UUID) bool {
	addedDate := in.AddedDate
	if addedDate.IsZero() {
		addedDate = time.Now().UTC()
	}

	err := s.reviews.Upsert(ctx, models.ReviewDB{
		ReviewID:  uuid.New(),
		UserID:    userID,
		MovieID:   in.MovieID,
		Rating:    in.Rating,
		Review:    in.Review,
		AddedDate: addedDate,
	})
	if err != nil {
		s.log.Errorw("failed to upsert review", "userID", userID, "movieID", in.MovieID, "error", err)
		return false
	}

	s.publishEvent(ctx, userID, in.MovieID, models.ActionReviewUpserted)
	return true
}

// GetReview reports whether the user has reviewed the movie.
func (s *EngagementService) GetReview(ctx context.Context, userID uuid.UUID, movieID int64) bool {
	exists, err := s.reviews.Exists(ctx, userID, movieID)
	if err != nil {
		s.log.Errorw("failed to check review", "userID", userID, "movieID", movieID, "error", err)
		return false
	}
	return exists
}

// ListReviewsByUser returns the user's reviews, newest first.
func (s *EngagementService) ListReviewsByUser(ctx context.Context, userID uuid.UUID) result.Result[[]models.ReviewView] {
	reviews, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		s.log.Errorw("failed to list user reviews", "userID", userID, "error", err)
		return result.Fail[[]models.ReviewView](result.Internal(msgReviewsFailed))
	}
	return result.Ok(reviews)
}

// ListReviewsByMovie returns every review of the movie, newest first.
func (s *EngagementService) ListReviewsByMovie(ctx context.Context, movieID int64) result.Result[[]models.ReviewView] {
	reviews, err := s.reviews.ListByMovie(ctx, movieID)
	if err != nil {
		s.log.Errorw("failed to list movie reviews", "movieID", movieID, "error", err)
		return result.Fail[[]models.ReviewView](result.Internal(msgReviewsFailed))
	}
	return result.Ok(reviews)
}

// MovieReport aggregates likes, watchlist membership and the review of one
// movie for one user. A missing review leaves Review nil.
func (s *EngagementService) MovieReport(ctx context.Context, userID uuid.UUID, movieID int64) result.Result[models.MovieReport] {
	report := models.MovieReport{
		MovieID: movieID,
		Liked:   s.IsLiked(ctx, userID, movieID),
	}

	if s.GetReview(ctx, userID, movieID) {
		review, err := s.reviews.GetWithAuthor(ctx, userID, movieID)
		if err != nil {
			s.log.Errorw("failed to get review", "userID", userID, "movieID", movieID, "error", err)
			return result.Fail[models.MovieReport](result.Internal(msgReviewFetchFailed))
		}
		report.Review = review
	}

	report.InWatchlist = s.IsInWatchlist(ctx, userID, movieID)

	return result.Ok(report)
}

func (s *EngagementService) contains(ctx context.Context, set movieSet, userID uuid.UUID, movieID int64) bool {
	exists, err := set.store.Exists(ctx, userID, movieID)
	if err != nil {
		s.log.Errorw("failed to check membership", "set", set.name, "userID", userID, "movieID", movieID, "error", err)
		return false
	}
	return exists
}

func (s *EngagementService) add(ctx context.Context, set movieSet, userID uuid.UUID, movieID int64) result.Result[models.Ack] {
	if s.contains(ctx, set, userID, movieID) {
		return result.Ok(models.Ack{Message: set.presentMsg})
	}

	if err := set.store.Add(ctx, userID, movieID); err != nil {
		s.log.Errorw("failed to add movie", "set", set.name, "userID", userID, "movieID", movieID, "error", err)
		return result.Fail[models.Ack](result.Internal(set.addFailedMsg))
	}

	s.publishEvent(ctx, userID, movieID, set.addedAction)
	return result.Ok(models.Ack{Message: set.addedMsg, Changed: true})
}

func (s *EngagementService) remove(ctx context.Context, set movieSet, userID uuid.UUID, movieID int64) bool {
	removed, err := set.store.Remove(ctx, userID, movieID)
	if err != nil {
		s.log.Errorw("failed to remove movie", "set", set.name, "userID", userID, "movieID", movieID, "error", err)
		return false
	}

	if removed > 0 {
		s.publishEvent(ctx, userID, movieID, set.removedAction)
	}
	return true
}

func (s *EngagementService) list(ctx context.Context, set movieSet, userID uuid.UUID) result.Result[[]int64] {
	movieIDs, err := set.store.ListMovieIDs(ctx, userID)
	if err != nil {
		s.log.Errorw("failed to list movies", "set", set.name, "userID", userID, "error", err)
		return result.Fail[[]int64](result.Internal(set.listFailedMsg))
	}
	return result.Ok(movieIDs)
}

// publishEvent publishes an engagement event to Kafka. Failures are logged
// and never affect the outcome of the mutation.
func (s *EngagementService) publishEvent(ctx context.Context, userID uuid.UUID, movieID int64, action string) {
	event := models.EngagementEvent{
		EventID:   uuid.NewString(),
		UserID:    userID.String(),
		MovieID:   movieID,
		Action:    action,
		Timestamp: time.Now().Unix(),
	}

	if s.kafkaWriter == nil {
		s.log.Debugw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.log.Errorw("Failed to marshal engagement event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		s.log.Errorw("Failed to publish engagement event", "event_id", event.EventID, "error", err)
	} else {
		s.log.Infow("Engagement event published", "event_id", event.EventID, "action", action)
	}
}
