package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"github.com/google/uuid"
)

// MovieEvent는 카탈로그 변경 이벤트 기본 구조입니다
type MovieEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	MovieID   int64     `json:"movie_id"`
	Revision  int64     `json:"revision"`
}

// MovieCreatedEvent는 영화 생성 이벤트입니다
type MovieCreatedEvent struct {
	MovieEvent
	Movie entity.Movie `json:"movie"`
}

// MovieUpdatedEvent는 영화 수정 이벤트입니다
type MovieUpdatedEvent struct {
	MovieEvent
	Movie entity.Movie `json:"movie"`
}

// MovieDeletedEvent는 영화 삭제 이벤트입니다
type MovieDeletedEvent struct {
	MovieEvent
	DeletedAt time.Time `json:"deleted_at"`
}

// CatalogPublisher는 카탈로그 변경 이벤트를 Kafka에 발행합니다
type CatalogPublisher struct {
	producer     *Producer
	topicCreated string
	topicUpdated string
	topicDeleted string
}

// NewCatalogPublisher는 새로운 카탈로그 이벤트 발행자를 생성합니다
func NewCatalogPublisher(producer *Producer, topicCreated, topicUpdated, topicDeleted string) repository.CatalogEventPublisher {
	return &CatalogPublisher{
		producer:     producer,
		topicCreated: topicCreated,
		topicUpdated: topicUpdated,
		topicDeleted: topicDeleted,
	}
}

// MovieCreated는 영화 생성 이벤트를 발행합니다
func (c *CatalogPublisher) MovieCreated(ctx context.Context, movie entity.Movie, revision int64) error {
	event := MovieCreatedEvent{
		MovieEvent: newMovieEvent("movie.created", movie.ID, revision),
		Movie:      movie,
	}
	return c.producer.PublishEvent(ctx, c.topicCreated, eventKey(movie.ID), event)
}

// MovieUpdated는 영화 수정 이벤트를 발행합니다
func (c *CatalogPublisher) MovieUpdated(ctx context.Context, movie entity.Movie, revision int64) error {
	event := MovieUpdatedEvent{
		MovieEvent: newMovieEvent("movie.updated", movie.ID, revision),
		Movie:      movie,
	}
	return c.producer.PublishEvent(ctx, c.topicUpdated, eventKey(movie.ID), event)
}

// MovieDeleted는 영화 삭제 이벤트를 발행합니다
func (c *CatalogPublisher) MovieDeleted(ctx context.Context, movieID int64, revision int64) error {
	event := MovieDeletedEvent{
		MovieEvent: newMovieEvent("movie.deleted", movieID, revision),
		DeletedAt:  time.Now(),
	}
	return c.producer.PublishEvent(ctx, c.topicDeleted, eventKey(movieID), event)
}

func newMovieEvent(eventType string, movieID, revision int64) MovieEvent {
	return MovieEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Timestamp: time.Now(),
		MovieID:   movieID,
		Revision:  revision,
	}
}

func eventKey(movieID int64) string {
	return fmt.Sprintf("%d", movieID)
}
