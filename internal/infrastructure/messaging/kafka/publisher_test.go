package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IBM/sarama/mocks"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockProducer(t *testing.T) (*Producer, *mocks.SyncProducer) {
	t.Helper()
	mock := mocks.NewSyncProducer(t, nil)
	return &Producer{producer: mock, config: &ProducerConfig{}}, mock
}

func TestCatalogPublisher_MovieCreated(t *testing.T) {
	// Arrange
	producer, mock := newMockProducer(t)
	publisher := NewCatalogPublisher(producer, "movie.created", "movie.updated", "movie.deleted")

	var payload []byte
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		payload = val
		return nil
	})

	movie := entity.Movie{ID: 7, Title: "Alien"}

	// Act
	err := publisher.MovieCreated(context.Background(), movie, 3)

	// Assert
	require.NoError(t, err)

	var event MovieCreatedEvent
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, "movie.created", event.EventType)
	assert.Equal(t, int64(7), event.MovieID)
	assert.Equal(t, int64(3), event.Revision)
	assert.Equal(t, "Alien", event.Movie.Title)

	// 이벤트 ID는 UUID입니다
	_, err = uuid.Parse(event.EventID)
	assert.NoError(t, err)

	require.NoError(t, producer.Close())
}

func TestCatalogPublisher_MovieDeleted(t *testing.T) {
	// Arrange
	producer, mock := newMockProducer(t)
	publisher := NewCatalogPublisher(producer, "movie.created", "movie.updated", "movie.deleted")

	var payload []byte
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		payload = val
		return nil
	})

	// Act
	err := publisher.MovieDeleted(context.Background(), 4, 9)

	// Assert
	require.NoError(t, err)

	var event MovieDeletedEvent
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, "movie.deleted", event.EventType)
	assert.Equal(t, int64(4), event.MovieID)
	assert.Equal(t, int64(9), event.Revision)
	assert.False(t, event.DeletedAt.IsZero())

	require.NoError(t, producer.Close())
}

func TestNewMovieEvent_DistinctIDs(t *testing.T) {
	// 같은 영화에 대한 연속 이벤트도 서로 다른 ID를 받습니다
	first := newMovieEvent("movie.updated", 1, 1)
	second := newMovieEvent("movie.updated", 1, 2)

	assert.NotEqual(t, first.EventID, second.EventID)
}
