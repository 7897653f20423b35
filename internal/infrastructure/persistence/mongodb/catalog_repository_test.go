package mongodb

import (
	"errors"
	"testing"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMapUpsertRaceError(t *testing.T) {
	// 동시 최초 생성 경합에서 진 쪽이 받는 _id 중복 키 에러는
	// 리비전 충돌로 변환되어 재시도 대상이 됩니다
	dupErr := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: "E11000 duplicate key error collection: movies index: _id_"},
		},
	}
	assert.ErrorIs(t, mapUpsertRaceError(dupErr), entity.ErrRevisionConflict)

	// 그 외 에러는 경합이 아니므로 변환하지 않습니다
	assert.Nil(t, mapUpsertRaceError(errors.New("connection reset by peer")))
	assert.Nil(t, mapUpsertRaceError(nil))
}
