package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/nutrisense/internal/domain"
)

func TestPredictionHistory_CreateAndList(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPredictionHistoryRepository(mock)
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	record := &domain.PredictionRecord{
		UserID: "u-1",
		Input:  domain.PredictionInput{AgeMonths: 24, Gender: "male", HeightCM: 86, FoodText: "milk and eggs"},
		Output: domain.PredictionOutput{NutritionStatus: "Normal", FoodCategory: "Healthy", Recommendation: "keep going"},
	}

	mock.ExpectQuery(`INSERT INTO prediction_history`).
		WithArgs("u-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("p-1", created))

	require.NoError(t, repo.Create(context.Background(), record))
	assert.Equal(t, "p-1", record.ID)

	mock.ExpectQuery(`FROM prediction_history WHERE user_id=\$1 ORDER BY created_at DESC`).
		WithArgs("u-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "input", "output", "created_at"}).
			AddRow("p-1", "u-1",
				[]byte(`{"age":24,"gender":"male","height":86,"food_text":"milk and eggs"}`),
				[]byte(`{"nutrition_status":"Normal","food_category":"Healthy","recommendation":"keep going"}`),
				created))

	items, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, record.Input, items[0].Input)
	assert.Equal(t, record.Output, items[0].Output)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWellnessHistory_ListDecodeFailure(t *testing.T) {
	mock := newMockPool(t)
	repo := NewWellnessHistoryRepository(mock)

	mock.ExpectQuery(`FROM wellness_history WHERE user_id=\$1`).
		WithArgs("u-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "input", "output", "created_at"}).
			AddRow("w-1", "u-1", []byte(`not json`), []byte(`{}`), time.Now()))

	_, err := repo.ListByUser(context.Background(), "u-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode wellness w-1")
}
