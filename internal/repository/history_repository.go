package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spec-kit/nutrisense/internal/domain"
)

// PredictionHistoryRepository stores growth/diet predictions per user.
type PredictionHistoryRepository interface {
	Create(ctx context.Context, record *domain.PredictionRecord) error
	ListByUser(ctx context.Context, userID string) ([]domain.PredictionRecord, error)
}

// WellnessHistoryRepository stores wellness diary scores per user.
type WellnessHistoryRepository interface {
	Create(ctx context.Context, record *domain.WellnessRecord) error
	ListByUser(ctx context.Context, userID string) ([]domain.WellnessRecord, error)
}

type predictionHistoryRepository struct {
	db DBTX
}

// NewPredictionHistoryRepository builds repository.
func NewPredictionHistoryRepository(db DBTX) PredictionHistoryRepository {
	return &predictionHistoryRepository{db: db}
}

func (r *predictionHistoryRepository) Create(ctx context.Context, record *domain.PredictionRecord) error {
	const query = `
        INSERT INTO prediction_history (user_id, input, output)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`

	input, output, err := marshalPair(record.Input, record.Output)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx, query, record.UserID, input, output).
		Scan(&record.ID, &record.CreatedAt)
}

func (r *predictionHistoryRepository) ListByUser(ctx context.Context, userID string) ([]domain.PredictionRecord, error) {
	const query = `
        SELECT id, user_id, input, output, created_at
        FROM prediction_history WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.PredictionRecord{}
	for rows.Next() {
		var (
			record        domain.PredictionRecord
			input, output []byte
		)
		if err := rows.Scan(&record.ID, &record.UserID, &input, &output, &record.CreatedAt); err != nil {
			return nil, err
		}
		if err := unmarshalPair(input, output, &record.Input, &record.Output); err != nil {
			return nil, fmt.Errorf("decode prediction %s: %w", record.ID, err)
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

type wellnessHistoryRepository struct {
	db DBTX
}

// NewWellnessHistoryRepository builds repository.
func NewWellnessHistoryRepository(db DBTX) WellnessHistoryRepository {
	return &wellnessHistoryRepository{db: db}
}

func (r *wellnessHistoryRepository) Create(ctx context.Context, record *domain.WellnessRecord) error {
	const query = `
        INSERT INTO wellness_history (user_id, input, output)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`

	input, output, err := marshalPair(record.Input, record.Output)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx, query, record.UserID, input, output).
		Scan(&record.ID, &record.CreatedAt)
}

func (r *wellnessHistoryRepository) ListByUser(ctx context.Context, userID string) ([]domain.WellnessRecord, error) {
	const query = `
        SELECT id, user_id, input, output, created_at
        FROM wellness_history WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.WellnessRecord{}
	for rows.Next() {
		var (
			record        domain.WellnessRecord
			input, output []byte
		)
		if err := rows.Scan(&record.ID, &record.UserID, &input, &output, &record.CreatedAt); err != nil {
			return nil, err
		}
		if err := unmarshalPair(input, output, &record.Input, &record.Output); err != nil {
			return nil, fmt.Errorf("decode wellness %s: %w", record.ID, err)
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func marshalPair(input, output any) ([]byte, []byte, error) {
	in, err := json.Marshal(input)
	if err != nil {
		return nil, nil, fmt.Errorf("encode input: %w", err)
	}
	out, err := json.Marshal(output)
	if err != nil {
		return nil, nil, fmt.Errorf("encode output: %w", err)
	}
	return in, out, nil
}

func unmarshalPair(input, output []byte, inDst, outDst any) error {
	if err := json.Unmarshal(input, inDst); err != nil {
		return err
	}
	return json.Unmarshal(output, outDst)
}
