package memrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/nutrisense/internal/domain"
	"github.com/spec-kit/nutrisense/internal/repository"
)

var (
	_ repository.PredictionHistoryRepository = (*PredictionHistoryRepo)(nil)
	_ repository.WellnessHistoryRepository   = (*WellnessHistoryRepo)(nil)
)

// PredictionHistoryRepo is an in-memory PredictionHistoryRepository.
type PredictionHistoryRepo struct {
	mu      sync.RWMutex
	records []domain.PredictionRecord
}

// NewPredictionHistoryRepo creates an empty repository.
func NewPredictionHistoryRepo() *PredictionHistoryRepo {
	return &PredictionHistoryRepo{}
}

func (r *PredictionHistoryRepo) Create(_ context.Context, record *domain.PredictionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = uuid.NewString()
	record.CreatedAt = time.Now().UTC()
	r.records = append(r.records, *record)
	return nil
}

func (r *PredictionHistoryRepo) ListByUser(_ context.Context, userID string) ([]domain.PredictionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.PredictionRecord{}
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].UserID == userID {
			result = append(result, r.records[i])
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// WellnessHistoryRepo is an in-memory WellnessHistoryRepository.
type WellnessHistoryRepo struct {
	mu      sync.RWMutex
	records []domain.WellnessRecord
}

// NewWellnessHistoryRepo creates an empty repository.
func NewWellnessHistoryRepo() *WellnessHistoryRepo {
	return &WellnessHistoryRepo{}
}

func (r *WellnessHistoryRepo) Create(_ context.Context, record *domain.WellnessRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = uuid.NewString()
	record.CreatedAt = time.Now().UTC()
	r.records = append(r.records, *record)
	return nil
}

func (r *WellnessHistoryRepo) ListByUser(_ context.Context, userID string) ([]domain.WellnessRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.WellnessRecord{}
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].UserID == userID {
			result = append(result, r.records[i])
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
