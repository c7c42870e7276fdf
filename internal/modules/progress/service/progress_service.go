package service

import (
	"context"
	"fmt"
	"strings"

	"tutorcast/internal/modules/progress/domain"
	progressout "tutorcast/internal/modules/progress/port/out"
	"tutorcast/internal/platform/logger"
)

const DefaultTutor = "default"

type ProgressService struct {
	store progressout.KVStore
	log   *logger.Logger
}

func NewProgressService(store progressout.KVStore, log *logger.Logger) *ProgressService {
	return &ProgressService{store: store, log: log.With("service", "ProgressService")}
}

// Load never fails: storage and decode errors are logged and yield an empty record.
func (s *ProgressService) Load(ctx context.Context, worksheetID string, page int) domain.Record {
	key := domain.Key(worksheetID, page)
	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn("session state read failed", "key", key, "error", err)
		return domain.EmptyRecord()
	}
	if !found || strings.TrimSpace(raw) == "" {
		return domain.EmptyRecord()
	}
	record, err := domain.Decode(raw)
	if err != nil {
		s.log.Warn("session state is corrupt", "key", key, "error", err)
		return domain.EmptyRecord()
	}
	return record
}

// SaveStep merges the unit's step into the stored record and marks it active.
func (s *ProgressService) SaveStep(ctx context.Context, worksheetID string, page int, unitID string, step int) (domain.Record, error) {
	if unitID == "" {
		return domain.Record{}, fmt.Errorf("unit id is required")
	}
	if step < 0 {
		step = 0
	}
	next := s.Load(ctx, worksheetID, page).WithStep(unitID, step)
	return next, s.write(ctx, domain.Key(worksheetID, page), next)
}

// ClearActive drops the active unit and keeps every unit's progress.
func (s *ProgressService) ClearActive(ctx context.Context, worksheetID string, page int) (domain.Record, error) {
	next := s.Load(ctx, worksheetID, page).WithoutActive()
	return next, s.write(ctx, domain.Key(worksheetID, page), next)
}

func (s *ProgressService) write(ctx context.Context, key string, record domain.Record) error {
	raw, err := domain.Encode(record)
	if err != nil {
		s.log.Warn("session state encode failed", "key", key, "error", err)
		return err
	}
	if err := s.store.Set(ctx, key, raw); err != nil {
		s.log.Warn("session state write failed", "key", key, "error", err)
		return err
	}
	return nil
}

func (s *ProgressService) Tutor(ctx context.Context) string {
	raw, found, err := s.store.Get(ctx, domain.TutorPreferenceKey)
	if err != nil {
		s.log.Warn("tutor preference read failed", "error", err)
		return DefaultTutor
	}
	tutor := strings.TrimSpace(raw)
	if !found || tutor == "" {
		return DefaultTutor
	}
	return tutor
}

func (s *ProgressService) SetTutor(ctx context.Context, tutor string) error {
	tutor = strings.TrimSpace(tutor)
	if tutor == "" {
		return fmt.Errorf("tutor is required")
	}
	if strings.ContainsAny(tutor, "/\\") {
		return fmt.Errorf("tutor %q must not contain path separators", tutor)
	}
	if err := s.store.Set(ctx, domain.TutorPreferenceKey, tutor); err != nil {
		return fmt.Errorf("save tutor preference: %w", err)
	}
	return nil
}
