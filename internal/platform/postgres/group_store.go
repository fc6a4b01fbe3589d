package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/store"
)

// PostgresStudyGroupStore implements the store.StudyGroupStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStudyGroupStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudyGroupStore creates a new PostgreSQL implementation of the
// StudyGroupStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresStudyGroupStore(db store.DBTX, logger *slog.Logger) *PostgresStudyGroupStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudyGroupStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_group_store")),
	}
}

// Ensure PostgresStudyGroupStore implements store.StudyGroupStore
var _ store.StudyGroupStore = (*PostgresStudyGroupStore)(nil)

// Create implements store.StudyGroupStore.Create
func (s *PostgresStudyGroupStore) Create(ctx context.Context, group *domain.StudyGroup) error {
	if err := group.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_groups (id, owner_id, name, spaced_repetition_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		group.ID,
		group.OwnerID,
		group.Name,
		group.SpacedRepetitionEnabled,
		group.CreatedAt,
		group.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create study group",
			slog.String("group_id", group.ID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create study group: %w", err)
	}

	return nil
}

// GetByID implements store.StudyGroupStore.GetByID
func (s *PostgresStudyGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyGroup, error) {
	query := `
		SELECT id, owner_id, name, spaced_repetition_enabled, created_at, updated_at
		FROM study_groups
		WHERE id = $1
	`

	group := &domain.StudyGroup{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.OwnerID,
		&group.Name,
		&group.SpacedRepetitionEnabled,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get study group: %w", err)
	}

	return group, nil
}

// WithTx implements store.StudyGroupStore.WithTx
func (s *PostgresStudyGroupStore) WithTx(tx *sql.Tx) store.StudyGroupStore {
	return &PostgresStudyGroupStore{
		db:     tx,
		logger: s.logger,
	}
}
