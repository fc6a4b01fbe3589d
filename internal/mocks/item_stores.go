package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/store"
)

// MemoryFlashcardStore is an in-memory store.FlashcardStore. Its ListDue
// consults an optional MemoryReviewStateStore to honor schedule ordering.
type MemoryFlashcardStore struct {
	mu     sync.Mutex
	cards  map[uuid.UUID]*domain.Flashcard
	states *MemoryReviewStateStore
}

// Ensure interface compliance
var _ store.FlashcardStore = (*MemoryFlashcardStore)(nil)

// NewMemoryFlashcardStore creates an empty MemoryFlashcardStore. states may
// be nil when ListDue is not exercised.
func NewMemoryFlashcardStore(states *MemoryReviewStateStore) *MemoryFlashcardStore {
	return &MemoryFlashcardStore{
		cards:  make(map[uuid.UUID]*domain.Flashcard),
		states: states,
	}
}

// CreateMultiple implements store.FlashcardStore.CreateMultiple.
func (s *MemoryFlashcardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return store.ErrInvalidEntity
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, card := range cards {
		c := *card
		s.cards[card.ID] = &c
	}
	return nil
}

// GetByID implements store.FlashcardStore.GetByID.
func (s *MemoryFlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, exists := s.cards[id]
	if !exists {
		return nil, store.ErrItemNotFound
	}

	c := *card
	return &c, nil
}

// Exists implements store.FlashcardStore.Exists.
func (s *MemoryFlashcardStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.cards[id]
	return exists, nil
}

// ListDue implements store.FlashcardStore.ListDue by joining against the
// review state store.
func (s *MemoryFlashcardStore) ListDue(
	ctx context.Context,
	userID, groupID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.Flashcard, error) {
	if s.states == nil {
		return []*domain.Flashcard{}, nil
	}

	dueStates, err := s.states.ListDue(ctx, userID, groupID, now, limit)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	due := make([]*domain.Flashcard, 0, len(dueStates))
	for _, state := range dueStates {
		if card, exists := s.cards[state.ItemID]; exists {
			c := *card
			due = append(due, &c)
		}
	}

	return due, nil
}

// WithTx implements store.FlashcardStore.WithTx.
func (s *MemoryFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return s
}

// MemoryQuizQuestionStore is an in-memory store.QuizQuestionStore.
type MemoryQuizQuestionStore struct {
	mu        sync.Mutex
	questions map[uuid.UUID]*domain.QuizQuestion
}

// Ensure interface compliance
var _ store.QuizQuestionStore = (*MemoryQuizQuestionStore)(nil)

// NewMemoryQuizQuestionStore creates an empty MemoryQuizQuestionStore.
func NewMemoryQuizQuestionStore() *MemoryQuizQuestionStore {
	return &MemoryQuizQuestionStore{
		questions: make(map[uuid.UUID]*domain.QuizQuestion),
	}
}

// CreateMultiple implements store.QuizQuestionStore.CreateMultiple.
func (s *MemoryQuizQuestionStore) CreateMultiple(ctx context.Context, questions []*domain.QuizQuestion) error {
	for _, question := range questions {
		if err := question.Validate(); err != nil {
			return store.ErrInvalidEntity
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, question := range questions {
		q := *question
		q.Options = append([]string(nil), question.Options...)
		s.questions[question.ID] = &q
	}
	return nil
}

// GetByID implements store.QuizQuestionStore.GetByID.
func (s *MemoryQuizQuestionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuizQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, exists := s.questions[id]
	if !exists {
		return nil, store.ErrItemNotFound
	}

	q := *question
	q.Options = append([]string(nil), question.Options...)
	return &q, nil
}

// Exists implements store.QuizQuestionStore.Exists.
func (s *MemoryQuizQuestionStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.questions[id]
	return exists, nil
}

// WithTx implements store.QuizQuestionStore.WithTx.
func (s *MemoryQuizQuestionStore) WithTx(tx *sql.Tx) store.QuizQuestionStore {
	return s
}

// MemoryStudyGroupStore is an in-memory store.StudyGroupStore.
type MemoryStudyGroupStore struct {
	mu     sync.Mutex
	groups map[uuid.UUID]*domain.StudyGroup
}

// Ensure interface compliance
var _ store.StudyGroupStore = (*MemoryStudyGroupStore)(nil)

// NewMemoryStudyGroupStore creates an empty MemoryStudyGroupStore.
func NewMemoryStudyGroupStore() *MemoryStudyGroupStore {
	return &MemoryStudyGroupStore{
		groups: make(map[uuid.UUID]*domain.StudyGroup),
	}
}

// Create implements store.StudyGroupStore.Create.
func (s *MemoryStudyGroupStore) Create(ctx context.Context, group *domain.StudyGroup) error {
	if err := group.Validate(); err != nil {
		return store.ErrInvalidEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[group.ID]; exists {
		return store.ErrDuplicate
	}

	g := *group
	s.groups[group.ID] = &g
	return nil
}

// GetByID implements store.StudyGroupStore.GetByID.
func (s *MemoryStudyGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, exists := s.groups[id]
	if !exists {
		return nil, store.ErrGroupNotFound
	}

	g := *group
	return &g, nil
}

// WithTx implements store.StudyGroupStore.WithTx.
func (s *MemoryStudyGroupStore) WithTx(tx *sql.Tx) store.StudyGroupStore {
	return s
}
