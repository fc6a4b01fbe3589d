package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemTypeValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ItemTypeFlashcard.Validate())
	assert.NoError(t, ItemTypeQuiz.Validate())

	for _, invalid := range []ItemType{"", "card", "Flashcard", "QUIZ"} {
		assert.ErrorIs(t, invalid.Validate(), ErrInvalidItemType, "item type %q", invalid)
	}
}

func TestNewAttempt(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	projectID := uuid.New()
	itemID := uuid.New()

	answer := "B"
	attempt, err := NewAttempt(userID, projectID, ItemTypeQuiz, itemID, "algebra", &answer, "B", true)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, attempt.ID)
	assert.Equal(t, userID, attempt.UserID)
	assert.Equal(t, ItemTypeQuiz, attempt.ItemType)
	require.NotNil(t, attempt.UserAnswer)
	assert.Equal(t, "B", *attempt.UserAnswer)
	assert.True(t, attempt.WasCorrect)
	assert.False(t, attempt.CreatedAt.IsZero())
}

func TestNewAttemptNilUserAnswer(t *testing.T) {
	t.Parallel()

	// Flashcard self-assessments carry no typed answer.
	attempt, err := NewAttempt(uuid.New(), uuid.New(), ItemTypeFlashcard, uuid.New(), "vocab", nil, "la mesa", false)
	require.NoError(t, err)
	assert.Nil(t, attempt.UserAnswer)
}

func TestNewAttemptValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		userID   uuid.UUID
		itemType ItemType
		itemID   uuid.UUID
		correct  string
		wantErr  error
	}{
		{name: "empty user ID", userID: uuid.Nil, itemType: ItemTypeQuiz, itemID: uuid.New(), correct: "B", wantErr: ErrEmptyAttemptUserID},
		{name: "empty item ID", userID: uuid.New(), itemType: ItemTypeQuiz, itemID: uuid.Nil, correct: "B", wantErr: ErrEmptyAttemptItemID},
		{name: "unknown item type", userID: uuid.New(), itemType: "essay", itemID: uuid.New(), correct: "B", wantErr: ErrInvalidItemType},
		{name: "empty correct answer", userID: uuid.New(), itemType: ItemTypeQuiz, itemID: uuid.New(), correct: "", wantErr: ErrEmptyAttemptCorrectAns},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewAttempt(tc.userID, uuid.New(), tc.itemType, tc.itemID, "topic", nil, tc.correct, false)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
