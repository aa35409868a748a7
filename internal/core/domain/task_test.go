package domain_test

import (
	"strings"
	"testing"

	"advanced-todo/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNonEmptyTitle(t *testing.T) {
	assert.True(t, domain.IsNonEmptyTitle("Buy milk"))
	assert.True(t, domain.IsNonEmptyTitle("  x  "))
	assert.False(t, domain.IsNonEmptyTitle(""))
	assert.False(t, domain.IsNonEmptyTitle(" \t\n "))
}

func TestClampTitle(t *testing.T) {
	assert.Equal(t, "Buy milk", domain.ClampTitle("  Buy milk  "))

	long := strings.Repeat("a", 130)
	assert.Equal(t, strings.Repeat("a", domain.MaxTitleLength), domain.ClampTitle(long))

	exact := strings.Repeat("b", domain.MaxTitleLength)
	assert.Equal(t, exact, domain.ClampTitle("   "+exact+"   "))
}

func TestClampTitle_CountsCharactersNotBytes(t *testing.T) {
	long := strings.Repeat("ñ", 125)

	got := domain.ClampTitle(long)

	require.Equal(t, strings.Repeat("ñ", domain.MaxTitleLength), got)
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{"pending", "in_progress", "completed"} {
		assert.True(t, domain.IsValidStatus(status), status)
	}
	for _, status := range []string{"", "done", "PENDING", " pending", "todo"} {
		assert.False(t, domain.IsValidStatus(status), status)
	}
}

func TestTaskStatus_Next(t *testing.T) {
	assert.Equal(t, domain.TaskStatusInProgress, domain.TaskStatusPending.Next())
	assert.Equal(t, domain.TaskStatusCompleted, domain.TaskStatusInProgress.Next())
	assert.Equal(t, domain.TaskStatusPending, domain.TaskStatusCompleted.Next())
}

func TestUpdateTaskInput_IsEmpty(t *testing.T) {
	assert.True(t, domain.UpdateTaskInput{}.IsEmpty())

	description := ""
	assert.False(t, domain.UpdateTaskInput{Description: &description}.IsEmpty())
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, domain.IsValidationError(domain.ErrInvalidTitle))
	assert.True(t, domain.IsValidationError(domain.ErrNothingToUpdate))
	assert.False(t, domain.IsValidationError(domain.ErrTaskNotFound))
	assert.False(t, domain.IsValidationError(domain.ErrStorage))
}
