package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    error
		wantMsg string
	}{
		{
			name:    "validation with field",
			err:     Invalid("content", "must be at most %d characters", 5000),
			kind:    ErrValidation,
			wantMsg: "validation error: content: must be at most 5000 characters",
		},
		{
			name:    "not found",
			err:     NotFound("entry %s", "e1"),
			kind:    ErrNotFound,
			wantMsg: "not found: entry e1",
		},
		{
			name:    "quota",
			err:     QuotaExceeded("custom tags limit %d reached", 10),
			kind:    ErrQuotaExceeded,
			wantMsg: "quota exceeded: custom tags limit 10 reached",
		},
		{
			name:    "wrapped twice keeps kind",
			err:     fmt.Errorf("create tag: %w", DuplicateTag("tag %q", "健康")),
			kind:    ErrDuplicateTag,
			wantMsg: `create tag: duplicate tag: tag "健康"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestAdapter(t *testing.T) {
	err := Adapter("moderation", context.DeadlineExceeded)

	assert.ErrorIs(t, err, ErrAdapter)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "adapter error: moderation: context deadline exceeded", err.Error())

	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestGenerationFailed(t *testing.T) {
	err := GenerationFailed(Adapter("llm", context.DeadlineExceeded))

	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, ErrAdapter)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "generation error: adapter error: llm: context deadline exceeded", err.Error())
}

func TestValidationError_As(t *testing.T) {
	err := fmt.Errorf("submit entry: %w", Invalid("source_type", "unknown value %q", "video"))

	var validationErr *ValidationError
	if assert.True(t, errors.As(err, &validationErr)) {
		assert.Equal(t, "source_type", validationErr.Field)
		assert.Equal(t, `unknown value "video"`, validationErr.Message)
	}
}
