package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
		ok   bool
	}{
		{"validation", Validation("title is required"), KindValidation, true},
		{"not found", NotFound("task %s not found", "abc"), KindNotFound, true},
		{"collaborator", Collaborator("classifier timed out", errors.New("deadline")), KindCollaborator, true},
		{"store", Store("database unavailable", errors.New("conn refused")), KindStore, true},
		{"plain error", errors.New("boom"), 0, false},
		{"wrapped", fmt.Errorf("handling chat: %w", NotFound("no such conversation")), KindNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindOf(tt.err)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.kind, kind)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsValidation(Validation("bad")))
	assert.True(t, IsNotFound(NotFound("missing")))
	assert.True(t, IsCollaborator(Collaborator("down", nil)))
	assert.True(t, IsStore(Store("down", nil)))
	assert.False(t, IsStore(NotFound("missing")))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Store("database unavailable", cause)
	require.ErrorIs(t, err, cause)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "task not found", UserMessage(NotFound("task not found")))
	assert.Equal(t, "something went wrong", UserMessage(errors.New("pq: relation missing")))

	// Cause detail stays out of the presentable message.
	err := Store("database unavailable", errors.New("dial tcp 10.0.0.3:5432"))
	assert.Equal(t, "database unavailable", UserMessage(err))
}
