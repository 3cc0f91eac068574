package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrValidation,
		ErrUnavailable,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		id          string
		expectedMsg string
	}{
		{
			name:        "with entity and ID",
			entity:      "quote",
			id:          "123",
			expectedMsg: `quote with id "123" not found`,
		},
		{
			name:        "with entity only",
			entity:      "meme",
			id:          "",
			expectedMsg: "meme not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.entity, tt.id)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrNotFound)

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.entity, notFound.Entity)
			assert.Equal(t, tt.id, notFound.ID)
		})
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{
			name:        "with field",
			err:         NewValidationError("count", "must be at most 10"),
			expectedMsg: "validation failed for count: must be at most 10",
		},
		{
			name:        "without field",
			err:         NewValidationError("", "bad request"),
			expectedMsg: "validation failed: bad request",
		},
		{
			name:        "with value",
			err:         NewValidationErrorWithValue("count", "must be positive", -1),
			expectedMsg: "validation failed for count: must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedMsg, tt.err.Error())
			assert.True(t, IsValidation(tt.err))
		})
	}

	var validationErr *ValidationError
	require.ErrorAs(t, NewValidationErrorWithValue("count", "x", 42), &validationErr)
	assert.Equal(t, 42, validationErr.Value)
}

func TestUnavailableError(t *testing.T) {
	t.Run("with reason", func(t *testing.T) {
		err := NewUnavailableError("quote-service", "HTTP 502")
		assert.Equal(t, `service "quote-service" unavailable: HTTP 502`, err.Error())
		assert.True(t, IsUnavailable(err))
	})

	t.Run("without reason", func(t *testing.T) {
		err := NewUnavailableError("meme-service", "")
		assert.Equal(t, `service "meme-service" unavailable`, err.Error())
	})

	t.Run("keeps cause reachable", func(t *testing.T) {
		err := NewUnavailableErrorWithCause("quote-service", "timed out", context.DeadlineExceeded)

		require.ErrorIs(t, err, ErrUnavailable)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, IsNotFound(err))
	})
}

func TestIsHelpers_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("fetching meme: %w", NewNotFoundError("meme", ""))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsUnavailable(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsUnavailable(nil))
}

func TestMemeFeed_Latest(t *testing.T) {
	tests := []struct {
		name     string
		feed     MemeFeed
		expected Meme
		ok       bool
	}{
		{name: "nil feed", feed: nil, ok: false},
		{name: "empty feed", feed: MemeFeed{}, ok: false},
		{
			name:     "single meme",
			feed:     MemeFeed{{URL: "https://img.example/a.jpg"}},
			expected: Meme{URL: "https://img.example/a.jpg"},
			ok:       true,
		},
		{
			name: "last meme wins",
			feed: MemeFeed{
				{URL: "https://img.example/a.jpg"},
				{URL: "https://img.example/b.jpg"},
				{URL: "https://img.example/c.jpg"},
			},
			expected: Meme{URL: "https://img.example/c.jpg"},
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meme, ok := tt.feed.Latest()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, meme)
		})
	}
}
