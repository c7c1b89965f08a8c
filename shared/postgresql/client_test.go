package postgresql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationConflict(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "serialization failure",
			err:      &pq.Error{Code: "40001"},
			expected: true,
		},
		{
			name:     "deadlock detected",
			err:      &pq.Error{Code: "40P01"},
			expected: true,
		},
		{
			name:     "wrapped serialization failure",
			err:      fmt.Errorf("pay job: %w", &pq.Error{Code: "40001"}),
			expected: true,
		},
		{
			name:     "unrelated pq error",
			err:      &pq.Error{Code: "23505"},
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("connection refused"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSerializationConflict(tt.err))
		})
	}
}
