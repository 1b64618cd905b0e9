package piece_test

import (
	"testing"

	"production/internal/core/domain/model/piece"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert.Equal(t, "ORD-7-A1-3", piece.Code("ORD-7", "A1", 3))
}

func TestRootCode(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"ORD-7-A1-3", "ORD-7-A1-3"},
		{"ORD-7-A1-3-R1", "ORD-7-A1-3"},
		{"ORD-7-A1-3-r12", "ORD-7-A1-3"},
		{"ORD-7-A1-R", "ORD-7-A1-R"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, piece.RootCode(tt.code))
		})
	}
}

func TestNextReplacementCode(t *testing.T) {
	t.Run("should start at R1 when nothing was replaced", func(t *testing.T) {
		assert.Equal(t, "O1-A-1-R1", piece.NextReplacementCode("O1-A-1", nil))
	})

	t.Run("should continue after the highest index ignoring case and gaps", func(t *testing.T) {
		existing := []string{"O1-A-1", "O1-A-1-R1", "o1-a-1-r4", "O1-A-1-R2"}
		assert.Equal(t, "O1-A-1-R5", piece.NextReplacementCode("O1-A-1", existing))
	})

	t.Run("should ignore codes of other pieces sharing a prefix", func(t *testing.T) {
		existing := []string{"O1-A-10-R7", "O1-A-1-R1-X", "O1-A-1-R2"}
		assert.Equal(t, "O1-A-1-R3", piece.NextReplacementCode("O1-A-1", existing))
	})
}
