package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMonth(t *testing.T) {
	valid := []string{"2025-01", "2025-12", "1999-06"}
	for _, month := range valid {
		assert.NoError(t, ValidateMonth(month), month)
	}

	invalid := []string{"", "2025", "2025-1", "2025/01", "25-01", "2025-011", "June 2025"}
	for _, month := range invalid {
		assert.ErrorIs(t, ValidateMonth(month), ErrInvalidMonth, month)
	}
}
