package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorSkip(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
	}{
		{name: "first page", page: 1, pageSize: 10, want: 0},
		{name: "second page", page: 2, pageSize: 10, want: 10},
		{name: "large page small size", page: 7, pageSize: 5, want: 30},
		{name: "max option", page: 3, pageSize: 50, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cursor{Page: tt.page, PageSize: tt.pageSize}
			assert.Equal(t, tt.want, c.Skip())
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(11, 5))
	assert.Equal(t, 1, TotalPages(5, 0))
}

func TestValidPageSize(t *testing.T) {
	for _, option := range PageSizeOptions {
		assert.True(t, ValidPageSize(option))
	}
	assert.False(t, ValidPageSize(0))
	assert.False(t, ValidPageSize(7))
	assert.False(t, ValidPageSize(100))
}

func TestValidateSummaryInput(t *testing.T) {
	require.NoError(t, ValidateSummaryInput("some text"))
	assert.ErrorIs(t, ValidateSummaryInput(""), ErrEmptyText)
	assert.ErrorIs(t, ValidateSummaryInput("   \n\t "), ErrEmptyText)
}

func TestPasswordStrength(t *testing.T) {
	assert.Equal(t, 0, PasswordStrength(""))
	assert.Equal(t, 1, PasswordStrength("aaaa"))
	assert.Equal(t, 2, PasswordStrength("aaaaaaaa"))
	assert.Equal(t, 4, PasswordStrength("Passw0rd"))
	assert.Equal(t, 3, PasswordStrength("Pass1"))
}

func TestValidateNewPassword(t *testing.T) {
	require.NoError(t, ValidateNewPassword("Passw0rd", "Passw0rd"))
	assert.ErrorIs(t, ValidateNewPassword("Passw0rd", "other"), ErrPasswordMismatch)
	assert.ErrorIs(t, ValidateNewPassword("weak", "weak"), ErrWeakPassword)
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Ana", User{Name: "Ana", Username: "ana42", Email: "ana@example.com"}.DisplayName())
	assert.Equal(t, "ana42", User{Username: "ana42", Email: "ana@example.com"}.DisplayName())
	assert.Equal(t, "ana@example.com", User{Email: "ana@example.com"}.DisplayName())
}
