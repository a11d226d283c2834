package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekday(t *testing.T) {
	kyiv := time.FixedZone("EET", 2*60*60)

	testCases := []struct {
		name     string
		date     string
		now      time.Time
		expected string
	}{
		{
			name:     "upcoming date this year",
			date:     "18.02",
			now:      time.Date(2026, 1, 10, 12, 0, 0, 0, kyiv),
			expected: "Середа",
		},
		{
			name:     "past date rolls to next year",
			date:     "18.02",
			now:      time.Date(2026, 10, 14, 12, 0, 0, 0, kyiv),
			expected: "Четвер",
		},
		{
			name:     "today is not in the past",
			date:     "14.10",
			now:      time.Date(2026, 10, 14, 23, 30, 0, 0, kyiv),
			expected: "Середа",
		},
		{
			name:     "new year boundary",
			date:     "01.01",
			now:      time.Date(2026, 12, 31, 20, 0, 0, 0, kyiv),
			expected: "П’ятниця",
		},
		{
			name:     "leap day in a leap year",
			date:     "29.02",
			now:      time.Date(2028, 1, 1, 0, 0, 0, 0, kyiv),
			expected: "Вівторок",
		},
		{
			name:     "leap day past with non-leap next year",
			date:     "29.02",
			now:      time.Date(2028, 3, 1, 0, 0, 0, 0, kyiv),
			expected: UnknownDay,
		},
		{
			name:     "leap day in a non-leap year",
			date:     "29.02",
			now:      time.Date(2026, 1, 1, 0, 0, 0, 0, kyiv),
			expected: UnknownDay,
		},
		{
			name:     "invalid in any year",
			date:     "30.02",
			now:      time.Date(2026, 1, 1, 0, 0, 0, 0, kyiv),
			expected: UnknownDay,
		},
		{
			name:     "single digit parts",
			date:     "6.3",
			now:      time.Date(2026, 1, 1, 0, 0, 0, 0, kyiv),
			expected: "П’ятниця",
		},
		{
			name:     "month out of range",
			date:     "10.13",
			now:      time.Date(2026, 1, 1, 0, 0, 0, 0, kyiv),
			expected: UnknownDay,
		},
		{
			name:     "not a date",
			date:     "завтра",
			now:      time.Date(2026, 1, 1, 0, 0, 0, 0, kyiv),
			expected: UnknownDay,
		},
		{
			name:     "year included",
			date:     "18.02.2026",
			now:      time.Date(2026, 1, 1, 0, 0, 0, 0, kyiv),
			expected: UnknownDay,
		},
		{
			name:     "empty",
			date:     "",
			now:      time.Date(2026, 1, 1, 0, 0, 0, 0, kyiv),
			expected: UnknownDay,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Weekday(tc.date, tc.now))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	valid := []string{
		"+380501234567",
		"380501234567",
		"+38 050 123 45 67",
		"+38 (050) 123-45-67",
		"38-050-123-45-67",
		" +380501234567 ",
	}
	for _, in := range valid {
		t.Run(in, func(t *testing.T) {
			got, err := NormalizePhone(in)
			assert.NoError(t, err)
			assert.Equal(t, "+380501234567", got)
			assert.Len(t, got, 13)
		})
	}

	invalid := []string{
		"0501234567",
		"+38050123456",
		"+3805012345678",
		"+48501234567",
		"+380+501234567",
		"hello",
		"",
	}
	for _, in := range invalid {
		t.Run("invalid "+in, func(t *testing.T) {
			_, err := NormalizePhone(in)
			assert.ErrorIs(t, err, ErrInvalidPhone)
		})
	}
}

func TestValidateHandle(t *testing.T) {
	got, err := ValidateHandle("  @olena_k ")
	assert.NoError(t, err)
	assert.Equal(t, "@olena_k", got)

	_, err = ValidateHandle("@")
	assert.NoError(t, err)

	_, err = ValidateHandle("olena_k")
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestIsCancel(t *testing.T) {
	assert.True(t, isCancel("Відміна"))
	assert.True(t, isCancel(" відміна "))
	assert.True(t, isCancel("ВІДМІНА"))
	assert.False(t, isCancel("відмінa x"))
}
