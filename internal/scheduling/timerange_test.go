package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidTime(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"00:00", true},
		{"08:30", true},
		{"23:59", true},
		{"24:00", false},
		{"12:60", false},
		{"8:30", false},
		{"08:3", false},
		{"0830", false},
		{"08:3a", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidTime(tt.input))
		})
	}
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-01-05"))
	assert.True(t, ValidDate("2024-02-29"))
	assert.False(t, ValidDate("2026-02-30"))
	assert.False(t, ValidDate("2026-13-01"))
	assert.False(t, ValidDate("05-01-2026"))
	assert.False(t, ValidDate("2026-1-5"))
	assert.False(t, ValidDate(""))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"partial", "09:00", "10:00", "09:30", "10:30", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"back to back", "09:00", "10:00", "10:00", "11:00", false},
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
		{"back to back reversed", "10:00", "11:00", "09:00", "10:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestValidateRanges(t *testing.T) {
	t.Run("accepts non-overlapping unsorted ranges", func(t *testing.T) {
		err := validateRanges([]TimeRange{
			{StartTime: "14:00", EndTime: "15:00"},
			{StartTime: "09:00", EndTime: "10:00"},
			{StartTime: "10:00", EndTime: "11:00"},
		})
		assert.NoError(t, err)
	})

	t.Run("accepts empty set", func(t *testing.T) {
		assert.NoError(t, validateRanges(nil))
	})

	t.Run("rejects overlap", func(t *testing.T) {
		err := validateRanges([]TimeRange{
			{StartTime: "09:00", EndTime: "10:00"},
			{StartTime: "09:30", EndTime: "10:30"},
		})
		require.Error(t, err)
		assert.Equal(t, CodeInvalidArgument, CodeOf(err))
	})

	t.Run("rejects bad format", func(t *testing.T) {
		err := validateRanges([]TimeRange{{StartTime: "9:00", EndTime: "10:00"}})
		require.Error(t, err)
		assert.Equal(t, CodeInvalidArgument, CodeOf(err))
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		err := validateRanges([]TimeRange{{StartTime: "11:00", EndTime: "10:00"}})
		require.Error(t, err)
		assert.Equal(t, CodeInvalidArgument, CodeOf(err))
	})

	t.Run("rejects zero-length range", func(t *testing.T) {
		err := validateRanges([]TimeRange{{StartTime: "10:00", EndTime: "10:00"}})
		require.Error(t, err)
	})
}

func TestSynthesizeRanges(t *testing.T) {
	t.Run("covers the window at the granularity", func(t *testing.T) {
		ranges := synthesizeRanges("08:00", "10:00", 30)
		require.Len(t, ranges, 4)
		assert.Equal(t, TimeRange{StartTime: "08:00", EndTime: "08:30"}, ranges[0])
		assert.Equal(t, TimeRange{StartTime: "09:30", EndTime: "10:00"}, ranges[3])
	})

	t.Run("drops trailing remainder shorter than granularity", func(t *testing.T) {
		ranges := synthesizeRanges("08:00", "09:15", 30)
		require.Len(t, ranges, 2)
		assert.Equal(t, "09:00", ranges[1].EndTime)
	})

	t.Run("hour granularity", func(t *testing.T) {
		ranges := synthesizeRanges("09:00", "12:00", 60)
		require.Len(t, ranges, 3)
		assert.Equal(t, TimeRange{StartTime: "11:00", EndTime: "12:00"}, ranges[2])
	})

	t.Run("empty window yields nothing", func(t *testing.T) {
		assert.Empty(t, synthesizeRanges("10:00", "10:00", 30))
	})
}

func TestWeekdayOf(t *testing.T) {
	dow, err := weekdayOf("2026-01-04", time.UTC) // Sunday
	require.NoError(t, err)
	assert.Equal(t, 0, dow)

	dow, err = weekdayOf("2026-01-05", time.UTC) // Monday
	require.NoError(t, err)
	assert.Equal(t, 1, dow)

	_, err = weekdayOf("not-a-date", time.UTC)
	assert.Error(t, err)
}
