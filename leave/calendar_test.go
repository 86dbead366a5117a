package leave_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/block8/leave-engine/leave"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDuration_FullDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  string
	}{
		{
			name:  "single weekday",
			start: date(2024, time.June, 3), // Monday
			end:   date(2024, time.June, 3),
			want:  "1",
		},
		{
			name:  "monday through friday",
			start: date(2024, time.June, 3),
			end:   date(2024, time.June, 7),
			want:  "5",
		},
		{
			name:  "full week including weekend",
			start: date(2024, time.June, 3),
			end:   date(2024, time.June, 9), // Sunday
			want:  "5",
		},
		{
			name:  "two working weeks",
			start: date(2024, time.June, 3),
			end:   date(2024, time.June, 14),
			want:  "10",
		},
		{
			name:  "weekend only",
			start: date(2024, time.June, 1), // Saturday
			end:   date(2024, time.June, 2), // Sunday
			want:  "0",
		},
		{
			name:  "single saturday",
			start: date(2024, time.June, 1),
			end:   date(2024, time.June, 1),
			want:  "0",
		},
		{
			name:  "friday through monday",
			start: date(2024, time.June, 7),
			end:   date(2024, time.June, 10),
			want:  "2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := leave.Duration(tt.start, tt.end, false)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDuration_HalfDay(t *testing.T) {
	// A half-day request is always exactly 0.5, whatever the dates say.
	// The validator separately rejects half-day requests spanning dates.
	got := leave.Duration(date(2024, time.June, 3), date(2024, time.June, 3), true)
	assert.Equal(t, "0.5", got.String())

	got = leave.Duration(date(2024, time.June, 3), date(2024, time.June, 28), true)
	assert.Equal(t, "0.5", got.String(), "dates must not influence the half-day count")

	got = leave.Duration(date(2024, time.June, 1), date(2024, time.June, 1), true)
	assert.Equal(t, "0.5", got.String(), "a weekend half-day still counts 0.5")
}

func TestDuration_IgnoresTimeOfDay(t *testing.T) {
	// Same calendar range with awkward clock times must count the same days.
	start := time.Date(2024, time.June, 3, 23, 50, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 7, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, "5", leave.Duration(start, end, false).String())
}
