package timezone_test

import (
	"testing"
	"time"

	"tickoff/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	defer timezone.Load("UTC")

	tests := []struct {
		name     string
		zone     string
		expected string
	}{
		{name: "standard zone", zone: "Asia/Jakarta", expected: "Asia/Jakarta"},
		{name: "empty falls back to UTC", zone: "", expected: "UTC"},
		{name: "unknown falls back to UTC", zone: "Mars/Olympus_Mons", expected: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timezone.Load(tt.zone)

			require.NotNil(t, timezone.GetLocation())
			assert.Equal(t, tt.expected, timezone.GetLocation().String())
			assert.Equal(t, tt.expected, timezone.Now().Location().String())
		})
	}
}

func TestNowTruncatesToMicroseconds(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Zero(t, now.Nanosecond()%int(time.Microsecond))
}

func TestFormat(t *testing.T) {
	defer timezone.Load("UTC")

	timezone.Load("Asia/Jakarta")

	instant := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-01T19:00:00+07:00", timezone.Format(instant, time.RFC3339))
	assert.True(t, instant.Equal(timezone.ToAppTime(instant)))
}
