package timezone_test

import (
	"testing"
	"time"

	"frontdesk/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezoneInit(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
}

func TestToAppTime(t *testing.T) {
	utcTime := time.Date(2024, 6, 10, 23, 30, 0, 0, time.UTC)
	appTime := timezone.ToAppTime(utcTime)

	assert.Equal(t, timezone.GetLocation(), appTime.Location())
	assert.True(t, utcTime.Equal(appTime))
}

func TestFormatAndParse(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.NotEmpty(t, timezone.Format(testTime, "2006-01-02 15:04:05 MST"))

	parsed, err := timezone.Parse("2006-01-02", "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, 10, parsed.Day())
	assert.Equal(t, timezone.GetLocation(), parsed.Location())

	_, err = timezone.Parse("2006-01-02", "10/06/2024")
	assert.Error(t, err)
}

func TestClocks(t *testing.T) {
	pinned := time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC)

	clock := timezone.FixedClock(pinned)
	assert.Equal(t, pinned, clock())
	assert.Equal(t, pinned, clock())

	assert.False(t, timezone.SystemClock()().IsZero())
}
