package sigv4

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestNewTime(t *testing.T) {
	tm := NewTime(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Check(t, is.Equal(tm.Format(), "20240101T000000Z"))
	assert.Check(t, is.Equal(tm.ShortFormat(), "20240101"))
}

func TestNewTimeConvertsToUTC(t *testing.T) {
	zoned := time.Date(2024, time.January, 1, 2, 30, 0, 0, time.FixedZone("UTC+3", 3*60*60))
	tm := NewTime(zoned)
	assert.Check(t, is.Equal(tm.Format(), "20231231T233000Z"))
	assert.Check(t, is.Equal(tm.ShortFormat(), "20231231"))
}

func TestTimeIsZero(t *testing.T) {
	assert.Check(t, Time{}.IsZero())
	assert.Check(t, NewTime(time.Time{}).IsZero())
	assert.Check(t, !NewTime(time.Unix(0, 0)).IsZero())
}
