package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeFromBirthDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 30, AgeFromBirthDate("1994-05-20", now))
	// Birthday later in the year: not yet reached.
	assert.Equal(t, 29, AgeFromBirthDate("1994-07-01", now))
	assert.Equal(t, 0, AgeFromBirthDate("", now))
	assert.Equal(t, 0, AgeFromBirthDate("not-a-date", now))
	// Future birth dates clamp to 0 instead of going negative.
	assert.Equal(t, 0, AgeFromBirthDate("2030-01-01", now))
}
