package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	secs, err := ParseDuration("02:45:30")
	require.NoError(t, err)
	assert.Equal(t, 9930, secs)

	secs, err = ParseDuration("14:00:05")
	require.NoError(t, err)
	assert.Equal(t, 50405, secs)
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, in := range []string{"", "02:45", "aa:bb:cc", "01:60:00", "01:00:61", "-1:00:00"} {
		_, err := ParseDuration(in)
		assert.Error(t, err, in)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "02:45:30", FormatDuration(9930))
	assert.Equal(t, "00:00:09", FormatDuration(9))
	assert.Equal(t, "", FormatDuration(0))
}
