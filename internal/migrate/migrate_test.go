package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingIsSorted(t *testing.T) {
	names, err := Pending()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_booking_attempts.sql", names[0])
	assert.IsIncreasing(t, names)
}
