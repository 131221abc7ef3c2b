package league

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("accepts known leagues regardless of case", func(t *testing.T) {
		l, err := Parse(" England ")
		require.NoError(t, err)
		assert.Equal(t, England, l)
	})

	t.Run("rejects unknown league", func(t *testing.T) {
		_, err := Parse("netherlands")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownLeague))
	})
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "italy_teams", Italy.TeamsTable())
	assert.Equal(t, "italy_events", Italy.EventsTable())
}

func TestAllReturnsCopy(t *testing.T) {
	leagues := All()
	require.Len(t, leagues, 5)
	leagues[0] = "mutated"
	assert.Equal(t, England, All()[0])
	assert.False(t, League("mutated").Valid())
}
