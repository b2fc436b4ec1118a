package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForDriver_Placeholders(t *testing.T) {
	query, args, err := Select("id").From("range_bookings").Where(squirrel.Eq{"competition_id": 3}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM range_bookings WHERE competition_id = $1", query)
	assert.Equal(t, []interface{}{3}, args)

	query, _, err = ForDriver("sqlite").Select("id").From("range_bookings").Where(squirrel.Eq{"competition_id": 3}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM range_bookings WHERE competition_id = ?", query)
}
