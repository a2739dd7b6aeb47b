package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_DollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "team").
		From("reservations").
		Where(squirrel.Eq{"team": "Apex White"}).
		Where(squirrel.Lt{"start_at": 10}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, team FROM reservations WHERE team = $1 AND start_at < $2", query)
	assert.Equal(t, []interface{}{"Apex White", 10}, args)
}

func TestDelete_DollarPlaceholders(t *testing.T) {
	query, args, err := Delete("reservations").
		Where(squirrel.Eq{"id": int64(7)}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM reservations WHERE id = $1", query)
	assert.Equal(t, []interface{}{int64(7)}, args)
}
