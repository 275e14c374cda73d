package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestWrapNotFound(t *testing.T) {
	assert.NoError(t, WrapNotFound(nil))
	assert.Equal(t, ErrNotFound, WrapNotFound(pgx.ErrNoRows))
	assert.ErrorIs(t, WrapNotFound(pgx.ErrNoRows), ErrNotFound)

	other := errors.New("connection reset")
	err := WrapNotFound(other)
	assert.EqualError(t, err, "db: connection reset")
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, ErrNotFound)
}
