package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPgxPoolRejectsEmptyURL(t *testing.T) {
	_, err := NewPgxPool(context.Background(), "", false)
	assert.EqualError(t, err, "database URL cannot be empty")
}

func TestNewPgxPoolRejectsMalformedURL(t *testing.T) {
	_, err := NewPgxPool(context.Background(), "postgres://user:pa ss@%zz/db", false)
	assert.ErrorContains(t, err, "failed to parse database config")
}
