package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert item: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%caja%", likePattern("caja"))
	assert.Equal(t, `%50\%%`, likePattern("50%"))
	assert.Equal(t, `%x\_y%`, likePattern("x_y"))
}
