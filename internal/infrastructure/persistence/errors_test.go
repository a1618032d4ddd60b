package persistence

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.False(t, isUniqueViolation(nil, "idx_owners_phone"))
	})

	t.Run("pgx unique violation on matching constraint", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "idx_assignments_period"}
		assert.True(t, isUniqueViolation(err, "idx_assignments_period"))
	})

	t.Run("pgx unique violation on other constraint", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "idx_payments_transaction"}
		assert.False(t, isUniqueViolation(err, "idx_payments_flat_period"))
	})

	t.Run("pgx unique violation with no constraint filter", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "idx_owners_phone"}
		assert.True(t, isUniqueViolation(err, ""))
	})

	t.Run("pgx non-unique-violation code", func(t *testing.T) {
		err := &pgconn.PgError{Code: "40001", ConstraintName: ""}
		assert.False(t, isUniqueViolation(err, ""))
	})

	t.Run("wrapped pgx error", func(t *testing.T) {
		inner := &pgconn.PgError{Code: "23505", ConstraintName: "idx_payments_flat_period"}
		err := errors.Join(errors.New("create failed"), inner)
		assert.True(t, isUniqueViolation(err, "idx_payments_flat_period"))
	})

	t.Run("pq unique violation on matching constraint", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Constraint: "idx_payments_transaction"}
		assert.True(t, isUniqueViolation(err, "idx_payments_transaction"))
	})

	t.Run("pq unique violation on other constraint", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Constraint: "idx_payments_transaction"}
		assert.False(t, isUniqueViolation(err, "idx_payments_flat_period"))
	})

	t.Run("pq unique violation with no constraint filter", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Constraint: "idx_owners_phone"}
		assert.True(t, isUniqueViolation(err, ""))
	})

	t.Run("pq non-unique-violation code", func(t *testing.T) {
		err := &pq.Error{Code: "23503", Constraint: "fk_payments_owner"}
		assert.False(t, isUniqueViolation(err, "fk_payments_owner"))
	})

	t.Run("wrapped pq error", func(t *testing.T) {
		inner := &pq.Error{Code: "23505", Constraint: "idx_assignments_period"}
		err := errors.Join(errors.New("create failed"), inner)
		assert.True(t, isUniqueViolation(err, "idx_assignments_period"))
	})

	t.Run("sqlite message with column names", func(t *testing.T) {
		err := errors.New("UNIQUE constraint failed: maintenance_payments.transaction_id")
		assert.True(t, isUniqueViolation(err, "idx_payments_transaction"))
		assert.False(t, isUniqueViolation(err, "idx_payments_flat_period"))
	})

	t.Run("unrelated error", func(t *testing.T) {
		assert.False(t, isUniqueViolation(errors.New("connection reset"), "idx_owners_phone"))
	})
}
