package persistence

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolationCode is the postgres SQLSTATE for unique-constraint errors
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a unique-constraint violation.
// When constraint is non-empty, the violation must be on that specific
// constraint; tables with more than one unique index use this to decide
// which conflict actually happened.
func isUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}

	// The gorm postgres driver is pgx-based, so this is the branch production
	// traffic takes.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != uniqueViolationCode {
			return false
		}
		return constraint == "" || pgErr.ConstraintName == constraint
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code != uniqueViolationCode {
			return false
		}
		return constraint == "" || pqErr.Constraint == constraint
	}

	// GORM's dialect-level translation, and the sqlite driver used in tests,
	// do not expose the constraint via a typed error.
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return constraint == "" || strings.Contains(err.Error(), constraint) || constraintMatchesSqliteColumns(err, constraint)
	}

	return false
}

// constraintMatchesSqliteColumns maps sqlite's column-based violation message
// to the postgres constraint names used by the repositories.
func constraintMatchesSqliteColumns(err error, constraint string) bool {
	msg := err.Error()
	switch constraint {
	case "idx_owners_phone":
		return strings.Contains(msg, "owners.phone_number")
	case "idx_otp_challenges_owner":
		return strings.Contains(msg, "otp_challenges.owner_id")
	case "idx_assignments_period":
		return strings.Contains(msg, "treasurer_assignments.month")
	case "idx_payments_transaction":
		return strings.Contains(msg, "maintenance_payments.transaction_id")
	case "idx_payments_flat_period":
		return strings.Contains(msg, "maintenance_payments.flat_number")
	}
	return false
}
