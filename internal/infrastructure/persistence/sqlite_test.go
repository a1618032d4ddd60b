package persistence

import (
	"testing"

	"github.com/societyhub/backend/internal/domain/directory"
	"github.com/societyhub/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory database with the full schema. The unique
// indexes created from the model tags carry the same conflict semantics the
// repositories rely on in postgres.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.OwnerModel{},
		&models.ChallengeModel{},
		&models.AssignmentModel{},
		&models.PaymentModel{},
	)
	require.NoError(t, err)

	return db
}

// seedOwner creates and persists an owner for test scenarios
func seedOwner(t *testing.T, db *gorm.DB, name, phone, flat string) *directory.Owner {
	t.Helper()

	owner, err := directory.NewOwner(name, phone, flat)
	require.NoError(t, err)
	require.NoError(t, db.Create(models.OwnerModelFromDomain(owner)).Error)

	return owner
}
