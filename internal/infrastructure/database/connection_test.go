package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sanctuary-go/internal/adapters/persistence"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/config"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/database"
)

func TestNewTestConnection_MigratesEveryModel(t *testing.T) {
	db, err := database.NewTestConnection()
	require.NoError(t, err)
	defer database.Close(db)

	for _, model := range persistence.AllModels() {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
}

func TestNewConnection_RejectsUnknownType(t *testing.T) {
	_, err := database.NewConnection(&config.DatabaseConfig{Type: "mongo"})

	assert.ErrorContains(t, err, "unsupported database type")
}
