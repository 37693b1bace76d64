package store

import (
	"context"
	"encoding/json"
	"testing"

	"aeskit/internal/auth"
	"aeskit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestSeedAdmin(t *testing.T) {
	db := newDB(t)

	created, err := SeedAdmin(db, " Admin@Example.com ", "pw")
	require.NoError(t, err)
	assert.True(t, created)

	var u models.User
	require.NoError(t, db.Preload("Roles").First(&u, "email = ?", "admin@example.com").Error)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, []string{models.RoleAdministrator}, u.RoleNames())
	assert.NoError(t, auth.CheckPassword(u.PasswordHash, "pw"))

	created, err = SeedAdmin(db, "admin@example.com", "other")
	require.NoError(t, err)
	assert.False(t, created)

	var roles int64
	db.Model(&models.Role{}).Count(&roles)
	assert.EqualValues(t, 2, roles)
}

func TestSeedAdminRequiresCredentials(t *testing.T) {
	db := newDB(t)
	_, err := SeedAdmin(db, "admin@example.com", "")
	assert.Error(t, err)
}

func TestAudit(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	require.NoError(t, Audit(ctx, db, "", "CIPHER", map[string]any{"mode": "CBC"}))
	require.NoError(t, Audit(ctx, db, "8b0e7c5e-4d3f-4a57-9f43-1a2b3c4d5e6f", "VECTOR_GENERATE", map[string]any{"count": 3}))

	all, err := AuditLogs(ctx, db, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 2)

	mine, err := AuditLogs(ctx, db, "8b0e7c5e-4d3f-4a57-9f43-1a2b3c4d5e6f", 10)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "VECTOR_GENERATE", mine[0].Action)

	var md map[string]any
	require.NoError(t, json.Unmarshal(mine[0].Metadata, &md))
	assert.EqualValues(t, 3, md["count"])

	assert.NoError(t, Audit(ctx, nil, "", "CIPHER", nil))
}

func TestVectorIDs(t *testing.T) {
	db := newDB(t)
	v := models.Vector{BatchID: "b", UserID: "u", Algorithm: "AES", Mode: "CBC", TestMode: "KAT"}
	require.NoError(t, db.Create(&v).Error)
	assert.Len(t, v.ID, 36)
}
