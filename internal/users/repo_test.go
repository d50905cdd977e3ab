package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/juanfvasquez/pedidos-backend/pkg/db/models"
	"github.com/juanfvasquez/pedidos-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}))
	return conn
}

func TestUpsertCreatesThenRefreshes(t *testing.T) {
	ctx := context.Background()
	conn := testDB(t)
	repo := NewRepository(conn)

	name := "Ana"
	created, err := repo.Upsert(ctx, UpsertInput{OpenID: "open-1", Name: &name})
	require.NoError(t, err)
	assert.Equal(t, enums.RoleUser, created.Role)
	require.NotNil(t, created.Name)
	assert.Equal(t, "Ana", *created.Name)

	newName := "Ana Maria"
	updated, err := repo.Upsert(ctx, UpsertInput{OpenID: "open-1", Name: &newName})
	require.NoError(t, err)

	// Same row, refreshed fields. A second sign-in never duplicates the
	// account.
	assert.Equal(t, created.ID, updated.ID)
	require.NotNil(t, updated.Name)
	assert.Equal(t, "Ana Maria", *updated.Name)
	assert.False(t, updated.LastSignedIn.Before(created.LastSignedIn))

	var count int64
	require.NoError(t, conn.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertRolePromotion(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testDB(t))

	created, err := repo.Upsert(ctx, UpsertInput{OpenID: "owner-1"})
	require.NoError(t, err)
	assert.Equal(t, enums.RoleUser, created.Role)

	admin := enums.RoleAdmin
	promoted, err := repo.Upsert(ctx, UpsertInput{OpenID: "owner-1", Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, enums.RoleAdmin, promoted.Role)

	// A later upsert without a role does not demote.
	again, err := repo.Upsert(ctx, UpsertInput{OpenID: "owner-1"})
	require.NoError(t, err)
	assert.Equal(t, enums.RoleAdmin, again.Role)
}

func TestUpsertLeavesOptionalFieldsUntouched(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testDB(t))

	email := "ana@example.com"
	created, err := repo.Upsert(ctx, UpsertInput{OpenID: "open-2", Email: &email})
	require.NoError(t, err)
	require.NotNil(t, created.Email)

	again, err := repo.Upsert(ctx, UpsertInput{OpenID: "open-2"})
	require.NoError(t, err)
	require.NotNil(t, again.Email)
	assert.Equal(t, "ana@example.com", *again.Email)
}

func TestFindByIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testDB(t))

	a, err := repo.Upsert(ctx, UpsertInput{OpenID: "a"})
	require.NoError(t, err)
	b, err := repo.Upsert(ctx, UpsertInput{OpenID: "b"})
	require.NoError(t, err)

	found, err := repo.FindByIDs(ctx, []int64{a.ID, b.ID, 9999})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
