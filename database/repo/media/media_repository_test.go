package media

import (
	"context"
	"testing"

	"github.com/pinstash/pinstash/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	for _, table := range []string{TableUploaded, TableSaved} {
		require.NoError(t, db.Table(table).AutoMigrate(&models.MediaImage{}))
	}
	return db
}

func imageNames(records []models.MediaImage) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Image)
	}
	return names
}

// TestCreate_ListByUser 测试写入后按用户查询
func TestCreate_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUploadedRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "file_1700000000000.png", "42"))
	require.NoError(t, repo.Create(ctx, "file_1700000000001.jpg", "42"))
	require.NoError(t, repo.Create(ctx, "file_1700000000002.png", "7"))

	records, err := repo.ListByUser(ctx, "42")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.ElementsMatch(t, []string{"file_1700000000000.png", "file_1700000000001.jpg"}, imageNames(records))
	for _, r := range records {
		assert.NotZero(t, r.ID)
		assert.Equal(t, "42", r.UserID)
	}
}

// TestListByUser_Empty 测试无记录用户返回空列表而非 nil
func TestListByUser_Empty(t *testing.T) {
	repo := NewUploadedRepository(setupTestDB(t))

	records, err := repo.ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

// TestTables_Independent 测试 uploaded 与 saved 两表互不影响
func TestTables_Independent(t *testing.T) {
	db := setupTestDB(t)
	uploaded := NewUploadedRepository(db)
	saved := NewSavedRepository(db)
	ctx := context.Background()

	require.NoError(t, uploaded.Create(ctx, "file_1.png", "42"))
	require.NoError(t, saved.Create(ctx, "file_2.png", "42"))

	up, err := uploaded.ListByUser(ctx, "42")
	require.NoError(t, err)
	require.Len(t, up, 1)
	assert.Equal(t, "file_1.png", up[0].Image)

	sv, err := saved.ListByUser(ctx, "42")
	require.NoError(t, err)
	require.Len(t, sv, 1)
	assert.Equal(t, "file_2.png", sv[0].Image)
}
