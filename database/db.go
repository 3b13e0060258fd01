package database

import (
	"github.com/pinstash/pinstash/database/models"
	repoMedia "github.com/pinstash/pinstash/database/repo/media"
)

// Migrate 自动迁移全部表结构
// MediaImage 结构体落两张独立的表，需要按表名分别迁移。
func Migrate(provider Provider) error {
	if err := provider.AutoMigrate(&models.User{}); err != nil {
		return err
	}

	db := provider.DB()
	for _, table := range []string{repoMedia.TableUploaded, repoMedia.TableSaved} {
		if err := db.Table(table).AutoMigrate(&models.MediaImage{}); err != nil {
			return err
		}
	}
	return nil
}
