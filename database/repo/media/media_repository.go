package media

import (
	"context"

	"github.com/pinstash/pinstash/database/models"
	"gorm.io/gorm"
)

const (
	// TableUploaded 上传图片表
	TableUploaded = "uploaded_images"
	// TableSaved 收藏图片表
	TableSaved = "saved_images"
)

// Repository 图片元数据仓库
// 同一套逻辑绑定到不同的表，上传和收藏各持有一个独立实例。
type Repository struct {
	db    *gorm.DB
	table string
}

// NewUploadedRepository 创建上传图片仓库
func NewUploadedRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, table: TableUploaded}
}

// NewSavedRepository 创建收藏图片仓库
func NewSavedRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, table: TableSaved}
}

// Table 返回仓库绑定的表名
func (r *Repository) Table() string {
	return r.table
}

// Create 保存一条图片元数据记录
func (r *Repository) Create(ctx context.Context, image, userID string) error {
	record := models.MediaImage{Image: image, UserID: userID}
	return r.db.WithContext(ctx).Table(r.table).Create(&record).Error
}

// ListByUser 按用户ID查询图片记录，未知用户返回空列表
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]models.MediaImage, error) {
	records := make([]models.MediaImage, 0)
	err := r.db.WithContext(ctx).Table(r.table).Where("user_id = ?", userID).Find(&records).Error
	return records, err
}
