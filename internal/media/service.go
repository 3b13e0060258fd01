package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/pinstash/pinstash/database/models"
	"github.com/pinstash/pinstash/storage"
)

// Store 图片元数据存储边界，上传和收藏各绑定一个独立实例
type Store interface {
	Create(ctx context.Context, image, userID string) error
	ListByUser(ctx context.Context, userID string) ([]models.MediaImage, error)
}

// Service 图片上传与查询服务
type Service struct {
	store    Store
	provider storage.Provider
	field    string
}

// NewService 创建图片服务
// field 是 multipart 表单字段名，同时也是生成文件名的前缀。
func NewService(store Store, provider storage.Provider, field string) *Service {
	return &Service{
		store:    store,
		provider: provider,
		field:    field,
	}
}

// Field 返回服务绑定的表单字段名
func (s *Service) Field() string {
	return s.field
}

// GenerateFilename 生成存储文件名：<字段名>_<毫秒时间戳><原始扩展名>
// 原始文件名除扩展名外全部丢弃，毫秒内并发上传的同名碰撞未做处理。
func GenerateFilename(field, originalName string, now time.Time) string {
	return fmt.Sprintf("%s_%d%s", field, now.UnixMilli(), filepath.Ext(originalName))
}

// Upload 保存文件字节并记录元数据，返回生成的文件名
func (s *Service) Upload(ctx context.Context, fileHeader *multipart.FileHeader, userID string) (string, error) {
	filename := GenerateFilename(s.field, fileHeader.Filename, time.Now())

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if err := s.provider.SaveWithContext(ctx, filename, src); err != nil {
		return "", fmt.Errorf("failed to store file '%s': %w", filename, err)
	}

	if err := s.store.Create(ctx, filename, userID); err != nil {
		return "", fmt.Errorf("failed to record metadata for '%s': %w", filename, err)
	}

	return filename, nil
}

// ListByUser 按用户ID查询图片记录
// 未知用户得到空列表而不是错误。
func (s *Service) ListByUser(ctx context.Context, userID string) ([]models.MediaImage, error) {
	return s.store.ListByUser(ctx, userID)
}
