package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/pinstash/pinstash/config"
	"github.com/studio-b12/gowebdav"
)

// WebDAVStorage WebDAV 存储实现
type WebDAVStorage struct {
	client   *gowebdav.Client
	rootPath string
}

// NewWebDAVStorage 创建 WebDAV 存储提供者
func NewWebDAVStorage(cfg *config.Config) (*WebDAVStorage, error) {
	if cfg.WebDAVURL == "" {
		return nil, fmt.Errorf("webdav URL is required")
	}

	rootPath := strings.Trim(cfg.WebDAVRootPath, "/")
	if rootPath != "" {
		rootPath = "/" + rootPath
	}

	client := gowebdav.NewClient(cfg.WebDAVURL, cfg.WebDAVUsername, cfg.WebDAVPassword)

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("webdav connection test failed: %w", err)
	}

	if rootPath != "" {
		if err := client.MkdirAll(rootPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create webdav root path '%s': %w", rootPath, err)
		}
	}

	return &WebDAVStorage{
		client:   client,
		rootPath: rootPath,
	}, nil
}

func (s *WebDAVStorage) remotePath(identifier string) string {
	return path.Join(s.rootPath, identifier)
}

// SaveWithContext 保存文件到 WebDAV
func (s *WebDAVStorage) SaveWithContext(ctx context.Context, identifier string, file io.Reader) error {
	if !IsValidIdentifier(identifier) {
		return fmt.Errorf("invalid file identifier: %s", identifier)
	}

	if err := s.client.WriteStream(s.remotePath(identifier), file, 0644); err != nil {
		return fmt.Errorf("failed to write webdav file '%s': %w", identifier, err)
	}
	return nil
}

// GetWithContext 从 WebDAV 获取文件
// WebDAV 流不可寻址，整体读入内存后返回可寻址的 reader。
func (s *WebDAVStorage) GetWithContext(ctx context.Context, identifier string) (io.ReadSeeker, error) {
	if !IsValidIdentifier(identifier) {
		return nil, fmt.Errorf("invalid file identifier: %s", identifier)
	}

	stream, err := s.client.ReadStream(s.remotePath(identifier))
	if err != nil {
		return nil, fmt.Errorf("file not found: %s", identifier)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read webdav file '%s': %w", identifier, err)
	}

	return bytes.NewReader(data), nil
}

// DeleteWithContext 从 WebDAV 删除文件
func (s *WebDAVStorage) DeleteWithContext(ctx context.Context, identifier string) error {
	if !IsValidIdentifier(identifier) {
		return fmt.Errorf("invalid file identifier: %s", identifier)
	}

	if err := s.client.Remove(s.remotePath(identifier)); err != nil {
		return fmt.Errorf("failed to delete webdav file '%s': %w", identifier, err)
	}
	return nil
}

// Exists 检查文件是否存在
func (s *WebDAVStorage) Exists(ctx context.Context, identifier string) (bool, error) {
	if !IsValidIdentifier(identifier) {
		return false, fmt.Errorf("invalid file identifier: %s", identifier)
	}

	_, err := s.client.Stat(s.remotePath(identifier))
	if err != nil {
		return false, nil
	}
	return true, nil
}

// Health 检查存储健康状态
func (s *WebDAVStorage) Health(ctx context.Context) error {
	_, err := s.client.ReadDir(s.rootPath + "/")
	return err
}

// Name 返回存储名称
func (s *WebDAVStorage) Name() string {
	return "webdav"
}
