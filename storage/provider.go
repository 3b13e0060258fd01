package storage

import (
	"context"
	"io"
)

// Provider 文件存储后端的统一抽象
// 上传与 /Images 下载只面向这个接口，本地目录、MinIO、WebDAV 都实现它。
// identifier 是不带路径的文件名，由各实现自行校验合法性。
type Provider interface {
	// SaveWithContext 保存文件字节
	SaveWithContext(ctx context.Context, identifier string, file io.Reader) error

	// GetWithContext 读取文件，返回可寻址的 reader 以便计算大小
	GetWithContext(ctx context.Context, identifier string) (io.ReadSeeker, error)

	// DeleteWithContext 删除文件
	DeleteWithContext(ctx context.Context, identifier string) error

	// Exists 检查文件是否存在
	Exists(ctx context.Context, identifier string) (bool, error)

	// Health 检查存储后端是否可用
	Health(ctx context.Context) error

	// Name 返回存储名称
	Name() string
}
