package media

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/pinstash/pinstash/database/models"
	"github.com/pinstash/pinstash/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore 内存元数据存储，替代数据库做单元测试
type memStore struct {
	records []models.MediaImage
	err     error
}

func (m *memStore) Create(ctx context.Context, image, userID string) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, models.MediaImage{ID: uint(len(m.records) + 1), Image: image, UserID: userID})
	return nil
}

func (m *memStore) ListByUser(ctx context.Context, userID string) ([]models.MediaImage, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.MediaImage, 0)
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// makeFileHeader 构造 multipart 请求并取回文件头
func makeFileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	headers := req.MultipartForm.File[field]
	require.Len(t, headers, 1)
	return headers[0]
}

// TestGenerateFilename 测试文件名格式：字段名_毫秒时间戳+原始扩展名
func TestGenerateFilename(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	assert.Equal(t, "file_1700000000000.png", GenerateFilename("file", "cat.png", now))
	assert.Equal(t, "file_1700000000000.jpeg", GenerateFilename("file", "photo.album.jpeg", now))
	assert.Equal(t, "file_1700000000000", GenerateFilename("file", "noext", now))
	assert.Regexp(t, `^file_\d+\.png$`, GenerateFilename("file", "x.png", time.Now()))
}

// TestUpload 测试上传写入存储并记录元数据
func TestUpload(t *testing.T) {
	provider, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	store := &memStore{}
	service := NewService(store, provider, "file")
	ctx := context.Background()

	content := []byte("not really a png")
	header := makeFileHeader(t, "file", "cat.png", content)

	filename, err := service.Upload(ctx, header, "42")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^file_\d+\.png$`), filename)

	// 文件字节落盘
	reader, err := provider.GetWithContext(ctx, filename)
	require.NoError(t, err)
	saved, err := io.ReadAll(reader)
	require.NoError(t, err)
	if closer, ok := reader.(io.Closer); ok {
		closer.Close()
	}
	assert.Equal(t, content, saved)

	// 元数据记录
	records, err := service.ListByUser(ctx, "42")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, filename, records[0].Image)
	assert.Equal(t, filepath.Ext(filename), ".png")
}

// TestListByUser_UnknownUser 测试未知用户返回空列表
func TestListByUser_UnknownUser(t *testing.T) {
	provider, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	service := NewService(&memStore{}, provider, "file")

	records, err := service.ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
