package media

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/pinstash/pinstash/api/common"
	"github.com/pinstash/pinstash/storage"
)

// FileServer 通过存储提供者对外提供已上传的文件字节
type FileServer struct {
	provider storage.Provider
}

// NewFileServer 创建文件服务处理器
func NewFileServer(provider storage.Provider) *FileServer {
	return &FileServer{provider: provider}
}

// GetFileHandlerFunc 按文件名返回文件内容
func (h *FileServer) GetFileHandlerFunc(c *gin.Context) {
	filename := c.Param("filename")
	if filename == "" {
		common.RespondError(c, http.StatusBadRequest, "File name is required")
		return
	}

	reader, err := h.provider.GetWithContext(c.Request.Context(), filename)
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "File not found")
		return
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	size, err := reader.Seek(0, io.SeekEnd)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to read file")
		return
	}
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to read file")
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, size, contentType, reader, nil)
}
