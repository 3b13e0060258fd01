package media

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pinstash/pinstash/api/common"
	svcMedia "github.com/pinstash/pinstash/internal/media"
)

// Handler 图片上传与查询处理器
// 上传和收藏各持有一个实例，逻辑相同但消息和后端集合不同。
type Handler struct {
	service     *svcMedia.Service
	insertMsg   string
	fetchErrMsg string
}

// NewHandler 创建图片处理器
func NewHandler(service *svcMedia.Service, insertMsg, fetchErrMsg string) *Handler {
	return &Handler{
		service:     service,
		insertMsg:   insertMsg,
		fetchErrMsg: fetchErrMsg,
	}
}

// UploadHandlerFunc 接收 multipart 文件和 userId，落盘并记录元数据
func (h *Handler) UploadHandlerFunc(c *gin.Context) {
	fileHeader, err := c.FormFile(h.service.Field())
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	userID := c.PostForm("userId")
	if userID == "" {
		common.RespondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	if _, err := h.service.Upload(c.Request.Context(), fileHeader, userID); err != nil {
		common.RespondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	common.RespondCreated(c, h.insertMsg, nil)
}

// ListHandlerFunc 按 userId 返回图片元数据列表
// 未知 userId 返回空列表，沿用既有客户端约定的 201 状态码。
func (h *Handler) ListHandlerFunc(c *gin.Context) {
	userID := c.Param("userId")

	records, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, h.fetchErrMsg)
		return
	}

	common.RespondCreated(c, "Images fetched successfully", records)
}
