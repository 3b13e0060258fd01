package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pinstash/pinstash/api/common"
	"github.com/pinstash/pinstash/api/middleware"
	"github.com/pinstash/pinstash/internal/auth"
	"github.com/pinstash/pinstash/utils/validator"
)

// AuthHandler 注册登录处理器
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler 创建注册登录处理器
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequestBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequestBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userData struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignupHandlerFunc user registration
func (h *AuthHandler) SignupHandlerFunc(c *gin.Context) {
	var req signupRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	// 逐字段校验，消息与既有客户端约定保持一致
	if req.Name == "" || req.Email == "" || req.Password == "" {
		common.RespondError(c, http.StatusBadRequest, "All fields are required")
		return
	}
	if validator.IsEmpty(req.Name) {
		common.RespondError(c, http.StatusBadRequest, "Name must contain only String")
		return
	}
	if !validator.IsEmail(req.Email) {
		common.RespondError(c, http.StatusBadRequest, "Invalid email address")
		return
	}
	if !validator.IsMinLength(req.Password, 8) {
		common.RespondError(c, http.StatusBadRequest, "Password must be at least 8 characters long")
		return
	}

	err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			common.RespondError(c, http.StatusBadRequest, "Email Already Exits")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "An error occurred while registering the user")
		return
	}

	common.RespondCreated(c, "User Register Successfully", nil)
}

// LoginHandlerFunc user login
func (h *AuthHandler) LoginHandlerFunc(c *gin.Context) {
	var req loginRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	if req.Email == "" || req.Password == "" {
		common.RespondError(c, http.StatusBadRequest, "All fields are required")
		return
	}
	if validator.IsEmpty(req.Password) {
		common.RespondError(c, http.StatusBadRequest, "password is Empty")
		return
	}
	if !validator.IsEmail(req.Email) {
		common.RespondError(c, http.StatusBadRequest, "Invalid email address")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			// 与老客户端保持一致：未注册与密码错误返回不同消息
			common.RespondError(c, http.StatusBadRequest, "User Not Found, Please register first")
		case errors.Is(err, auth.ErrWrongPassword):
			common.RespondError(c, http.StatusInternalServerError, "Wrong Password")
		default:
			common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	user := result.User
	common.RespondCreatedWithToken(c, "Login success", userData{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}, result.AccessToken)
}

// MeHandlerFunc returns the authenticated user.
func (h *AuthHandler) MeHandlerFunc(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)
	if userID == 0 {
		common.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			common.RespondError(c, http.StatusNotFound, "User Not Found, Please register first")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	common.Respond(c, http.StatusOK, "User fetched successfully", userData{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}
