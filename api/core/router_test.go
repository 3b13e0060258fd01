package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pinstash/pinstash/config"
	"github.com/pinstash/pinstash/database"
	"github.com/pinstash/pinstash/database/repo/accounts"
	repoMedia "github.com/pinstash/pinstash/database/repo/media"
	"github.com/pinstash/pinstash/internal/auth"
	svcMedia "github.com/pinstash/pinstash/internal/media"
	"github.com/pinstash/pinstash/storage"
	cryptopackage "github.com/pinstash/pinstash/utils/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDeps 在临时目录上构建完整路由依赖
func newTestDeps(t *testing.T) *RouterDependencies {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		DBType:           "sqlite",
		DBFilePath:       filepath.Join(t.TempDir(), "test.db"),
		StorageType:      "local",
		StorageLocalPath: t.TempDir(),
	}

	provider, err := database.NewGormProvider(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })
	require.NoError(t, database.Migrate(provider))

	factory, err := storage.NewFactory(cfg)
	require.NoError(t, err)

	jwtService, err := auth.NewJWTService("integration-test-secret-integration!", time.Hour)
	require.NoError(t, err)

	hashParams := cryptopackage.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	authService := auth.NewService(accounts.NewRepository(provider.DB()), jwtService, hashParams)

	storageProvider := factory.GetDefault()
	uploadedService := svcMedia.NewService(repoMedia.NewUploadedRepository(provider.DB()), storageProvider, "file")
	savedService := svcMedia.NewService(repoMedia.NewSavedRepository(provider.DB()), storageProvider, "file")

	return &RouterDependencies{
		Provider:        provider,
		StorageFactory:  factory,
		AuthService:     authService,
		JWTService:      jwtService,
		UploadedService: uploadedService,
		SavedService:    savedService,
		Config:          cfg,
	}
}

// setupTestRouter 搭建完整路由
func setupTestRouter(t *testing.T) *gin.Engine {
	router := gin.New()
	RegisterRoutes(router, newTestDeps(t))
	return router
}

func doJSON(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doMultipart(t *testing.T, router *gin.Engine, path, field, filename, userID string, content []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	if userID != "" {
		require.NoError(t, writer.WriteField("userId", userID))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// TestSignup 测试注册流程与各类校验失败
func TestSignup(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(router, "POST", "/signup", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "User Register Successfully", body["message"])

	// 重复邮箱
	rec = doJSON(router, "POST", "/signup", gin.H{
		"name": "Other", "email": "ada@example.com", "password": "different123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email Already Exits", decodeBody(t, rec)["error"])

	// 缺失字段
	rec = doJSON(router, "POST", "/signup", gin.H{"name": "Ada"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All fields are required", decodeBody(t, rec)["error"])

	// 用户名全空白
	rec = doJSON(router, "POST", "/signup", gin.H{
		"name": "   ", "email": "b@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name must contain only String", decodeBody(t, rec)["error"])

	// 非法邮箱
	rec = doJSON(router, "POST", "/signup", gin.H{
		"name": "Ada", "email": "not-an-email", "password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email address", decodeBody(t, rec)["error"])

	// 密码过短
	rec = doJSON(router, "POST", "/signup", gin.H{
		"name": "Ada", "email": "c@example.com", "password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at least 8 characters long", decodeBody(t, rec)["error"])
}

// TestLogin 测试登录流程
func TestLogin(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(router, "POST", "/signup", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// 登录成功：返回用户数据与令牌
	rec = doJSON(router, "POST", "/login", gin.H{
		"email": "ada@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Login success", body["message"])
	assert.NotEmpty(t, body["token"])
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ada", data["name"])
	assert.Equal(t, "ada@example.com", data["email"])
	assert.NotContains(t, data, "password")

	// 未注册邮箱
	rec = doJSON(router, "POST", "/login", gin.H{
		"email": "missing@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User Not Found, Please register first", decodeBody(t, rec)["error"])

	// 密码错误
	rec = doJSON(router, "POST", "/login", gin.H{
		"email": "ada@example.com", "password": "wrong-password",
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Wrong Password", decodeBody(t, rec)["error"])
}

// TestMe 测试令牌鉴权
func TestMe(t *testing.T) {
	router := setupTestRouter(t)

	doJSON(router, "POST", "/signup", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "password123",
	})
	rec := doJSON(router, "POST", "/login", gin.H{
		"email": "ada@example.com", "password": "password123",
	})
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	require.Equal(t, http.StatusOK, rec2.Code)
	data, ok := decodeBody(t, rec2)["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", data["email"])

	// 无令牌
	req = httptest.NewRequest("GET", "/me", nil)
	rec2 = httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
}

// TestUploadAndList 测试上传图片与按用户查询
func TestUploadAndList(t *testing.T) {
	router := setupTestRouter(t)
	content := []byte("fake png bytes")

	rec := doMultipart(t, router, "/upload", "file", "cat.png", "42", content)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Insert Success", decodeBody(t, rec)["message"])

	req := httptest.NewRequest("GET", "/upload/42", nil)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	require.Equal(t, http.StatusCreated, rec2.Code)
	body := decodeBody(t, rec2)
	assert.Equal(t, "Images fetched successfully", body["message"])
	records, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, records, 1)
	record, ok := records[0].(map[string]interface{})
	require.True(t, ok)
	assert.Regexp(t, `^file_\d+\.png$`, record["image"])
	assert.Equal(t, "42", record["userId"])

	// 文件可经 /Images 前缀取回
	filename, _ := record["image"].(string)
	req = httptest.NewRequest("GET", fmt.Sprintf("/Images/%s", filename), nil)
	rec3 := httptest.NewRecorder()
	router.ServeHTTP(rec3, req)
	require.Equal(t, http.StatusOK, rec3.Code)
	assert.Equal(t, content, rec3.Body.Bytes())
	assert.Equal(t, "image/png", rec3.Header().Get("Content-Type"))

	// 未知用户返回空列表
	req = httptest.NewRequest("GET", "/upload/nobody", nil)
	rec4 := httptest.NewRecorder()
	router.ServeHTTP(rec4, req)
	require.Equal(t, http.StatusCreated, rec4.Code)
	records2, ok := decodeBody(t, rec4)["data"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, records2)
}

// TestUpload_MissingParts 测试缺文件或缺 userId
func TestUpload_MissingParts(t *testing.T) {
	router := setupTestRouter(t)

	rec := doMultipart(t, router, "/upload", "file", "", "42", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All fields are required", decodeBody(t, rec)["error"])

	rec = doMultipart(t, router, "/upload", "file", "cat.png", "", []byte("x"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All fields are required", decodeBody(t, rec)["error"])
}

// TestSaved 测试收藏集合与上传集合相互独立
func TestSaved(t *testing.T) {
	router := setupTestRouter(t)

	rec := doMultipart(t, router, "/saved", "file", "pin.jpg", "42", []byte("fake jpg"))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Saved", decodeBody(t, rec)["message"])

	req := httptest.NewRequest("GET", "/saved/42", nil)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	require.Equal(t, http.StatusCreated, rec2.Code)
	body := decodeBody(t, rec2)
	assert.Equal(t, "Images fetched successfully", body["message"])
	records, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, records, 1)

	// 收藏不会出现在上传列表里
	req = httptest.NewRequest("GET", "/upload/42", nil)
	rec3 := httptest.NewRecorder()
	router.ServeHTTP(rec3, req)
	require.Equal(t, http.StatusCreated, rec3.Code)
	uploaded, ok := decodeBody(t, rec3)["data"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, uploaded)
}

// TestGetFile_NotFound 测试取不存在的文件
func TestGetFile_NotFound(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/Images/missing.png", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "File not found", decodeBody(t, rec)["error"])
}

// TestHealthAndVersion 测试基础路由
func TestHealthAndVersion(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	checks, ok := decodeBody(t, rec)["checks"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ok", checks["database"])
	assert.Equal(t, "ok", checks["storage"])

	req = httptest.NewRequest("GET", "/version", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
