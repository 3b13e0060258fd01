package auth

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pinstash/pinstash/database/models"
	"github.com/pinstash/pinstash/utils"
)

// TokenClaims 访问令牌声明
type TokenClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTService 访问令牌服务
type JWTService struct {
	secret    []byte
	expiresIn time.Duration
}

// NewJWTService 创建 JWT 服务
// secret 为空时生成进程内随机密钥，重启后已签发的令牌即失效。
func NewJWTService(secret string, expiresIn time.Duration) (*JWTService, error) {
	if secret == "" {
		generated, err := utils.GenerateRandomToken(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate ephemeral JWT secret: %w", err)
		}
		secret = generated
		log.Println("[JWT] No secret configured, using an ephemeral per-process secret")
	}

	if len(secret) < 32 {
		return nil, fmt.Errorf("JWT secret must be at least 32 characters long, got %d", len(secret))
	}

	if expiresIn <= 0 {
		expiresIn = 24 * time.Hour
	}

	return &JWTService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
	}, nil
}

// GenerateAccessToken 为用户签发访问令牌
func (s *JWTService) GenerateAccessToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(s.expiresIn)

	claims := TokenClaims{
		Name:  user.Name,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, expiry, nil
}

// ParseToken 解析并校验访问令牌
func (s *JWTService) ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// UserID 返回令牌所属的用户ID
func (c *TokenClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token subject: %w", err)
	}
	return uint(id), nil
}
