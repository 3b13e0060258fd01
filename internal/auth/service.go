package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/pinstash/pinstash/database/models"
	"github.com/pinstash/pinstash/database/repo/accounts"
	"github.com/pinstash/pinstash/utils"
	cryptopackage "github.com/pinstash/pinstash/utils/crypto"
)

// 服务层哨兵错误，处理器据此映射为对外的响应消息
var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
)

// Service 注册登录服务
type Service struct {
	accountsRepo *accounts.Repository
	jwtService   *JWTService
	hashParams   cryptopackage.Params
}

// NewService 创建注册登录服务
func NewService(accountsRepo *accounts.Repository, jwtService *JWTService, hashParams cryptopackage.Params) *Service {
	return &Service{
		accountsRepo: accountsRepo,
		jwtService:   jwtService,
		hashParams:   hashParams,
	}
}

// Register 注册新用户
// 先做存在性检查以保证冲突消息一致，email 唯一索引兜底并发下的重复插入。
func (s *Service) Register(ctx context.Context, name, email, password string) error {
	exists, err := s.accountsRepo.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return ErrEmailTaken
	}

	hashedPassword, err := cryptopackage.GenerateFromPassword(password, s.hashParams)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hashedPassword,
	}

	if err := s.accountsRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, accounts.ErrEmailTaken) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("Registered new user %s", utils.SanitizeLogEmail(email))
	return nil
}

// LoginResult 登录结果
type LoginResult struct {
	User        *models.User
	AccessToken string
}

// Login 校验凭据并签发访问令牌
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.accountsRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	match, err := cryptopackage.ComparePasswordAndHash(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("password comparison failed: %w", err)
	}
	if !match {
		return nil, ErrWrongPassword
	}

	token, _, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &LoginResult{
		User:        user,
		AccessToken: token,
	}, nil
}

// GetUser 按ID获取用户
func (s *Service) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.accountsRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
