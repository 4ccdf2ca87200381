package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prostore/storefront/internal/auth/domain"
	"github.com/prostore/storefront/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// UserAccount 用户账号快照
type UserAccount struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

// UserGateway 用户上下文防腐层接口
type UserGateway interface {
	// GetByEmail 按邮箱查找账号，不存在返回 ErrUserNotFound
	GetByEmail(ctx context.Context, email string) (*UserAccount, error)
	// Create 创建账号，返回新账号
	Create(ctx context.Context, name, email, passwordHash string) (*UserAccount, error)
}

// CartRebinder 登录后改绑会话购物车的接口
type CartRebinder interface {
	RebindToUser(ctx context.Context, sessionCartID string, userID uint) error
}

// ErrUserNotFound 用户不存在，由 UserGateway 实现方返回
var ErrUserNotFound = errors.New("user not found")

// RegisterCommand 注册命令
type RegisterCommand struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	SessionCartID   string
}

// SignInCommand 登录命令
type SignInCommand struct {
	Email         string
	Password      string
	SessionCartID string
}

// SignInResult 登录结果
type SignInResult struct {
	Token  string
	UserID uint
	Name   string
	Email  string
	Role   string
}

// AuthApplicationService 认证应用服务：注册、登录、登出与令牌校验
type AuthApplicationService struct {
	users      UserGateway
	sessions   domain.SessionRepository
	carts      CartRebinder
	jwtSecret  []byte
	sessionTTL time.Duration
}

// NewAuthApplicationService 创建认证应用服务实例
func NewAuthApplicationService(
	users UserGateway,
	sessions domain.SessionRepository,
	carts CartRebinder,
	jwtSecret string,
	sessionTTL time.Duration,
) *AuthApplicationService {
	return &AuthApplicationService{
		users:      users,
		sessions:   sessions,
		carts:      carts,
		jwtSecret:  []byte(jwtSecret),
		sessionTTL: sessionTTL,
	}
}

// Register 注册新用户并直接登录
func (s *AuthApplicationService) Register(ctx context.Context, cmd RegisterCommand) (*SignInResult, error) {
	if cmd.Password != cmd.ConfirmPassword {
		return nil, errors.New("passwords do not match")
	}

	if _, err := s.users.GetByEmail(ctx, cmd.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.users.Create(ctx, cmd.Name, cmd.Email, string(hash))
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "User registered", "user_id", account.ID, "email", account.Email)
	return s.establishSession(ctx, account, cmd.SessionCartID)
}

// SignIn 邮箱密码登录，成功后改绑会话购物车
func (s *AuthApplicationService) SignIn(ctx context.Context, cmd SignInCommand) (*SignInResult, error) {
	account, err := s.users.GetByEmail(ctx, cmd.Email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(cmd.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.establishSession(ctx, account, cmd.SessionCartID)
}

// SignOut 吊销当前会话
func (s *AuthApplicationService) SignOut(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return domain.ErrInvalidToken
	}
	return s.sessions.Delete(ctx, claims.ID)
}

// Authenticate 校验令牌并返回请求身份；会话已吊销视为未登录
func (s *AuthApplicationService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return domain.Identity{}, domain.ErrSessionNotFound
	}

	return domain.Identity{
		UserID:        session.UserID,
		Role:          session.Role,
		SessionCartID: session.SessionCartID,
	}, nil
}

func (s *AuthApplicationService) establishSession(ctx context.Context, account *UserAccount, sessionCartID string) (*SignInResult, error) {
	if s.carts != nil && sessionCartID != "" {
		if err := s.carts.RebindToUser(ctx, sessionCartID, account.ID); err != nil {
			logger.Warn(ctx, "Failed to rebind session cart",
				"user_id", account.ID, "session_cart_id", sessionCartID, "error", err)
		}
	}

	tokenID := uuid.New().String()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        tokenID,
		Subject:   strconv.FormatUint(uint64(account.ID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	session := &domain.Session{
		TokenID:       tokenID,
		UserID:        account.ID,
		Role:          account.Role,
		SessionCartID: sessionCartID,
	}
	if err := s.sessions.Save(ctx, session, int(s.sessionTTL.Seconds())); err != nil {
		return nil, err
	}

	logger.Info(ctx, "User signed in", "user_id", account.ID)
	return &SignInResult{
		Token:  token,
		UserID: account.ID,
		Name:   account.Name,
		Email:  account.Email,
		Role:   account.Role,
	}, nil
}

func (s *AuthApplicationService) parseToken(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
