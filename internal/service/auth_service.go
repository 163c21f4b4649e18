package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"gradebook_backend/internal/config"
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/repository"
	"gradebook_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const revokedTokenPrefix = "auth:revoked:"

type AuthService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
	Cfg      *config.Store
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Store) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Redis:    rdb,
		Cfg:      cfg,
	}
}

// Signup 注册新用户。两次口令不一致或邮箱已占用时不写任何行；
// 邮箱唯一性由 users.email 的唯一索引保证，并发重复注册只有一个成功。
func (s *AuthService) Signup(name, email, password, repeatPassword string, role model.UserRole) (*model.User, error) {
	if password != repeatPassword {
		return nil, util.ErrPasswordMismatch
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: util.HashPassword(password),
		Role:     role,
	}

	if err := s.UserRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, err
	}
	return user, nil
}

// Login 按 (email, 摘要) 单次查找；口令错误与邮箱不存在均返回 ErrUserNotFound
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByCredentials(email, util.HashPassword(password))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", util.ErrUserNotFound
		}
		return nil, "", err
	}

	jwtCfg := s.Cfg.Load().JWT
	token, err := util.GenerateJWT(user, jwtCfg.Secret, jwtCfg.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetProfile 按ID取当前用户资料
func (s *AuthService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Logout 将当前令牌加入 Redis 拒绝名单，保留到令牌自然过期为止
func (s *AuthService) Logout(ctx context.Context, tokenString string, claims *util.Claims) error {
	ttl := s.Cfg.Load().JWT.ExpireTime
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}
	return s.Redis.Set(ctx, revokedTokenPrefix+tokenDigest(tokenString), 1, ttl).Err()
}

// IsTokenRevoked 供认证中间件查询拒绝名单；Redis 故障时放行并由调用方记录
func (s *AuthService) IsTokenRevoked(ctx context.Context, tokenString string) bool {
	if s.Redis == nil {
		return false
	}
	n, err := s.Redis.Exists(ctx, revokedTokenPrefix+tokenDigest(tokenString)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
