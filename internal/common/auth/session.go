package auth

import (
	"time"

	"github.com/carrental/carrental/internal/common/config"
)

// Session 当前登录操作员的会话。
type Session struct {
	Token     string
	Username  string
	Role      string
	ExpiresAt time.Time
}

// NewSession 为登录成功的用户创建会话。
func NewSession(cfg config.AuthConfig, username, role string) (*Session, error) {
	ttl := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	token, exp, err := GenerateSessionToken(cfg, username, role, ttl)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		Username:  username,
		Role:      role,
		ExpiresAt: exp,
	}, nil
}

// HasRole 基于令牌声明判断会话角色。以令牌为准，而非内存字段。
func (s *Session) HasRole(cfg config.AuthConfig, role string) bool {
	if s == nil || s.Token == "" {
		return false
	}
	claims, err := ParseSessionToken(cfg, s.Token)
	if err != nil {
		return false
	}
	return claims.Role == role
}
