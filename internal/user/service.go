package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrLoginFailed 用户名或密码错误。不区分具体原因，避免暴露用户名是否存在。
	ErrLoginFailed = errors.New("invalid username or password")
	// ErrExists 用户名已被占用。
	ErrExists = errors.New("username already exists")
	// ErrNotFound 用户不存在。
	ErrNotFound = errors.New("user not found")
	// ErrDeleteSelf 不允许删除当前登录用户。
	ErrDeleteSelf = errors.New("cannot delete current user")
)

// Service 封装用户领域的核心用例：登录验证与用户管理。
// 密码以 bcrypt 哈希落盘，明文只在验证瞬间存在。
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Login 登录验证。成功返回用户对象，失败统一返回 ErrLoginFailed。
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	u, ok, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLoginFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrLoginFailed
	}
	return u, nil
}

// Add 新增用户，用户名重复时拒绝。
func (s *Service) Add(ctx context.Context, username, password, role string) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	if username == "" || password == "" {
		return fmt.Errorf("username and password required")
	}
	if !ValidRole(role) {
		return fmt.Errorf("unknown role: %q", role)
	}
	if _, ok, err := s.repo.FindByUsername(ctx, username); err != nil {
		return err
	} else if ok {
		return ErrExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.Add(ctx, &User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
}

// Update 修改用户密码和/或角色。空密码表示保持原密码。
func (s *Service) Update(ctx context.Context, username, newPassword, newRole string) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	u, ok, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	if newPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	if newRole != "" {
		if !ValidRole(newRole) {
			return fmt.Errorf("unknown role: %q", newRole)
		}
		u.Role = newRole
	}
	return s.repo.Update(ctx, u)
}

// Delete 删除用户。不允许删除当前登录用户自身。
func (s *Service) Delete(ctx context.Context, current *User, username string) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	if current != nil && current.Username == username {
		return ErrDeleteSelf
	}
	_, ok, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, username)
}

// All 查询所有用户。
func (s *Service) All(ctx context.Context) ([]User, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	return s.repo.FindAll(ctx)
}

// SeedDefaultAdmin 用户集合为空时创建默认管理员。
func (s *Service) SeedDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	existing, err := s.All(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	if err := s.Add(ctx, username, password, RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}
