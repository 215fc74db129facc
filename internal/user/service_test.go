package user

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo, err := NewFileRepo(filepath.Join(t.TempDir(), "users.txt"))
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	return NewService(repo)
}

func TestLoginAndPasswordHashing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, "admin", "admin123", RoleAdmin); err != nil {
		t.Fatalf("Add: %v", err)
	}

	u, err := svc.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !u.IsAdmin() {
		t.Fatalf("expected admin role")
	}
	if u.PasswordHash == "admin123" {
		t.Fatalf("password must not be stored in plaintext")
	}

	if _, err := svc.Login(ctx, "admin", "wrong"); !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}
	// 不存在的用户返回同样的错误，不暴露用户名是否存在
	if _, err := svc.Login(ctx, "ghost", "admin123"); !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}
}

func TestAddDuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, "op", "pass1234", RoleOperator); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Add(ctx, "op", "other", RoleOperator); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestUpdatePasswordAndRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, "op", "pass1234", RoleOperator); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Update(ctx, "op", "newpass", RoleAdmin); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, err := svc.Login(ctx, "op", "pass1234"); !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("old password should no longer work")
	}
	u, err := svc.Login(ctx, "op", "newpass")
	if err != nil {
		t.Fatalf("Login with new password: %v", err)
	}
	if u.Role != RoleAdmin {
		t.Fatalf("expected role admin, got %s", u.Role)
	}

	if err := svc.Update(ctx, "ghost", "x", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRules(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, "admin", "admin123", RoleAdmin); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Add(ctx, "op", "pass1234", RoleOperator); err != nil {
		t.Fatalf("Add: %v", err)
	}

	current := &User{Username: "admin", Role: RoleAdmin}
	if err := svc.Delete(ctx, current, "admin"); !errors.Is(err, ErrDeleteSelf) {
		t.Fatalf("expected ErrDeleteSelf, got %v", err)
	}
	if err := svc.Delete(ctx, current, "op"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, current, "op"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSeedDefaultAdmin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.SeedDefaultAdmin(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("SeedDefaultAdmin: %v", err)
	}
	if !created {
		t.Fatalf("expected admin to be created on empty store")
	}

	created, err = svc.SeedDefaultAdmin(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("SeedDefaultAdmin: %v", err)
	}
	if created {
		t.Fatalf("seed must be a no-op on non-empty store")
	}
}
