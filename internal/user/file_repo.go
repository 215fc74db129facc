package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/carrental/carrental/internal/storage"
)

// FileRepo 基于逐行文本文件的用户存储。
// 行格式：用户名,密码哈希,角色
type FileRepo struct {
	file  *storage.TextFile
	users []User
}

func NewFileRepo(path string) (*FileRepo, error) {
	r := &FileRepo{file: storage.NewTextFile(path)}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) Add(_ context.Context, u *User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}
	r.users = append(r.users, *u)
	if err := r.save(); err != nil {
		r.users = r.users[:len(r.users)-1]
		return err
	}
	return nil
}

func (r *FileRepo) Update(_ context.Context, u *User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}
	for i := range r.users {
		if r.users[i].Username == u.Username {
			old := r.users[i]
			r.users[i] = *u
			if err := r.save(); err != nil {
				r.users[i] = old
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("user %q not found", u.Username)
}

func (r *FileRepo) Delete(_ context.Context, username string) error {
	for i := range r.users {
		if r.users[i].Username == username {
			old := r.users[i]
			r.users = append(r.users[:i], r.users[i+1:]...)
			if err := r.save(); err != nil {
				r.users = append(r.users, old)
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("user %q not found", username)
}

func (r *FileRepo) FindByUsername(_ context.Context, username string) (*User, bool, error) {
	for i := range r.users {
		if r.users[i].Username == username {
			u := r.users[i]
			return &u, true, nil
		}
	}
	return nil, false, nil
}

func (r *FileRepo) FindAll(_ context.Context) ([]User, error) {
	out := make([]User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *FileRepo) load() error {
	lines, err := r.file.ReadLines()
	if err != nil {
		return err
	}
	r.users = r.users[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			continue
		}
		r.users = append(r.users, User{
			Username:     parts[0],
			PasswordHash: parts[1],
			Role:         parts[2],
		})
	}
	return nil
}

func (r *FileRepo) save() error {
	lines := make([]string, 0, len(r.users))
	for i := range r.users {
		u := r.users[i]
		lines = append(lines, fmt.Sprintf("%s,%s,%s", u.Username, u.PasswordHash, u.Role))
	}
	return r.file.WriteLines(lines)
}
