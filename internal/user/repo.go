package user

import "context"

// Repo 用户存储接口。
type Repo interface {
	Add(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, username string) error
	FindByUsername(ctx context.Context, username string) (*User, bool, error)
	FindAll(ctx context.Context) ([]User, error)
}
