package user

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormRepo 基于 gorm/sqlite 的用户存储。
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) Add(ctx context.Context, u *User) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if u == nil {
		return fmt.Errorf("user is nil")
	}
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *GormRepo) Update(ctx context.Context, u *User) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if u == nil {
		return fmt.Errorf("user is nil")
	}
	res := r.db.WithContext(ctx).Save(u)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %q not found", u.Username)
	}
	return nil
}

func (r *GormRepo) Delete(ctx context.Context, username string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	res := r.db.WithContext(ctx).Where("username = ?", username).Delete(&User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %q not found", username)
	}
	return nil
}

func (r *GormRepo) FindByUsername(ctx context.Context, username string) (*User, bool, error) {
	if r == nil || r.db == nil {
		return nil, false, fmt.Errorf("repo db is nil")
	}
	var u User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &u, true, nil
}

func (r *GormRepo) FindAll(ctx context.Context) ([]User, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var users []User
	if err := r.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
