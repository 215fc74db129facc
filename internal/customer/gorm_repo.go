package customer

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormRepo 基于 gorm/sqlite 的客户存储。
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) Add(ctx context.Context, c *Customer) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if c == nil {
		return fmt.Errorf("customer is nil")
	}
	id, err := r.NextID(ctx)
	if err != nil {
		return err
	}
	c.ID = id
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) Update(ctx context.Context, c *Customer) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if c == nil {
		return fmt.Errorf("customer is nil")
	}
	res := r.db.WithContext(ctx).Save(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("customer %d not found", c.ID)
	}
	return nil
}

func (r *GormRepo) Delete(ctx context.Context, id int) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	res := r.db.WithContext(ctx).Delete(&Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("customer %d not found", id)
	}
	return nil
}

func (r *GormRepo) FindByID(ctx context.Context, id int) (*Customer, bool, error) {
	if r == nil || r.db == nil {
		return nil, false, fmt.Errorf("repo db is nil")
	}
	var c Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &c, true, nil
}

func (r *GormRepo) FindAll(ctx context.Context) ([]Customer, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var customers []Customer
	if err := r.db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *GormRepo) NextID(ctx context.Context) (int, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repo db is nil")
	}
	var maxID int
	err := r.db.WithContext(ctx).Model(&Customer{}).
		Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error
	if err != nil {
		return 0, err
	}
	return maxID + 1, nil
}
