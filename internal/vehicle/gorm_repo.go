package vehicle

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormRepo 基于 gorm/sqlite 的车辆存储。ID 仍由应用侧按最大值+1 分配，
// 与文件存储保持一致的编号语义。
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) Add(ctx context.Context, v *Vehicle) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if v == nil {
		return fmt.Errorf("vehicle is nil")
	}
	id, err := r.NextID(ctx)
	if err != nil {
		return err
	}
	v.ID = id
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *GormRepo) Update(ctx context.Context, v *Vehicle) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if v == nil {
		return fmt.Errorf("vehicle is nil")
	}
	res := r.db.WithContext(ctx).Save(v)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vehicle %d not found", v.ID)
	}
	return nil
}

func (r *GormRepo) Delete(ctx context.Context, id int) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	res := r.db.WithContext(ctx).Delete(&Vehicle{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vehicle %d not found", id)
	}
	return nil
}

func (r *GormRepo) FindByID(ctx context.Context, id int) (*Vehicle, bool, error) {
	if r == nil || r.db == nil {
		return nil, false, fmt.Errorf("repo db is nil")
	}
	var v Vehicle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &v, true, nil
}

func (r *GormRepo) FindAll(ctx context.Context) ([]Vehicle, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var vehicles []Vehicle
	if err := r.db.WithContext(ctx).Order("id").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *GormRepo) NextID(ctx context.Context) (int, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repo db is nil")
	}
	var maxID int
	err := r.db.WithContext(ctx).Model(&Vehicle{}).
		Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error
	if err != nil {
		return 0, err
	}
	return maxID + 1, nil
}
