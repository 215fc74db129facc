package rental

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormRepo 基于 gorm/sqlite 的租赁记录存储。快照字段随记录完整落库，
// 重新加载不依赖车辆/客户集合。
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) Add(ctx context.Context, rec *Record) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if rec == nil {
		return fmt.Errorf("record is nil")
	}
	id, err := r.NextID(ctx)
	if err != nil {
		return err
	}
	rec.ID = id
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *GormRepo) Update(ctx context.Context, rec *Record) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if rec == nil {
		return fmt.Errorf("record is nil")
	}
	res := r.db.WithContext(ctx).Save(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("record %d not found", rec.ID)
	}
	return nil
}

func (r *GormRepo) FindByID(ctx context.Context, id int) (*Record, bool, error) {
	if r == nil || r.db == nil {
		return nil, false, fmt.Errorf("repo db is nil")
	}
	var rec Record
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &rec, true, nil
}

func (r *GormRepo) FindAll(ctx context.Context) ([]Record, error) {
	return r.list(ctx, nil)
}

func (r *GormRepo) FindUnreturned(ctx context.Context) ([]Record, error) {
	return r.list(ctx, map[string]interface{}{"returned": false})
}

func (r *GormRepo) FindByVehicle(ctx context.Context, vehicleID int) ([]Record, error) {
	return r.list(ctx, map[string]interface{}{"vehicle_id": vehicleID})
}

func (r *GormRepo) FindByCustomer(ctx context.Context, customerID int) ([]Record, error) {
	return r.list(ctx, map[string]interface{}{"customer_id": customerID})
}

func (r *GormRepo) NextID(ctx context.Context) (int, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repo db is nil")
	}
	var maxID int
	err := r.db.WithContext(ctx).Model(&Record{}).
		Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error
	if err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

func (r *GormRepo) list(ctx context.Context, where map[string]interface{}) ([]Record, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	q := r.db.WithContext(ctx).Model(&Record{}).Order("id")
	if where != nil {
		q = q.Where(where)
	}
	var records []Record
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
