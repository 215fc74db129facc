package rental

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carrental/carrental/internal/common/logger"
	"github.com/carrental/carrental/internal/customer"
	"github.com/carrental/carrental/internal/vehicle"
)

// Service 租赁流程引擎：租车与还车的编排、租金计算、记录查询。
// 车辆的 Rented 标志只允许本引擎翻转，以维持
// “Rented 为真 当且仅当 存在未归还记录引用该车辆”这一跨实体不变量。
//
// 两个写操作都是两段式：先翻车辆标志并持久化，再写租赁记录；
// 第二段失败时执行补偿动作，把车辆标志回滚并持久化。
type Service struct {
	vehicles  *vehicle.Service
	customers *customer.Service
	records   Repo
	log       logger.Logger
	now       func() time.Time
}

func NewService(vehicles *vehicle.Service, customers *customer.Service, records Repo, log logger.Logger) *Service {
	return &Service{
		vehicles:  vehicles,
		customers: customers,
		records:   records,
		log:       log,
		now:       time.Now,
	}
}

// Rent 租车。前置条件按顺序检查，任一失败立即返回且无副作用：
// 车辆存在且可租、客户存在、天数为正。
// 成功返回完整填充的租赁记录。
func (s *Service) Rent(ctx context.Context, vehicleID, customerID, days int) (*Record, error) {
	if s == nil || s.records == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if days <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDays, days)
	}

	v, err := s.vehicles.ByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return nil, fmt.Errorf("%w: vehicle %d", ErrVehicleUnavailable, vehicleID)
		}
		return nil, err
	}
	if v.Rented {
		return nil, fmt.Errorf("%w: vehicle %d", ErrVehicleUnavailable, vehicleID)
	}

	c, err := s.customers.ByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %d", ErrCustomerNotFound, customerID)
		}
		return nil, err
	}

	total := CalculateRent(v.DailyRate, days, c.Tier)

	// 第一段：翻车辆标志并持久化。失败则整个操作未发生。
	if err := s.vehicles.MarkRented(ctx, v.ID); err != nil {
		return nil, fmt.Errorf("%w: mark vehicle %d rented: %v", ErrPersistence, v.ID, err)
	}

	rec := &Record{
		Vehicle:    snapshotVehicle(v),
		Customer:   snapshotCustomer(c),
		RentalDate: s.now(),
		RentalDays: days,
		TotalRent:  total,
		Returned:   false,
	}

	// 第二段：写记录。失败时补偿回滚车辆标志。
	if err := s.records.Add(ctx, rec); err != nil {
		if undoErr := s.vehicles.MarkAvailable(ctx, v.ID); undoErr != nil {
			// 补偿本身失败：车辆标志与记录状态已不一致，单独上报
			s.log.Errorf("rent rollback failed, vehicle %d flag inconsistent: %v (original: %v)", v.ID, undoErr, err)
			return nil, fmt.Errorf("%w: save rental record failed and rollback failed: %v", ErrPersistence, errors.Join(err, undoErr))
		}
		s.log.Warnf("rent aborted, vehicle %d flag rolled back: %v", v.ID, err)
		return nil, fmt.Errorf("%w: save rental record: %v", ErrPersistence, err)
	}

	s.log.Infof("rented vehicle %d to customer %d for %d days, total %.2f (record %d)",
		v.ID, c.ID, days, total, rec.ID)
	return rec, nil
}

// Return 还车。记录必须存在且未归还。
// 成功返回更新后的记录（归还时间已填充）。
func (s *Service) Return(ctx context.Context, recordID int) (*Record, error) {
	if s == nil || s.records == nil {
		return nil, fmt.Errorf("service not initialized")
	}

	rec, ok, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: record %d", ErrRecordNotFound, recordID)
	}
	if rec.Returned {
		return nil, fmt.Errorf("%w: record %d", ErrAlreadyReturned, recordID)
	}

	// 第一段：把车辆标记回可租并持久化。失败则中止，无进一步变更。
	if err := s.vehicles.MarkAvailable(ctx, rec.Vehicle.ID); err != nil {
		return nil, fmt.Errorf("%w: mark vehicle %d available: %v", ErrPersistence, rec.Vehicle.ID, err)
	}

	returnedAt := s.now()
	rec.ReturnDate = &returnedAt
	rec.Returned = true

	// 第二段：写记录。失败时补偿，把车辆标志翻回已租出。
	if err := s.records.Update(ctx, rec); err != nil {
		if undoErr := s.vehicles.MarkRented(ctx, rec.Vehicle.ID); undoErr != nil {
			s.log.Errorf("return rollback failed, vehicle %d flag inconsistent: %v (original: %v)", rec.Vehicle.ID, undoErr, err)
			return nil, fmt.Errorf("%w: update rental record failed and rollback failed: %v", ErrPersistence, errors.Join(err, undoErr))
		}
		s.log.Warnf("return aborted, vehicle %d flag rolled back: %v", rec.Vehicle.ID, err)
		return nil, fmt.Errorf("%w: update rental record: %v", ErrPersistence, err)
	}

	s.log.Infof("returned vehicle %d (record %d)", rec.Vehicle.ID, rec.ID)
	return rec, nil
}

// Quote 按车辆、客户与天数预估租金，不产生任何状态变更。
func (s *Service) Quote(ctx context.Context, vehicleID, customerID, days int) (float64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDays, days)
	}
	v, err := s.vehicles.ByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return 0, fmt.Errorf("%w: vehicle %d", ErrVehicleUnavailable, vehicleID)
		}
		return 0, err
	}
	c, err := s.customers.ByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return 0, fmt.Errorf("%w: customer %d", ErrCustomerNotFound, customerID)
		}
		return 0, err
	}
	return CalculateRent(v.DailyRate, days, c.Tier), nil
}

// RecordByID 按 ID 查询租赁记录。
func (s *Service) RecordByID(ctx context.Context, id int) (*Record, error) {
	rec, ok, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: record %d", ErrRecordNotFound, id)
	}
	return rec, nil
}

// AllRecords 查询全部租赁记录。
func (s *Service) AllRecords(ctx context.Context) ([]Record, error) {
	return s.records.FindAll(ctx)
}

// UnreturnedRecords 查询未归还的租赁记录。
func (s *Service) UnreturnedRecords(ctx context.Context) ([]Record, error) {
	return s.records.FindUnreturned(ctx)
}

// RecordsByVehicle 查询某车辆的全部租赁记录。
func (s *Service) RecordsByVehicle(ctx context.Context, vehicleID int) ([]Record, error) {
	return s.records.FindByVehicle(ctx, vehicleID)
}

// RecordsByCustomer 查询某客户的全部租赁记录。
func (s *Service) RecordsByCustomer(ctx context.Context, customerID int) ([]Record, error) {
	return s.records.FindByCustomer(ctx, customerID)
}
