package vehicle

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound 车辆不存在。
	ErrNotFound = errors.New("vehicle not found")
	// ErrRented 车辆处于租出状态，禁止删除。
	ErrRented = errors.New("vehicle is rented")
)

// Service 封装车辆领域的核心用例（不依赖 CLI），便于复用和测试。
// 注意：Rented 标志只允许租赁流程通过 MarkRented / MarkAvailable 翻转。
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(ctx context.Context, v *Vehicle) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	if v == nil {
		return fmt.Errorf("vehicle is nil")
	}
	if _, err := ParseCategory(string(v.Category)); err != nil {
		return err
	}
	if v.DailyRate < 0 {
		return fmt.Errorf("daily rate must be non-negative")
	}
	v.Rented = false
	return s.repo.Add(ctx, v)
}

// Update 修改品牌/型号/日租金等基础信息。不修改 Rented 标志。
func (s *Service) Update(ctx context.Context, v *Vehicle) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	if v == nil {
		return fmt.Errorf("vehicle is nil")
	}
	current, ok, err := s.repo.FindByID(ctx, v.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	if v.DailyRate < 0 {
		return fmt.Errorf("daily rate must be non-negative")
	}
	v.Rented = current.Rented
	return s.repo.Update(ctx, v)
}

// Delete 删除车辆。租出状态下禁止删除；历史（已归还）租赁记录不阻止删除。
func (s *Service) Delete(ctx context.Context, id int) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	v, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	if v.Rented {
		return ErrRented
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ByID(ctx context.Context, id int) (*Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	v, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *Service) All(ctx context.Context) ([]Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	return s.repo.FindAll(ctx)
}

// ByCategory 按类别查询。
func (s *Service) ByCategory(ctx context.Context, category Category) ([]Vehicle, error) {
	return s.filter(ctx, func(v Vehicle) bool {
		return v.Category == category
	})
}

// Available 查询所有可租车辆。
func (s *Service) Available(ctx context.Context) ([]Vehicle, error) {
	return s.filter(ctx, func(v Vehicle) bool {
		return v.Available()
	})
}

// AvailableByCategory 查询指定类别下的可租车辆。
func (s *Service) AvailableByCategory(ctx context.Context, category Category) ([]Vehicle, error) {
	return s.filter(ctx, func(v Vehicle) bool {
		return v.Available() && v.Category == category
	})
}

// MarkRented 将车辆标记为已租出并持久化。仅供租赁流程调用。
func (s *Service) MarkRented(ctx context.Context, id int) error {
	return s.setRented(ctx, id, true)
}

// MarkAvailable 将车辆标记为可租并持久化。仅供租赁流程调用。
func (s *Service) MarkAvailable(ctx context.Context, id int) error {
	return s.setRented(ctx, id, false)
}

func (s *Service) setRented(ctx context.Context, id int, rented bool) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	v, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	v.Rented = rented
	return s.repo.Update(ctx, v)
}

func (s *Service) filter(ctx context.Context, keep func(Vehicle) bool) ([]Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Vehicle, 0, len(all))
	for _, v := range all {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out, nil
}
