package customer

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound 客户不存在。
var ErrNotFound = errors.New("customer not found")

// Service 封装客户领域的核心用例。
// 删除是宽松的：即使存在未归还的租赁记录也允许删除，
// 记录中保存的是客户快照，删除不会产生悬空引用。
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(ctx context.Context, c *Customer) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	if c == nil {
		return fmt.Errorf("customer is nil")
	}
	if c.Name == "" {
		return fmt.Errorf("customer name required")
	}
	if _, err := ParseTier(string(c.Tier)); err != nil {
		return err
	}
	return s.repo.Add(ctx, c)
}

func (s *Service) Update(ctx context.Context, c *Customer) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	if c == nil {
		return fmt.Errorf("customer is nil")
	}
	_, ok, err := s.repo.FindByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	if _, err := ParseTier(string(c.Tier)); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	_, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ByID(ctx context.Context, id int) (*Customer, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	c, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *Service) All(ctx context.Context) ([]Customer, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	return s.repo.FindAll(ctx)
}
