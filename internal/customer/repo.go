package customer

import "context"

// Repo 客户存储接口。Add 负责分配自增 ID 并立刻持久化。
type Repo interface {
	Add(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id int) error
	FindByID(ctx context.Context, id int) (*Customer, bool, error)
	FindAll(ctx context.Context) ([]Customer, error)
	NextID(ctx context.Context) (int, error)
}
