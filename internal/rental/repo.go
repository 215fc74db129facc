package rental

import "context"

// Repo 租赁记录存储接口。Add 负责分配自增 ID 并立刻持久化；
// 记录只增改不删。
type Repo interface {
	Add(ctx context.Context, rec *Record) error
	Update(ctx context.Context, rec *Record) error
	FindByID(ctx context.Context, id int) (*Record, bool, error)
	FindAll(ctx context.Context) ([]Record, error)
	FindUnreturned(ctx context.Context) ([]Record, error)
	FindByVehicle(ctx context.Context, vehicleID int) ([]Record, error)
	FindByCustomer(ctx context.Context, customerID int) ([]Record, error)
	NextID(ctx context.Context) (int, error)
}
