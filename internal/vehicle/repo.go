package vehicle

import "context"

// Repo 车辆存储接口。Add 负责分配自增 ID 并立刻持久化；
// FindByID 的第二个返回值显式区分“未找到”和存储错误。
type Repo interface {
	Add(ctx context.Context, v *Vehicle) error
	Update(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, id int) error
	FindByID(ctx context.Context, id int) (*Vehicle, bool, error)
	FindAll(ctx context.Context) ([]Vehicle, error)
	NextID(ctx context.Context) (int, error)
}
