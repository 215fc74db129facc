package rental

import (
	"time"

	"github.com/carrental/carrental/internal/customer"
	"github.com/carrental/carrental/internal/vehicle"
)

// VehicleSnapshot 租车时刻的车辆快照。车辆后续被改价或删除不影响历史记录。
type VehicleSnapshot struct {
	ID        int              `gorm:"index"`
	Category  vehicle.Category `gorm:"type:varchar(16)"`
	Brand     string           `gorm:"size:64"`
	Model     string           `gorm:"size:64"`
	DailyRate float64
}

// CustomerSnapshot 租车时刻的客户快照。
type CustomerSnapshot struct {
	ID   int           `gorm:"index"`
	Name string        `gorm:"size:64"`
	Tier customer.Tier `gorm:"type:varchar(16)"`
}

// Record 租赁记录：一次租车到还车周期的持久化凭证。
// 只由租车操作创建、还车操作修改，从不删除。
// 不变量：Returned == (ReturnDate != nil)。
type Record struct {
	ID         int              `gorm:"primaryKey"`
	Vehicle    VehicleSnapshot  `gorm:"embedded;embeddedPrefix:vehicle_"`
	Customer   CustomerSnapshot `gorm:"embedded;embeddedPrefix:customer_"`
	RentalDate time.Time        `gorm:"not null"`
	ReturnDate *time.Time
	RentalDays int     `gorm:"not null"`
	TotalRent  float64 `gorm:"not null;default:0"`
	Returned   bool    `gorm:"index;not null;default:false"`
}

func snapshotVehicle(v *vehicle.Vehicle) VehicleSnapshot {
	return VehicleSnapshot{
		ID:        v.ID,
		Category:  v.Category,
		Brand:     v.Brand,
		Model:     v.Model,
		DailyRate: v.DailyRate,
	}
}

func snapshotCustomer(c *customer.Customer) CustomerSnapshot {
	return CustomerSnapshot{
		ID:   c.ID,
		Name: c.Name,
		Tier: c.Tier,
	}
}
