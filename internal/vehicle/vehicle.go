package vehicle

import "fmt"

// Category 车辆类别（持久化为字符串）。
type Category string

const (
	CategorySedan Category = "sedan" // 轿车
	CategoryVan   Category = "van"   // 面包车
	CategoryBus   Category = "bus"   // 巴士
	CategoryCoach Category = "coach" // 客车
)

// Categories 所有合法类别。
var Categories = []Category{CategorySedan, CategoryVan, CategoryBus, CategoryCoach}

// ParseCategory 解析类别字符串。
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown vehicle category: %q", s)
}

// Vehicle 车辆实体。类别以标签区分，类别特有字段（座位数、变速箱、载重）
// 仅用于展示，租赁流程不读取。
type Vehicle struct {
	ID        int      `gorm:"primaryKey"`
	Category  Category `gorm:"type:varchar(16);index;not null"`
	Brand     string   `gorm:"size:64"`
	Model     string   `gorm:"size:64"`
	DailyRate float64  `gorm:"not null;default:0"`
	Rented    bool     `gorm:"index;not null;default:false"`

	// 类别特有属性
	Seats        int     // bus / coach
	Transmission string  `gorm:"size:16"` // sedan
	LoadCapacity float64 // van（吨）
}

// Available 车辆当前是否可租。
func (v Vehicle) Available() bool {
	return !v.Rented
}

// DisplayName 品牌+型号展示名。
func (v Vehicle) DisplayName() string {
	return v.Brand + " " + v.Model
}

// defaultSeats 文件格式中座位数字段的缺省值。
func defaultSeats(v Vehicle) int {
	if v.Seats > 0 {
		return v.Seats
	}
	switch v.Category {
	case CategoryVan:
		return 9
	case CategorySedan:
		return 5
	default:
		return 0
	}
}
