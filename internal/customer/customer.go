package customer

import "fmt"

// Tier 客户等级（持久化为字符串），决定租金折扣。
type Tier string

const (
	TierRegular    Tier = "regular"    // 普通客户，无折扣
	TierVIP        Tier = "vip"        // VIP客户，95折
	TierEnterprise Tier = "enterprise" // 企业客户，9折
)

// Tiers 所有合法等级。
var Tiers = []Tier{TierRegular, TierVIP, TierEnterprise}

// Discount 等级对应的折扣系数。未知等级按普通客户处理（宽松回退），
// 不因脏数据导致租车失败。
func (t Tier) Discount() float64 {
	switch t {
	case TierVIP:
		return 0.95
	case TierEnterprise:
		return 0.9
	default:
		return 1.0
	}
}

// ParseTier 解析等级字符串。
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown customer tier: %q", s)
}

// Customer 客户实体。
type Customer struct {
	ID    int    `gorm:"primaryKey"`
	Name  string `gorm:"size:64;not null"`
	Phone string `gorm:"size:32"`
	Tier  Tier   `gorm:"type:varchar(16);not null"`
}
