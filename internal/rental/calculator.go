package rental

import "github.com/carrental/carrental/internal/customer"

// CalculateRent 计算租金：日租金 × 天数 × 客户等级折扣。纯函数，无副作用。
// 未知等级由 Tier.Discount 按无折扣回退。days 为正由调用方保证。
func CalculateRent(dailyRate float64, days int, tier customer.Tier) float64 {
	return dailyRate * float64(days) * tier.Discount()
}
