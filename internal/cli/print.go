package cli

import (
	"fmt"

	"github.com/carrental/carrental/internal/customer"
	"github.com/carrental/carrental/internal/rental"
	"github.com/carrental/carrental/internal/user"
	"github.com/carrental/carrental/internal/vehicle"
)

var categoryNames = map[vehicle.Category]string{
	vehicle.CategorySedan: "轿车",
	vehicle.CategoryVan:   "面包车",
	vehicle.CategoryBus:   "巴士",
	vehicle.CategoryCoach: "客车",
}

var tierNames = map[customer.Tier]string{
	customer.TierRegular:    "普通",
	customer.TierVIP:        "VIP",
	customer.TierEnterprise: "企业",
}

func categoryName(c vehicle.Category) string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

func tierName(t customer.Tier) string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return string(t)
}

func printVehicle(v vehicle.Vehicle) {
	status := "可租"
	if v.Rented {
		status = "已租出"
	}
	extra := ""
	switch v.Category {
	case vehicle.CategorySedan:
		extra = fmt.Sprintf("，变速箱：%s", v.Transmission)
	case vehicle.CategoryVan:
		extra = fmt.Sprintf("，载重：%.1f吨", v.LoadCapacity)
	case vehicle.CategoryBus, vehicle.CategoryCoach:
		extra = fmt.Sprintf("，座位数：%d", v.Seats)
	}
	fmt.Printf("  [%d] %s %s（%s）日租金 %.2f 元，%s%s\n",
		v.ID, v.Brand, v.Model, categoryName(v.Category), v.DailyRate, status, extra)
}

func printVehicles(vehicles []vehicle.Vehicle) {
	if len(vehicles) == 0 {
		fmt.Println("  （无）")
		return
	}
	for _, v := range vehicles {
		printVehicle(v)
	}
}

func printCustomer(c customer.Customer) {
	fmt.Printf("  [%d] %s（%s客户）电话：%s\n", c.ID, c.Name, tierName(c.Tier), c.Phone)
}

func printCustomers(customers []customer.Customer) {
	if len(customers) == 0 {
		fmt.Println("  （无）")
		return
	}
	for _, c := range customers {
		printCustomer(c)
	}
}

func printRecord(rec rental.Record) {
	status := "未归还"
	returnDate := "-"
	if rec.Returned {
		status = "已归还"
	}
	if rec.ReturnDate != nil {
		returnDate = rec.ReturnDate.Format("2006-01-02")
	}
	fmt.Printf("  [%d] 车辆 %d（%s %s）客户 %d（%s）租期 %s 起，归还 %s，租金 %.2f 元，%s\n",
		rec.ID, rec.Vehicle.ID, rec.Vehicle.Brand, rec.Vehicle.Model,
		rec.Customer.ID, rec.Customer.Name,
		rec.RentalDate.Format("2006-01-02"), returnDate, rec.TotalRent, status)
}

func printRecords(records []rental.Record) {
	if len(records) == 0 {
		fmt.Println("  （无）")
		return
	}
	for _, rec := range records {
		printRecord(rec)
	}
}

func printUsers(users []user.User) {
	if len(users) == 0 {
		fmt.Println("  （无）")
		return
	}
	for _, u := range users {
		fmt.Printf("  %s（%s）\n", u.Username, u.Role)
	}
}
