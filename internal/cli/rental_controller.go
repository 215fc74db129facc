package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/carrental/carrental/internal/rental"
)

// RentalController 租赁流程子菜单：租车、还车与记录查询。
type RentalController struct {
	rentals *rental.Service
	in      *Input
}

func NewRentalController(rentals *rental.Service, in *Input) *RentalController {
	return &RentalController{rentals: rentals, in: in}
}

func (c *RentalController) Run(ctx context.Context) {
	for {
		fmt.Println()
		fmt.Println("===== 租赁管理 =====")
		fmt.Println("1. 租车")
		fmt.Println("2. 还车")
		fmt.Println("3. 查看所有租赁记录")
		fmt.Println("4. 查看未归还记录")
		fmt.Println("5. 按车辆查询记录")
		fmt.Println("6. 按客户查询记录")
		fmt.Println("0. 返回主菜单")

		switch c.in.Int("请选择：") {
		case 1:
			c.rent(ctx)
		case 2:
			c.returnVehicle(ctx)
		case 3:
			c.listAll(ctx)
		case 4:
			c.listUnreturned(ctx)
		case 5:
			c.listByVehicle(ctx)
		case 6:
			c.listByCustomer(ctx)
		case 0:
			return
		default:
			fmt.Println("无效选择！")
		}
	}
}

func (c *RentalController) rent(ctx context.Context) {
	req := RentRequest{
		VehicleID:  c.in.Int("车辆ID："),
		CustomerID: c.in.Int("客户ID："),
		Days:       c.in.Int("租赁天数："),
	}
	if err := checkRequest(req); err != nil {
		fmt.Println("输入有误：", err)
		return
	}

	quote, err := c.rentals.Quote(ctx, req.VehicleID, req.CustomerID, req.Days)
	if err == nil {
		fmt.Printf("预估租金：%.2f 元\n", quote)
		if confirm := c.in.Line("确认租车？(y/n)："); confirm != "y" && confirm != "Y" {
			fmt.Println("已取消。")
			return
		}
	}

	rec, err := c.rentals.Rent(ctx, req.VehicleID, req.CustomerID, req.Days)
	if err != nil {
		c.reportWorkflowError(err)
		return
	}
	fmt.Printf("租车成功！记录ID：%d，总租金：%.2f 元\n", rec.ID, rec.TotalRent)
}

func (c *RentalController) returnVehicle(ctx context.Context) {
	id := c.in.Int("租赁记录ID：")
	rec, err := c.rentals.Return(ctx, id)
	if err != nil {
		c.reportWorkflowError(err)
		return
	}
	fmt.Printf("还车成功！车辆 %d 已归还，归还日期：%s\n",
		rec.Vehicle.ID, rec.ReturnDate.Format("2006-01-02"))
}

func (c *RentalController) listAll(ctx context.Context) {
	records, err := c.rentals.AllRecords(ctx)
	if err != nil {
		fmt.Println("查询失败：", err)
		return
	}
	printRecords(records)
}

func (c *RentalController) listUnreturned(ctx context.Context) {
	records, err := c.rentals.UnreturnedRecords(ctx)
	if err != nil {
		fmt.Println("查询失败：", err)
		return
	}
	printRecords(records)
}

func (c *RentalController) listByVehicle(ctx context.Context) {
	id := c.in.Int("车辆ID：")
	records, err := c.rentals.RecordsByVehicle(ctx, id)
	if err != nil {
		fmt.Println("查询失败：", err)
		return
	}
	printRecords(records)
}

func (c *RentalController) listByCustomer(ctx context.Context) {
	id := c.in.Int("客户ID：")
	records, err := c.rentals.RecordsByCustomer(ctx, id)
	if err != nil {
		fmt.Println("查询失败：", err)
		return
	}
	printRecords(records)
}

func (c *RentalController) reportWorkflowError(err error) {
	switch {
	case errors.Is(err, rental.ErrVehicleUnavailable):
		fmt.Println("车辆不存在或已被出租！")
	case errors.Is(err, rental.ErrCustomerNotFound):
		fmt.Println("客户不存在！")
	case errors.Is(err, rental.ErrRecordNotFound):
		fmt.Println("租赁记录不存在！")
	case errors.Is(err, rental.ErrAlreadyReturned):
		fmt.Println("车辆已经归还！")
	case errors.Is(err, rental.ErrInvalidDays):
		fmt.Println("租赁天数必须为正整数！")
	case errors.Is(err, rental.ErrPersistence):
		fmt.Println("保存失败，操作未完成：", err)
	default:
		fmt.Println("操作失败：", err)
	}
}
