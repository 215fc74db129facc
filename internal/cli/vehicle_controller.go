package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/carrental/carrental/internal/vehicle"
)

// VehicleController 车辆管理子菜单。
type VehicleController struct {
	vehicles *vehicle.Service
	in       *Input
}

func NewVehicleController(vehicles *vehicle.Service, in *Input) *VehicleController {
	return &VehicleController{vehicles: vehicles, in: in}
}

func (c *VehicleController) Run(ctx context.Context) {
	for {
		fmt.Println()
		fmt.Println("===== 车辆管理 =====")
		fmt.Println("1. 查看所有车辆")
		fmt.Println("2. 按类别查看车辆")
		fmt.Println("3. 查看可租车辆")
		fmt.Println("4. 按类别查看可租车辆")
		fmt.Println("5. 新增车辆")
		fmt.Println("6. 修改车辆")
		fmt.Println("7. 删除车辆")
		fmt.Println("0. 返回主菜单")

		switch c.in.Int("请选择：") {
		case 1:
			c.listAll(ctx)
		case 2:
			c.listByCategory(ctx, false)
		case 3:
			c.listAvailable(ctx)
		case 4:
			c.listByCategory(ctx, true)
		case 5:
			c.add(ctx)
		case 6:
			c.update(ctx)
		case 7:
			c.delete(ctx)
		case 0:
			return
		default:
			fmt.Println("无效选择！")
		}
	}
}

func (c *VehicleController) listAll(ctx context.Context) {
	vehicles, err := c.vehicles.All(ctx)
	if err != nil {
		fmt.Println("查询失败：", err)
		return
	}
	printVehicles(vehicles)
}

func (c *VehicleController) listAvailable(ctx context.Context) {
	vehicles, err := c.vehicles.Available(ctx)
	if err != nil {
		fmt.Println("查询失败：", err)
		return
	}
	printVehicles(vehicles)
}

func (c *VehicleController) listByCategory(ctx context.Context, onlyAvailable bool) {
	category, err := c.readCategory()
	if err != nil {
		fmt.Println(err)
		return
	}
	var vehicles []vehicle.Vehicle
	if onlyAvailable {
		vehicles, err = c.vehicles.AvailableByCategory(ctx, category)
	} else {
		vehicles, err = c.vehicles.ByCategory(ctx, category)
	}
	if err != nil {
		fmt.Println("查询失败：", err)
		return
	}
	printVehicles(vehicles)
}

func (c *VehicleController) add(ctx context.Context) {
	req := AddVehicleRequest{
		Category:  c.in.Line("类别（sedan/van/bus/coach）："),
		Brand:     c.in.Line("品牌："),
		Model:     c.in.Line("型号："),
		DailyRate: c.in.Float("日租金："),
	}
	switch vehicle.Category(req.Category) {
	case vehicle.CategorySedan:
		req.Transmission = c.in.Line("变速箱（自动/手动）：")
	case vehicle.CategoryVan:
		req.LoadCapacity = c.in.Float("载重（吨）：")
	case vehicle.CategoryBus, vehicle.CategoryCoach:
		req.Seats = c.in.Int("座位数：")
	}
	if err := checkRequest(req); err != nil {
		fmt.Println("输入有误：", err)
		return
	}

	v := &vehicle.Vehicle{
		Category:     vehicle.Category(req.Category),
		Brand:        req.Brand,
		Model:        req.Model,
		DailyRate:    req.DailyRate,
		Seats:        req.Seats,
		Transmission: req.Transmission,
		LoadCapacity: req.LoadCapacity,
	}
	if err := c.vehicles.Add(ctx, v); err != nil {
		fmt.Println("新增失败：", err)
		return
	}
	fmt.Printf("新增成功，车辆ID：%d\n", v.ID)
}

func (c *VehicleController) update(ctx context.Context) {
	id := c.in.Int("车辆ID：")
	v, err := c.vehicles.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			fmt.Println("车辆不存在！")
		} else {
			fmt.Println("查询失败：", err)
		}
		return
	}
	printVehicle(*v)

	if brand := c.in.Line(fmt.Sprintf("品牌（回车保留 %s）：", v.Brand)); brand != "" {
		v.Brand = brand
	}
	if model := c.in.Line(fmt.Sprintf("型号（回车保留 %s）：", v.Model)); model != "" {
		v.Model = model
	}
	if rate := c.in.Line(fmt.Sprintf("日租金（回车保留 %.2f）：", v.DailyRate)); rate != "" {
		fmt.Sscanf(rate, "%f", &v.DailyRate)
	}

	if err := c.vehicles.Update(ctx, v); err != nil {
		fmt.Println("修改失败：", err)
		return
	}
	fmt.Println("修改成功！")
}

func (c *VehicleController) delete(ctx context.Context) {
	id := c.in.Int("车辆ID：")
	if err := c.vehicles.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, vehicle.ErrNotFound):
			fmt.Println("车辆不存在！")
		case errors.Is(err, vehicle.ErrRented):
			fmt.Println("车辆已租出，归还后才能删除！")
		default:
			fmt.Println("删除失败：", err)
		}
		return
	}
	fmt.Println("删除成功！")
}

func (c *VehicleController) readCategory() (vehicle.Category, error) {
	s := c.in.Line("类别（sedan/van/bus/coach）：")
	category, err := vehicle.ParseCategory(s)
	if err != nil {
		return "", fmt.Errorf("未知类别：%s", s)
	}
	return category, nil
}
