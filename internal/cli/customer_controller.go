package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/carrental/carrental/internal/customer"
)

// CustomerController 客户管理子菜单。
type CustomerController struct {
	customers *customer.Service
	in        *Input
}

func NewCustomerController(customers *customer.Service, in *Input) *CustomerController {
	return &CustomerController{customers: customers, in: in}
}

func (c *CustomerController) Run(ctx context.Context) {
	for {
		fmt.Println()
		fmt.Println("===== 客户管理 =====")
		fmt.Println("1. 查看所有客户")
		fmt.Println("2. 新增客户")
		fmt.Println("3. 修改客户")
		fmt.Println("4. 删除客户")
		fmt.Println("0. 返回主菜单")

		switch c.in.Int("请选择：") {
		case 1:
			c.listAll(ctx)
		case 2:
			c.add(ctx)
		case 3:
			c.update(ctx)
		case 4:
			c.delete(ctx)
		case 0:
			return
		default:
			fmt.Println("无效选择！")
		}
	}
}

func (c *CustomerController) listAll(ctx context.Context) {
	customers, err := c.customers.All(ctx)
	if err != nil {
		fmt.Println("查询失败：", err)
		return
	}
	printCustomers(customers)
}

func (c *CustomerController) add(ctx context.Context) {
	req := AddCustomerRequest{
		Name:  c.in.Line("姓名："),
		Phone: c.in.Line("电话："),
		Tier:  c.in.Line("等级（regular/vip/enterprise）："),
	}
	if err := checkRequest(req); err != nil {
		fmt.Println("输入有误：", err)
		return
	}

	cust := &customer.Customer{
		Name:  req.Name,
		Phone: req.Phone,
		Tier:  customer.Tier(req.Tier),
	}
	if err := c.customers.Add(ctx, cust); err != nil {
		fmt.Println("新增失败：", err)
		return
	}
	fmt.Printf("新增成功，客户ID：%d\n", cust.ID)
}

func (c *CustomerController) update(ctx context.Context) {
	id := c.in.Int("客户ID：")
	cust, err := c.customers.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			fmt.Println("客户不存在！")
		} else {
			fmt.Println("查询失败：", err)
		}
		return
	}
	printCustomer(*cust)

	if name := c.in.Line(fmt.Sprintf("姓名（回车保留 %s）：", cust.Name)); name != "" {
		cust.Name = name
	}
	if phone := c.in.Line(fmt.Sprintf("电话（回车保留 %s）：", cust.Phone)); phone != "" {
		cust.Phone = phone
	}
	if tier := c.in.Line(fmt.Sprintf("等级（回车保留 %s）：", cust.Tier)); tier != "" {
		cust.Tier = customer.Tier(tier)
	}

	if err := c.customers.Update(ctx, cust); err != nil {
		fmt.Println("修改失败：", err)
		return
	}
	fmt.Println("修改成功！")
}

func (c *CustomerController) delete(ctx context.Context) {
	id := c.in.Int("客户ID：")
	if err := c.customers.Delete(ctx, id); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			fmt.Println("客户不存在！")
		} else {
			fmt.Println("删除失败：", err)
		}
		return
	}
	fmt.Println("删除成功！")
}
