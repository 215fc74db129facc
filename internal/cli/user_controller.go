package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/carrental/carrental/internal/user"
)

// UserController 用户管理子菜单（仅管理员可进入，由主控制器把关）。
type UserController struct {
	users   *user.Service
	in      *Input
	current *user.User
}

func NewUserController(users *user.Service, in *Input, current *user.User) *UserController {
	return &UserController{users: users, in: in, current: current}
}

func (c *UserController) Run(ctx context.Context) {
	for {
		fmt.Println()
		fmt.Println("===== 用户管理 =====")
		fmt.Println("1. 查看所有用户")
		fmt.Println("2. 新增用户")
		fmt.Println("3. 修改用户")
		fmt.Println("4. 删除用户")
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

func (c *UserController) listAll(ctx context.Context) {
	users, err := c.users.All(ctx)
	if err != nil {
		fmt.Println("查询失败：", err)
		return
	}
	printUsers(users)
}

func (c *UserController) add(ctx context.Context) {
	req := AddUserRequest{
		Username: c.in.Line("用户名："),
		Password: c.in.Line("密码："),
		Role:     c.in.Line("角色（admin/operator）："),
	}
	if err := checkRequest(req); err != nil {
		fmt.Println("输入有误：", err)
		return
	}

	if err := c.users.Add(ctx, req.Username, req.Password, req.Role); err != nil {
		if errors.Is(err, user.ErrExists) {
			fmt.Println("用户名已存在！")
		} else {
			fmt.Println("新增失败：", err)
		}
		return
	}
	fmt.Println("新增成功！")
}

func (c *UserController) update(ctx context.Context) {
	username := c.in.Line("用户名：")
	password := c.in.Line("新密码（回车保持不变）：")
	role := c.in.Line("新角色（回车保持不变）：")

	if err := c.users.Update(ctx, username, password, role); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			fmt.Println("用户不存在！")
		} else {
			fmt.Println("修改失败：", err)
		}
		return
	}
	fmt.Println("修改成功！")
}

func (c *UserController) delete(ctx context.Context) {
	username := c.in.Line("用户名：")
	if err := c.users.Delete(ctx, c.current, username); err != nil {
		switch {
		case errors.Is(err, user.ErrDeleteSelf):
			fmt.Println("不能删除当前登录用户！")
		case errors.Is(err, user.ErrNotFound):
			fmt.Println("用户不存在！")
		default:
			fmt.Println("删除失败：", err)
		}
		return
	}
	fmt.Println("删除成功！")
}
