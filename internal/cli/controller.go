package cli

import (
	"context"
	"fmt"

	"github.com/carrental/carrental/internal/common/auth"
	"github.com/carrental/carrental/internal/common/config"
	"github.com/carrental/carrental/internal/common/logger"
	"github.com/carrental/carrental/internal/customer"
	"github.com/carrental/carrental/internal/rental"
	"github.com/carrental/carrental/internal/user"
	"github.com/carrental/carrental/internal/vehicle"
)

// maxLoginAttempts 登录尝试上限，超过后退出程序。
const maxLoginAttempts = 3

// MainController 主控制器：登录门禁 + 主菜单，协调各子控制器。
type MainController struct {
	cfg       *config.Config
	log       logger.Logger
	in        *Input
	vehicles  *vehicle.Service
	customers *customer.Service
	rentals   *rental.Service
	users     *user.Service
}

func NewMainController(
	cfg *config.Config,
	log logger.Logger,
	in *Input,
	vehicles *vehicle.Service,
	customers *customer.Service,
	rentals *rental.Service,
	users *user.Service,
) *MainController {
	return &MainController{
		cfg:       cfg,
		log:       log,
		in:        in,
		vehicles:  vehicles,
		customers: customers,
		rentals:   rentals,
		users:     users,
	}
}

// Run 阻塞运行：先登录，后进入主菜单循环，直到操作员选择退出。
func (c *MainController) Run(ctx context.Context) error {
	fmt.Println("====================================")
	fmt.Println("        欢迎使用汽车租赁管理系统")
	fmt.Println("====================================")

	current, session, err := c.login(ctx)
	if err != nil {
		return err
	}
	c.log.Infof("user %s logged in (role %s)", current.Username, current.Role)

	vehicleCtl := NewVehicleController(c.vehicles, c.in)
	customerCtl := NewCustomerController(c.customers, c.in)
	rentalCtl := NewRentalController(c.rentals, c.in)
	userCtl := NewUserController(c.users, c.in, current)

	for {
		fmt.Println()
		fmt.Println("========== 主菜单 ==========")
		fmt.Println("1. 车辆管理")
		fmt.Println("2. 客户管理")
		fmt.Println("3. 租赁管理")
		fmt.Println("4. 用户管理（管理员）")
		fmt.Println("0. 退出系统")

		switch c.in.Int("请选择：") {
		case 1:
			vehicleCtl.Run(ctx)
		case 2:
			customerCtl.Run(ctx)
		case 3:
			rentalCtl.Run(ctx)
		case 4:
			// 以会话令牌声明为准做权限判断
			if !session.HasRole(c.cfg.Auth, user.RoleAdmin) {
				fmt.Println("权限不足，仅管理员可进入用户管理！")
				continue
			}
			userCtl.Run(ctx)
		case 0:
			fmt.Println("感谢使用，再见！")
			c.log.Infof("user %s logged out", current.Username)
			return nil
		default:
			fmt.Println("无效选择！")
		}
	}
}

func (c *MainController) login(ctx context.Context) (*user.User, *auth.Session, error) {
	for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
		username := c.in.Line("用户名：")
		password := c.in.Line("密码：")

		u, err := c.users.Login(ctx, username, password)
		if err != nil {
			fmt.Printf("登录失败（%d/%d）：用户名或密码错误\n", attempt, maxLoginAttempts)
			continue
		}

		session, err := auth.NewSession(c.cfg.Auth, u.Username, u.Role)
		if err != nil {
			return nil, nil, fmt.Errorf("create session: %w", err)
		}
		fmt.Printf("登录成功，欢迎 %s！\n", u.Username)
		return u, session, nil
	}
	return nil, nil, fmt.Errorf("too many failed login attempts")
}
