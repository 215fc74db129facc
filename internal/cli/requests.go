package cli

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AddVehicleRequest 新增车辆的表单。
type AddVehicleRequest struct {
	Category     string  `validate:"required,oneof=sedan van bus coach"`
	Brand        string  `validate:"required"`
	Model        string  `validate:"required"`
	DailyRate    float64 `validate:"gte=0"`
	Seats        int     `validate:"gte=0"`
	Transmission string
	LoadCapacity float64 `validate:"gte=0"`
}

// AddCustomerRequest 新增客户的表单。
type AddCustomerRequest struct {
	Name  string `validate:"required"`
	Phone string `validate:"required"`
	Tier  string `validate:"required,oneof=regular vip enterprise"`
}

// RentRequest 租车请求。天数为正在这里先行校验，流程引擎内部还会再校验一次。
type RentRequest struct {
	VehicleID  int `validate:"gt=0"`
	CustomerID int `validate:"gt=0"`
	Days       int `validate:"gt=0"`
}

// AddUserRequest 新增用户的表单。
type AddUserRequest struct {
	Username string `validate:"required,min=2,max=64"`
	Password string `validate:"required,min=4"`
	Role     string `validate:"required,oneof=admin operator"`
}

// checkRequest 统一的表单校验入口，把 validator 的错误转成可读提示。
func checkRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		f := errs[0]
		return fmt.Errorf("字段 %s 不合法（规则 %s）", f.Field(), f.Tag())
	}
	return err
}
