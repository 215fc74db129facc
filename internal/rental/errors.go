package rental

import "errors"

// 租赁流程的错误分类。所有错误都在操作边界上可恢复，
// 调用方（CLI）据此提示并回到菜单，不会中止进程。
var (
	// ErrVehicleUnavailable 车辆不存在或已被租出。
	ErrVehicleUnavailable = errors.New("vehicle unavailable")
	// ErrCustomerNotFound 客户不存在。
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrRecordNotFound 租赁记录不存在。
	ErrRecordNotFound = errors.New("rental record not found")
	// ErrAlreadyReturned 车辆已经归还。
	ErrAlreadyReturned = errors.New("vehicle already returned")
	// ErrInvalidDays 租赁天数必须为正整数。
	ErrInvalidDays = errors.New("rental days must be positive")
	// ErrPersistence 持久化写入失败。
	ErrPersistence = errors.New("persistence failure")
)
