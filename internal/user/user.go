package user

// 系统角色。管理员才可进入用户管理。
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User 系统用户，用于登录验证。用户名是唯一主键。
type User struct {
	Username     string `gorm:"primaryKey;size:64"`
	PasswordHash string `gorm:"size:128;not null"` // bcrypt
	Role         string `gorm:"size:16;not null"`
}

// IsAdmin 是否管理员。
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole 角色是否合法。
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleOperator
}
