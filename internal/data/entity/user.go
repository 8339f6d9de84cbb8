package entity

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

// User is a back-office account. Customers never log in.
type User struct {
	Base
	Email        string   `db:"email"`
	Name         string   `db:"name"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}

func (u *User) IsAdmin() bool {
	return u.IsActive && (u.Role == RoleAdmin || u.Role == RoleSuperAdmin)
}
