package entity

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

type User struct {
	Base
	Username  string   `db:"username"`
	Email     string   `db:"email"`
	FirstName *string  `db:"first_name"`
	LastName  *string  `db:"last_name"`
	Bio       *string  `db:"bio"`
	Role      UserRole `db:"role"`
	Confirmed bool     `db:"confirmed"`
}
