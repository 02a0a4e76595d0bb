package entity

type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleFreelancer UserRole = "freelancer"
)

type User struct {
	Base
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	ProfileImage *string  `db:"profile_image"`
	IsActive     bool     `db:"is_active"`
}
