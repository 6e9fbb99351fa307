package users

type Repo interface {
	Bootstrap(adminUsername, adminPassword string) error
	GetAll() []User
	Get(username string) (*User, error)
	Create(username, password string, role RoleType) (*User, error)
	VerifyPassword(username, password string) bool
	Count() int
}
