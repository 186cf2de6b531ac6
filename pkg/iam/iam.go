package iam

// Role is the coarse access level carried on identity tokens
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// RoleOrDefault returns RoleUser for an empty role
func RoleOrDefault(r string) Role {
	if r == "" {
		return RoleUser
	}
	return Role(r)
}

func (r Role) String() string { return string(r) }
