package worker

import "time"

type Role string

const (
	RoleAgent      Role = "agent"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

var RoleValues = []string{
	string(RoleAgent),
	string(RoleSupervisor),
	string(RoleAdmin),
}

// Worker is the identity record the attendance engine consumes. Timezone is
// the worker's home zone, used when their schedule rows do not carry one.
type Worker struct {
	ID           string
	FullName     string
	Email        string
	Role         Role
	Timezone     string
	PasswordHash *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
