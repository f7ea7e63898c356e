package user

import (
	"github.com/Rodert/learn-hub/core"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusBanned   = "banned"
)

var StatusLabels = map[string]string{
	StatusActive:   "Active",
	StatusInactive: "Inactive",
	StatusBanned:   "Banned",
}

// RoleRef is the short role description embedded in a User.
type RoleRef struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type User struct {
	ID        int            `json:"id"`
	Username  string         `json:"username"`
	Nickname  string         `json:"nickname"`
	Status    string         `json:"status"`
	RoleIDs   []int          `json:"role_ids"`
	Roles     []RoleRef      `json:"roles,omitempty"`
	CreatedAt core.Timestamp `json:"created_at"`
	UpdatedAt core.Timestamp `json:"updated_at"`
}

// RoleNames returns the names of the user's roles.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum_"`
	Password string `json:"password" validate:"required"`
	Nickname string `json:"nickname" validate:"required,notblank,max=100"`
	Status   string `json:"status" validate:"required,oneof=active inactive banned"`
	RoleIDs  []int  `json:"role_ids,omitempty" validate:"omitempty,dive,min=1"`
}

func (nu *NewUser) Validate() error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Nickname = core.CleanString(nu.Nickname)
	return core.ValidateStruct(nu)
}

// UpdateUser defines what information may be provided to modify an existing User.
// The username cannot be changed.
type UpdateUser struct {
	Nickname string `json:"nickname" validate:"required,notblank,max=100"`
	Status   string `json:"status" validate:"required,oneof=active inactive banned"`
	Password string `json:"password,omitempty"`
	RoleIDs  []int  `json:"role_ids" validate:"omitempty,dive,min=1"`
}

func (uu *UpdateUser) Validate() error {
	uu.Nickname = core.CleanString(uu.Nickname)
	return core.ValidateStruct(uu)
}

// Filter narrows the user list.
type Filter struct {
	Status   string
	Username string
}
