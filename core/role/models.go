package role

import (
	"github.com/Rodert/learn-hub/core"
)

// Statuses
const (
	StatusEnabled  = "enabled"
	StatusDisabled = "disabled"
)

var StatusLabels = map[string]string{
	StatusEnabled:  "Enabled",
	StatusDisabled: "Disabled",
}

type Role struct {
	ID            int            `json:"id"`
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Status        string         `json:"status"`
	PermissionIDs []int          `json:"permission_ids"`
	UserCount     int            `json:"user_count"`
	CreatedAt     core.Timestamp `json:"created_at"`
	UpdatedAt     core.Timestamp `json:"updated_at"`
}

type Permission struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
}

// NewRole contains information needed to create a new Role.
type NewRole struct {
	Code          string `json:"code" validate:"required,max=50,alphanum_"`
	Name          string `json:"name" validate:"required,notblank,max=100"`
	Description   string `json:"description,omitempty" validate:"max=255"`
	Status        string `json:"status" validate:"required,oneof=enabled disabled"`
	PermissionIDs []int  `json:"permission_ids,omitempty" validate:"omitempty,dive,min=1"`
}

func (nr *NewRole) Validate() error {
	nr.Code = core.CleanString(nr.Code, true /* lower */)
	nr.Name = core.CleanString(nr.Name)
	return core.ValidateStruct(nr)
}

// UpdateRole defines what information may be provided to modify an existing Role.
// The code cannot be changed.
type UpdateRole struct {
	Name          string `json:"name" validate:"required,notblank,max=100"`
	Description   string `json:"description" validate:"max=255"`
	Status        string `json:"status" validate:"required,oneof=enabled disabled"`
	PermissionIDs []int  `json:"permission_ids" validate:"omitempty,dive,min=1"`
}

func (ur *UpdateRole) Validate() error {
	ur.Name = core.CleanString(ur.Name)
	return core.ValidateStruct(ur)
}

// Filter narrows the role list.
type Filter struct {
	Status string
}
