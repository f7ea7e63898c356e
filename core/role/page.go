package role

import (
	"strconv"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/form"
	"github.com/Rodert/learn-hub/core/listing"
)

var (
	statusOptions = []form.Option{
		{Value: StatusEnabled, Label: "Enabled"},
		{Value: StatusDisabled, Label: "Disabled"},
	}

	Fields = []form.Field{
		{Name: "code", Label: "Code", Kind: form.KindText, Immutable: true},
		{Name: "name", Label: "Name", Kind: form.KindText},
		{Name: "description", Label: "Description", Kind: form.KindTextarea},
		{Name: "status", Label: "Status", Kind: form.KindSelect, Options: statusOptions, Default: StatusEnabled},
		{Name: "permission_ids", Label: "Permissions", Kind: form.KindMultiSelect, Help: "comma separated permission ids"},
	}

	Columns = []listing.Column[Role]{
		{Title: "ID", Value: func(r Role) string { return strconv.Itoa(r.ID) }},
		{Title: "CODE", Value: func(r Role) string { return r.Code }},
		{Title: "NAME", Value: func(r Role) string { return r.Name }},
		{Title: "DESCRIPTION", Value: func(r Role) string { return core.Preview(r.Description, 40) }},
		{Title: "STATUS", Value: func(r Role) string { return core.Label(StatusLabels, r.Status) }},
		{Title: "USERS", Value: func(r Role) string { return strconv.Itoa(r.UserCount) }},
	}

	PermissionColumns = []listing.Column[Permission]{
		{Title: "ID", Value: func(p Permission) string { return strconv.Itoa(p.ID) }},
		{Title: "NAME", Value: func(p Permission) string { return p.Name }},
		{Title: "RESOURCE", Value: func(p Permission) string { return p.Resource }},
		{Title: "ACTION", Value: func(p Permission) string { return p.Action }},
		{Title: "DESCRIPTION", Value: func(p Permission) string { return p.Description }},
	}
)

func ID(r Role) int {
	return r.ID
}

// Seed returns the form values of an existing Role.
func Seed(r Role) form.Values {
	return form.Values{
		"code":           r.Code,
		"name":           r.Name,
		"description":    r.Description,
		"status":         r.Status,
		"permission_ids": form.JoinInts(r.PermissionIDs),
	}
}

// FormSpec binds the role form to svc.
func FormSpec(svc *Service) form.Spec[Role, NewRole, UpdateRole] {
	return form.Spec[Role, NewRole, UpdateRole]{
		Entity: "role",
		Fields: Fields,
		Seed:   Seed,
		ID:     ID,
		Create: svc.Create,
		Update: svc.Update,
	}
}
