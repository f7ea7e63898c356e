package user

import (
	"strconv"
	"strings"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/form"
	"github.com/Rodert/learn-hub/core/listing"
)

var (
	statusOptions = []form.Option{
		{Value: StatusActive, Label: "Active"},
		{Value: StatusInactive, Label: "Inactive"},
		{Value: StatusBanned, Label: "Banned"},
	}

	Fields = []form.Field{
		{Name: "username", Label: "Username", Kind: form.KindText, Immutable: true},
		{Name: "password", Label: "Password", Kind: form.KindPassword, Help: "leave empty to keep the current password"},
		{Name: "nickname", Label: "Nickname", Kind: form.KindText},
		{Name: "status", Label: "Status", Kind: form.KindSelect, Options: statusOptions, Default: StatusActive},
		{Name: "role_ids", Label: "Roles", Kind: form.KindMultiSelect, Help: "comma separated role ids"},
	}

	Columns = []listing.Column[User]{
		{Title: "ID", Value: func(u User) string { return strconv.Itoa(u.ID) }},
		{Title: "USERNAME", Value: func(u User) string { return u.Username }},
		{Title: "NICKNAME", Value: func(u User) string { return u.Nickname }},
		{Title: "STATUS", Value: func(u User) string { return core.Label(StatusLabels, u.Status) }},
		{Title: "ROLES", Value: func(u User) string {
			if names := u.RoleNames(); len(names) > 0 {
				return strings.Join(names, ", ")
			}
			return "-"
		}},
		{Title: "CREATED", Value: func(u User) string { return u.CreatedAt.Relative() }},
	}
)

func ID(u User) int {
	return u.ID
}

// Seed returns the form values of an existing User. The password is never seeded.
func Seed(u User) form.Values {
	return form.Values{
		"username": u.Username,
		"nickname": u.Nickname,
		"status":   u.Status,
		"role_ids": form.JoinInts(u.RoleIDs),
	}
}

// FormSpec binds the user form to svc.
func FormSpec(svc *Service) form.Spec[User, NewUser, UpdateUser] {
	return form.Spec[User, NewUser, UpdateUser]{
		Entity: "user",
		Fields: Fields,
		Seed:   Seed,
		ID:     ID,
		Create: svc.Create,
		Update: svc.Update,
	}
}
