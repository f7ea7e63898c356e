package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/progress"
	"github.com/Rodert/learn-hub/core/user"
)

var (
	errUsernameExists = echo.NewHTTPError(http.StatusBadRequest, "username already exists")
	errDeleteSelf     = echo.NewHTTPError(http.StatusBadRequest, "you cannot delete your own account")
)

type userApi struct {
	store *Store
}

func registerUserAPI(g *echo.Group, store *Store) {
	api := userApi{store: store}

	ug := g.Group("/admin/users")
	ug.GET("", api.query)
	ug.POST("", api.create)
	ug.PUT("/:id", api.update)
	ug.DELETE("/:id", api.destroy)
	ug.GET("/:id/progress", api.progress)
}

// checkRoles reports unknown role ids as a field error.
func (api *userApi) checkRoles(ids []int) error {
	for _, id := range ids {
		if _, err := api.store.Roles.Get(id); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "role_ids", Error: "unknown role"})
		}
	}
	return nil
}

func (api *userApi) query(ctx echo.Context) error {
	status, uname := ctx.QueryParam("status"), ctx.QueryParam("username")
	recs := api.store.Users.Query(func(u userRecord) bool {
		return (status == "" || u.Status == status) && (uname == "" || contains(u.Username, uname))
	})
	users := make([]user.User, len(recs))
	for i, rec := range recs {
		users[i] = api.store.userView(rec)
	}
	page, limit := pagination(ctx, "page", "limit")
	return okPage(ctx, users, page, limit, nil)
}

func (api *userApi) create(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if err := api.checkRoles(data.RoleIDs); err != nil {
		return err
	}
	if _, err := api.store.Users.Find(func(u userRecord) bool { return u.Username == data.Username }); err == nil {
		return errUsernameExists
	}

	hash, err := hashPassword(data.Password)
	if err != nil {
		return errors.Wrap(err, "hashing password")
	}
	now := core.NewTimestamp(time.Now())
	rec := api.store.Users.Insert(userRecord{
		User: user.User{
			Username:  data.Username,
			Nickname:  data.Nickname,
			Status:    data.Status,
			RoleIDs:   data.RoleIDs,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: hash,
	})
	return ok(ctx, http.StatusCreated, api.store.userView(rec))
}

func (api *userApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if err := api.checkRoles(data.RoleIDs); err != nil {
		return err
	}

	var hash []byte
	if data.Password != "" {
		if hash, err = hashPassword(data.Password); err != nil {
			return errors.Wrap(err, "hashing password")
		}
	}
	rec, err := api.store.Users.Update(id, func(u *userRecord) error {
		u.Nickname = data.Nickname
		u.Status = data.Status
		if data.RoleIDs != nil {
			u.RoleIDs = data.RoleIDs
		}
		if hash != nil {
			u.PasswordHash = hash
		}
		u.UpdatedAt = core.NewTimestamp(time.Now())
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	return ok(ctx, http.StatusOK, api.store.userView(rec))
}

func (api *userApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if id == getContextUserID(ctx) {
		return errDeleteSelf
	}
	if err := api.store.Users.Delete(id); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	for _, p := range api.store.Progress.Query(func(p progressRecord) bool { return p.UserID == id }) {
		_ = api.store.Progress.Delete(p.ID)
	}
	return ok(ctx, http.StatusOK, nil)
}

func (api *userApi) progress(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if _, err := api.store.Users.Get(id); err != nil {
		return errors.Wrap(err, "finding user")
	}
	recs := api.store.Progress.Query(func(p progressRecord) bool { return p.UserID == id })
	out := make([]progress.UserRecord, len(recs))
	for i, rec := range recs {
		out[i] = api.store.userProgress(rec)
	}
	return ok(ctx, http.StatusOK, out)
}
