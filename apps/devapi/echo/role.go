package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/role"
)

var (
	errRoleCodeExists = echo.NewHTTPError(http.StatusBadRequest, "role code already exists")
	errRoleInUse      = echo.NewHTTPError(http.StatusBadRequest, "role is still assigned to users")
)

type roleApi struct {
	store *Store
}

func registerRoleAPI(g *echo.Group, store *Store) {
	api := roleApi{store: store}

	rg := g.Group("/admin/roles")
	rg.GET("", api.query)
	rg.POST("", api.create)
	rg.PUT("/:id", api.update)
	rg.DELETE("/:id", api.destroy)

	g.GET("/admin/permissions", api.permissions)
}

func (api *roleApi) checkPermissions(ids []int) error {
	for _, id := range ids {
		if _, err := api.store.Permissions.Get(id); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "permission_ids", Error: "unknown permission"})
		}
	}
	return nil
}

// query answers with a bare array of roles and a top level total.
func (api *roleApi) query(ctx echo.Context) error {
	status := ctx.QueryParam("status")
	recs := api.store.Roles.Query(func(r role.Role) bool { return status == "" || r.Status == status })
	page, limit := pagination(ctx, "page", "limit")
	items, total := paginate(recs, page, limit, api.store.roleView)
	return ctx.JSON(http.StatusOK, echo.Map{"code": 0, "message": "success", "data": items, "total": total})
}

func (api *roleApi) create(ctx echo.Context) error {
	var data role.NewRole
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRole")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if err := api.checkPermissions(data.PermissionIDs); err != nil {
		return err
	}
	if _, err := api.store.Roles.Find(func(r role.Role) bool { return r.Code == data.Code }); err == nil {
		return errRoleCodeExists
	}

	now := core.NewTimestamp(time.Now())
	r := api.store.Roles.Insert(role.Role{
		Code:          data.Code,
		Name:          data.Name,
		Description:   data.Description,
		Status:        data.Status,
		PermissionIDs: data.PermissionIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	return ok(ctx, http.StatusCreated, api.store.roleView(r))
}

func (api *roleApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data role.UpdateRole
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRole")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if err := api.checkPermissions(data.PermissionIDs); err != nil {
		return err
	}

	r, err := api.store.Roles.Update(id, func(r *role.Role) error {
		r.Name = data.Name
		r.Description = data.Description
		r.Status = data.Status
		if data.PermissionIDs != nil {
			r.PermissionIDs = data.PermissionIDs
		}
		r.UpdatedAt = core.NewTimestamp(time.Now())
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "updating role")
	}
	return ok(ctx, http.StatusOK, api.store.roleView(r))
}

func (api *roleApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	r, err := api.store.Roles.Get(id)
	if err != nil {
		return errors.Wrap(err, "finding role")
	}
	if api.store.roleView(r).UserCount > 0 {
		return errRoleInUse
	}
	if err := api.store.Roles.Delete(id); err != nil {
		return errors.Wrap(err, "deleting role")
	}
	return ok(ctx, http.StatusOK, nil)
}

func (api *roleApi) permissions(ctx echo.Context) error {
	return ok(ctx, http.StatusOK, api.store.Permissions.Query(nil))
}
