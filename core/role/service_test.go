package role_test

import (
	"context"
	"testing"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/form"
	"github.com/Rodert/learn-hub/core/role"
	"github.com/Rodert/learn-hub/tests"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := role.NewService(testutil.NewAdminClient(t))

	page, err := svc.List(ctx, core.PageQuery[role.Filter]{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List() unexpected error = %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("List() = %d items of %d, want 2 of 2", len(page.Items), page.Total)
	}

	perms, err := svc.Permissions(ctx)
	if err != nil || len(perms) == 0 {
		t.Fatalf("Permissions() = %v, %v", perms, err)
	}

	created, err := svc.Create(ctx, role.NewRole{Code: "Editor", Name: "Editor", Status: role.StatusEnabled, PermissionIDs: []int{perms[0].ID}})
	if err != nil {
		t.Fatalf("Create() unexpected error = %v", err)
	}
	if created.Code != "editor" {
		t.Errorf("Code = %q, want it lowered", created.Code)
	}
	if _, err := svc.Create(ctx, role.NewRole{Code: "editor", Name: "Other", Status: role.StatusEnabled}); !core.IsStatus(err, 400) {
		t.Errorf("duplicate Create() error = %v, want 400", err)
	}

	if _, err := svc.Update(ctx, created.ID, role.UpdateRole{Name: "Content editor", Status: role.StatusDisabled}); err != nil {
		t.Fatalf("Update() unexpected error = %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() unexpected error = %v", err)
	}
}

func TestFormSpec_clearPermissions(t *testing.T) {
	ctx := context.Background()
	svc := role.NewService(testutil.NewAdminClient(t))

	page, err := svc.List(ctx, core.PageQuery[role.Filter]{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List() unexpected error = %v", err)
	}
	var admin role.Role
	for _, r := range page.Items {
		if r.Code == "admin" {
			admin = r
		}
	}
	if len(admin.PermissionIDs) == 0 {
		t.Fatalf("admin role has no permissions: %+v", admin)
	}

	fc := form.New(role.FormSpec(svc), nil)
	fc.Open(&admin)
	for name, v := range map[string]string{"permission_ids": "", "description": ""} {
		if err := fc.Set(name, v); err != nil {
			t.Fatalf("Set(%s) unexpected error = %v", name, err)
		}
	}
	got, err := fc.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit() unexpected error = %v", err)
	}
	if len(got.PermissionIDs) != 0 {
		t.Errorf("PermissionIDs = %v, want none", got.PermissionIDs)
	}
	if got.Description != "" {
		t.Errorf("Description = %q, want it cleared", got.Description)
	}
}
