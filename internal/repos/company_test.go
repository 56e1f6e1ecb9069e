package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/repos/testutil"
)

func TestCompanyRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCompanyRepo(db, testutil.Logger(t))

	co, err := repo.Create(dbc, &domain.Company{Name: "Zeta Studio", Slug: "companyrepo-zeta"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if co.ID == uuid.Nil {
		t.Fatal("Create did not assign an id")
	}
	co2, err := repo.Create(dbc, &domain.Company{Name: "Alfa Studio", Slug: "companyrepo-alfa"})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	if got, err := repo.GetByID(dbc, co.ID); err != nil || got == nil || got.Slug != "companyrepo-zeta" {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got, err := repo.GetBySlug(dbc, "companyrepo-alfa"); err != nil || got == nil || got.ID != co2.ID {
		t.Fatalf("GetBySlug: got=%v err=%v", got, err)
	}

	admin := testutil.SeedUser(t, ctx, tx, "companyrepo-admin@example.com")
	editor := testutil.SeedUser(t, ctx, tx, "companyrepo-editor@example.com")

	if _, err := repo.Link(dbc, &domain.UserCompany{UserID: admin.ID, CompanyID: co.ID, Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("Link admin: %v", err)
	}
	if _, err := repo.Link(dbc, &domain.UserCompany{UserID: admin.ID, CompanyID: co2.ID, Role: domain.RoleEditor}); err != nil {
		t.Fatalf("Link admin second: %v", err)
	}
	if _, err := repo.Link(dbc, &domain.UserCompany{UserID: editor.ID, CompanyID: co.ID, Role: domain.RoleEditor}); err != nil {
		t.Fatalf("Link editor: %v", err)
	}

	if role, err := repo.GetRole(dbc, admin.ID, co.ID); err != nil || role != domain.RoleAdmin {
		t.Fatalf("GetRole admin: role=%q err=%v", role, err)
	}
	if role, err := repo.GetRole(dbc, editor.ID, co2.ID); err != nil || role != "" {
		t.Fatalf("GetRole non-member: role=%q err=%v", role, err)
	}

	// ListForUser is ordered by company name.
	cos, err := repo.ListForUser(dbc, admin.ID)
	if err != nil || len(cos) != 2 {
		t.Fatalf("ListForUser: err=%v len=%d", err, len(cos))
	}
	if cos[0].ID != co2.ID || cos[1].ID != co.ID {
		t.Fatalf("ListForUser order: got %q, %q", cos[0].Name, cos[1].Name)
	}
	if cos, err = repo.ListForUser(dbc, editor.ID); err != nil || len(cos) != 1 {
		t.Fatalf("ListForUser editor: err=%v len=%d", err, len(cos))
	}

	members, err := repo.ListMembers(dbc, co.ID)
	if err != nil || len(members) != 2 {
		t.Fatalf("ListMembers: err=%v len=%d", err, len(members))
	}

	if err := repo.UpdateFields(dbc, co.ID, map[string]interface{}{"accent_color": "#ff4400"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if got, _ := repo.GetByID(dbc, co.ID); got.AccentColor != "#ff4400" {
		t.Fatalf("UpdateFields not applied: %q", got.AccentColor)
	}
}
