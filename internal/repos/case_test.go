package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/repos/testutil"
)

func TestCaseRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCaseRepo(db, testutil.Logger(t))

	co := testutil.SeedCompany(t, ctx, tx, "caserepo-co")
	other := testutil.SeedCompany(t, ctx, tx, "caserepo-other")
	cl := testutil.SeedClient(t, ctx, tx, co.ID, "Acme")

	c1, err := repo.Create(dbc, &domain.Case{
		CompanyID: co.ID,
		Title:     "Projeto Alfa",
		Slug:      "projeto-alfa",
		Status:    domain.CaseStatusDraft,
		ClientID:  &cl.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c1.ID == uuid.Nil {
		t.Fatal("Create did not assign an id")
	}
	c2, err := repo.Create(dbc, &domain.Case{
		CompanyID: co.ID,
		Title:     "Projeto Beta",
		Slug:      "projeto-beta",
		Status:    domain.CaseStatusPublished,
	})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	if got, err := repo.GetByID(dbc, co.ID, c1.ID); err != nil || got == nil || got.Slug != "projeto-alfa" {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	// Tenant scoping: the same id under another company must miss.
	if got, err := repo.GetByID(dbc, other.ID, c1.ID); err != nil || got != nil {
		t.Fatalf("GetByID cross-tenant: got=%v err=%v", got, err)
	}
	if got, err := repo.GetBySlug(dbc, co.ID, "projeto-beta"); err != nil || got == nil || got.ID != c2.ID {
		t.Fatalf("GetBySlug: got=%v err=%v", got, err)
	}

	if rows, err := repo.List(dbc, co.ID, CaseFilter{}); err != nil || len(rows) != 2 {
		t.Fatalf("List all: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.List(dbc, co.ID, CaseFilter{Status: domain.CaseStatusPublished}); err != nil || len(rows) != 1 || rows[0].ID != c2.ID {
		t.Fatalf("List by status: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.List(dbc, co.ID, CaseFilter{ClientID: &cl.ID}); err != nil || len(rows) != 1 || rows[0].ID != c1.ID {
		t.Fatalf("List by client: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.List(dbc, co.ID, CaseFilter{Search: "ALFA"}); err != nil || len(rows) != 1 || rows[0].ID != c1.ID {
		t.Fatalf("List by search: err=%v len=%d", err, len(rows))
	}

	if taken, err := repo.SlugTaken(dbc, co.ID, "projeto-alfa", uuid.Nil); err != nil || !taken {
		t.Fatalf("SlugTaken: taken=%v err=%v", taken, err)
	}
	if taken, err := repo.SlugTaken(dbc, co.ID, "projeto-alfa", c1.ID); err != nil || taken {
		t.Fatalf("SlugTaken excluding self: taken=%v err=%v", taken, err)
	}
	if taken, err := repo.SlugTaken(dbc, other.ID, "projeto-alfa", uuid.Nil); err != nil || taken {
		t.Fatalf("SlugTaken cross-tenant: taken=%v err=%v", taken, err)
	}

	if err := repo.UpdateFields(dbc, co.ID, c1.ID, map[string]interface{}{"summary": "feito"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if got, _ := repo.GetByID(dbc, co.ID, c1.ID); got.Summary != "feito" {
		t.Fatalf("UpdateFields not applied: %q", got.Summary)
	}

	c2.Title = "Projeto Beta 2"
	if err := repo.Update(dbc, c2); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got, _ := repo.GetByID(dbc, co.ID, c2.ID); got.Title != "Projeto Beta 2" {
		t.Fatalf("Update not applied: %q", got.Title)
	}

	if err := repo.SoftDelete(dbc, co.ID, c1.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if got, err := repo.GetByID(dbc, co.ID, c1.ID); err != nil || got != nil {
		t.Fatalf("after SoftDelete GetByID: got=%v err=%v", got, err)
	}
	if rows, err := repo.List(dbc, co.ID, CaseFilter{}); err != nil || len(rows) != 1 {
		t.Fatalf("after SoftDelete List: err=%v len=%d", err, len(rows))
	}
}
