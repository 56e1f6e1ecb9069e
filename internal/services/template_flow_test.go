package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/onmx/studio-backend/internal/blocks"
	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/ctxutil"
	"github.com/onmx/studio-backend/internal/repos"
	"github.com/onmx/studio-backend/internal/repos/testutil"
)

func TestTemplateServiceFlow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	caseRepo := repos.NewCaseRepo(tx, log)
	blockRepo := repos.NewCaseBlockRepo(tx, log)
	companyRepo := repos.NewCompanyRepo(tx, log)
	templateRepo := repos.NewTemplateRepo(tx, log)

	caseSvc := NewCaseService(tx, log, caseRepo, blockRepo, companyRepo, nil)
	tplSvc := NewTemplateService(tx, log, templateRepo, blockRepo, caseRepo, companyRepo)

	base := context.Background()
	co := testutil.SeedCompany(t, base, tx, "templateflow-co")
	member := testutil.SeedUser(t, base, tx, "templateflow@example.com")
	testutil.SeedMember(t, base, tx, member.ID, co.ID, domain.RoleEditor)
	ctx := ctxutil.WithRequestData(base, &ctxutil.RequestData{UserID: member.ID})

	src, err := caseSvc.Create(ctx, co.ID, CaseInput{Title: "Modelo Origem"}, blocks.TemplateGallery)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tpl, err := tplSvc.SaveFromCase(ctx, co.ID, src.ID, "Meu layout", "galeria ajustada")
	if err != nil {
		t.Fatalf("SaveFromCase: %v", err)
	}
	if tpl.Name != "Meu layout" {
		t.Fatalf("template name: %q", tpl.Name)
	}

	listing, err := tplSvc.List(ctx, co.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listing.Builtin) != len(blocks.BuiltinTemplateNames()) {
		t.Fatalf("listing has %d builtin templates, want %d", len(listing.Builtin), len(blocks.BuiltinTemplateNames()))
	}
	found := false
	for _, c := range listing.Custom {
		if c.ID == tpl.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("saved template missing from listing")
	}

	// Built-in name and custom id both instantiate, always with fresh ids.
	builtinDoc, err := tplSvc.Instantiate(ctx, co.ID, blocks.TemplateStatement)
	if err != nil {
		t.Fatalf("Instantiate builtin: %v", err)
	}
	if len(builtinDoc) == 0 {
		t.Fatal("builtin template is empty")
	}

	doc1, err := tplSvc.Instantiate(ctx, co.ID, tpl.ID.String())
	if err != nil {
		t.Fatalf("Instantiate custom: %v", err)
	}
	doc2, err := tplSvc.Instantiate(ctx, co.ID, tpl.ID.String())
	if err != nil {
		t.Fatalf("Instantiate custom again: %v", err)
	}
	if len(doc1) == 0 || len(doc1) != len(doc2) {
		t.Fatalf("instantiations differ in size: %d vs %d", len(doc1), len(doc2))
	}
	seen := map[uuid.UUID]bool{}
	for _, b := range doc1 {
		seen[b.ID] = true
	}
	for _, b := range doc2 {
		if seen[b.ID] {
			t.Fatalf("instantiations share block id %s", b.ID)
		}
	}

	if _, err := tplSvc.Instantiate(ctx, co.ID, "nonsense"); err == nil {
		t.Fatal("Instantiate accepted an unknown ref")
	}

	if err := tplSvc.Delete(ctx, co.ID, tpl.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := tplSvc.Instantiate(ctx, co.ID, tpl.ID.String()); err == nil {
		t.Fatal("deleted template still instantiable")
	}
}
