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

// End-to-end service flow against a real database: create a case from the
// default layout, save an edited draft, duplicate and publish it.
func TestCaseServiceFlow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	caseRepo := repos.NewCaseRepo(tx, log)
	blockRepo := repos.NewCaseBlockRepo(tx, log)
	companyRepo := repos.NewCompanyRepo(tx, log)

	caseSvc := NewCaseService(tx, log, caseRepo, blockRepo, companyRepo, nil)
	blockSvc := NewCaseBlockService(tx, log, caseRepo, blockRepo, companyRepo, nil)

	base := context.Background()
	co := testutil.SeedCompany(t, base, tx, "caseflow-co")
	member := testutil.SeedUser(t, base, tx, "caseflow-member@example.com")
	testutil.SeedMember(t, base, tx, member.ID, co.ID, domain.RoleEditor)
	outsider := testutil.SeedUser(t, base, tx, "caseflow-outsider@example.com")

	ctx := ctxutil.WithRequestData(base, &ctxutil.RequestData{UserID: member.ID})

	created, err := caseSvc.Create(ctx, co.ID, CaseInput{Title: "Projeto Fluxo"}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "projeto-fluxo" {
		t.Fatalf("Create slug: %q", created.Slug)
	}

	doc, err := blockSvc.GetBlocks(ctx, co.ID, created.ID)
	if err != nil {
		t.Fatalf("GetBlocks: %v", err)
	}
	defaultLayout, _ := blocks.NewBuiltinTemplate(blocks.TemplateDefault)
	if len(doc) != len(defaultLayout) {
		t.Fatalf("seeded layout has %d blocks, want %d", len(doc), len(defaultLayout))
	}

	// Edit: drop the trailing block, duplicate the hero, save.
	draft := doc[:len(doc)-1]
	draft, _, err = blocks.DuplicateBlock(draft, draft[0].ID)
	if err != nil {
		t.Fatalf("DuplicateBlock: %v", err)
	}
	saved, err := blockSvc.Replace(ctx, co.ID, created.ID, draft)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if len(saved) != len(draft) {
		t.Fatalf("Replace returned %d blocks, want %d", len(saved), len(draft))
	}
	persisted, err := blockSvc.GetBlocks(ctx, co.ID, created.ID)
	if err != nil {
		t.Fatalf("GetBlocks after save: %v", err)
	}
	if len(persisted) != len(draft) {
		t.Fatalf("persisted %d blocks, want %d", len(persisted), len(draft))
	}
	for i := range draft {
		if persisted[i].ID != draft[i].ID {
			t.Fatalf("block %d: persisted id %s, draft id %s", i, persisted[i].ID, draft[i].ID)
		}
	}

	// Duplicate mints a new slug, resets status and rekeys every block.
	dup, err := caseSvc.Duplicate(ctx, co.ID, created.ID)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if dup.Slug != "projeto-fluxo-2" {
		t.Fatalf("Duplicate slug: %q", dup.Slug)
	}
	if dup.Title != "Projeto Fluxo (cópia)" {
		t.Fatalf("Duplicate title: %q", dup.Title)
	}
	dupDoc, err := blockSvc.GetBlocks(ctx, co.ID, dup.ID)
	if err != nil {
		t.Fatalf("GetBlocks duplicate: %v", err)
	}
	if len(dupDoc) != len(draft) {
		t.Fatalf("duplicate has %d blocks, want %d", len(dupDoc), len(draft))
	}
	srcIDs := map[uuid.UUID]bool{}
	for _, b := range persisted {
		srcIDs[b.ID] = true
	}
	for _, b := range dupDoc {
		if srcIDs[b.ID] {
			t.Fatalf("duplicate shares block id %s with source", b.ID)
		}
	}

	published, err := caseSvc.SetStatus(ctx, co.ID, created.ID, domain.CaseStatusPublished)
	if err != nil {
		t.Fatalf("SetStatus publish: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatal("publish did not stamp published_at")
	}
	back, err := caseSvc.SetStatus(ctx, co.ID, created.ID, domain.CaseStatusDraft)
	if err != nil {
		t.Fatalf("SetStatus draft: %v", err)
	}
	if back.PublishedAt != nil {
		t.Fatal("unpublish did not clear published_at")
	}
	if _, err := caseSvc.SetStatus(ctx, co.ID, created.ID, "archived"); err == nil {
		t.Fatal("SetStatus accepted an unknown status")
	}

	// A user with no membership row gets permission denied on every entry.
	outCtx := ctxutil.WithRequestData(base, &ctxutil.RequestData{UserID: outsider.ID})
	if _, err := caseSvc.Get(outCtx, co.ID, created.ID); err == nil {
		t.Fatal("outsider could read a case")
	}
	if _, err := blockSvc.Replace(outCtx, co.ID, created.ID, draft); err == nil {
		t.Fatal("outsider could save blocks")
	}

	if err := caseSvc.Delete(ctx, co.ID, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, err := caseSvc.Get(ctx, co.ID, created.ID); err == nil && got != nil {
		t.Fatal("deleted case still readable")
	}
}

// A partial update only touches the fields it carries.
func TestCaseServiceUpdateLeavesOmittedFieldsAlone(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	caseRepo := repos.NewCaseRepo(tx, log)
	blockRepo := repos.NewCaseBlockRepo(tx, log)
	companyRepo := repos.NewCompanyRepo(tx, log)
	caseSvc := NewCaseService(tx, log, caseRepo, blockRepo, companyRepo, nil)

	base := context.Background()
	co := testutil.SeedCompany(t, base, tx, "casepatch-co")
	member := testutil.SeedUser(t, base, tx, "casepatch-member@example.com")
	testutil.SeedMember(t, base, tx, member.ID, co.ID, domain.RoleEditor)
	client := testutil.SeedClient(t, base, tx, co.ID, "Cliente Patch")

	ctx := ctxutil.WithRequestData(base, &ctxutil.RequestData{UserID: member.ID})

	summary := "resumo original"
	year := 2024
	bg := "#101010"
	pad := 500 // clamped on write
	created, err := caseSvc.Create(ctx, co.ID, CaseInput{
		Title:           "Projeto Patch",
		Summary:         &summary,
		Year:            &year,
		ClientID:        &client.ID,
		BackgroundColor: &bg,
		ContainerPad:    &pad,
	}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ContainerPad != 200 {
		t.Fatalf("container pad not clamped: %d", created.ContainerPad)
	}

	// Only the summary travels; everything else must survive untouched.
	newSummary := "resumo novo"
	updated, err := caseSvc.Update(ctx, co.ID, created.ID, CaseInput{Summary: &newSummary})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Summary != "resumo novo" {
		t.Fatalf("summary = %q", updated.Summary)
	}
	if updated.Year != 2024 {
		t.Fatalf("year zeroed: %d", updated.Year)
	}
	if updated.ClientID == nil || *updated.ClientID != client.ID {
		t.Fatalf("client link lost: %v", updated.ClientID)
	}
	if updated.BackgroundColor != "#101010" {
		t.Fatalf("background color lost: %q", updated.BackgroundColor)
	}
	if updated.ContainerPad != 200 {
		t.Fatalf("container pad lost: %d", updated.ContainerPad)
	}
	if updated.Title != "Projeto Patch" {
		t.Fatalf("title lost: %q", updated.Title)
	}

	// A zero uuid is the explicit "unlink" form.
	unlink := uuid.Nil
	cleared, err := caseSvc.Update(ctx, co.ID, created.ID, CaseInput{ClientID: &unlink})
	if err != nil {
		t.Fatalf("Update unlink: %v", err)
	}
	if cleared.ClientID != nil {
		t.Fatalf("client link not cleared: %v", cleared.ClientID)
	}
}
