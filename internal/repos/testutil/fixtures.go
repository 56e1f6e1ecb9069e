package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/domain"
)

func SeedCompany(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *domain.Company {
	tb.Helper()
	co := &domain.Company{
		ID:   uuid.New(),
		Name: "Studio " + slug,
		Slug: slug,
	}
	if err := tx.WithContext(ctx).Create(co).Error; err != nil {
		tb.Fatalf("seed company: %v", err)
	}
	return co
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Name:     "Test User",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedMember(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, companyID uuid.UUID, role string) *domain.UserCompany {
	tb.Helper()
	uc := &domain.UserCompany{
		ID:        uuid.New(),
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	}
	if err := tx.WithContext(ctx).Create(uc).Error; err != nil {
		tb.Fatalf("seed membership: %v", err)
	}
	return uc
}

func SeedCase(tb testing.TB, ctx context.Context, tx *gorm.DB, companyID uuid.UUID, slug string) *domain.Case {
	tb.Helper()
	cs := &domain.Case{
		ID:        uuid.New(),
		CompanyID: companyID,
		Title:     "Case " + slug,
		Slug:      slug,
		Status:    domain.CaseStatusDraft,
	}
	if err := tx.WithContext(ctx).Create(cs).Error; err != nil {
		tb.Fatalf("seed case: %v", err)
	}
	return cs
}

func SeedCaseBlock(tb testing.TB, ctx context.Context, tx *gorm.DB, caseID uuid.UUID, sortOrder int) *domain.CaseBlock {
	tb.Helper()
	b := &domain.CaseBlock{
		ID:        uuid.New(),
		CaseID:    caseID,
		Type:      "spacer",
		Content:   datatypes.JSON([]byte(`{"height":"md"}`)),
		SortOrder: sortOrder,
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed case block: %v", err)
	}
	return b
}

func SeedClient(tb testing.TB, ctx context.Context, tx *gorm.DB, companyID uuid.UUID, name string) *domain.Client {
	tb.Helper()
	cl := &domain.Client{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      name,
	}
	if err := tx.WithContext(ctx).Create(cl).Error; err != nil {
		tb.Fatalf("seed client: %v", err)
	}
	return cl
}

func SeedMediaAsset(tb testing.TB, ctx context.Context, tx *gorm.DB, companyID uuid.UUID, kind, status string) *domain.MediaAsset {
	tb.Helper()
	m := &domain.MediaAsset{
		ID:        uuid.New(),
		CompanyID: companyID,
		Kind:      kind,
		Name:      "asset",
		Status:    status,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed media asset: %v", err)
	}
	return m
}
