package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/ctxutil"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/repos"
)

// requireMember resolves the acting user's role inside a company. Every
// tenant-scoped operation goes through here first: no membership row means
// permission denied, regardless of whether the company exists.
func requireMember(ctx context.Context, companyRepo repos.CompanyRepo, companyID uuid.UUID) (string, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return "", fmt.Errorf("permission denied: no authenticated user")
	}
	if companyID == uuid.Nil {
		return "", fmt.Errorf("company id required")
	}
	role, err := companyRepo.GetRole(dbctx.New(ctx), rd.UserID, companyID)
	if err != nil {
		return "", fmt.Errorf("failed to check company membership: %w", err)
	}
	if role == "" {
		return "", fmt.Errorf("permission denied: not a member of company")
	}
	return role, nil
}

func requireAdmin(ctx context.Context, companyRepo repos.CompanyRepo, companyID uuid.UUID) error {
	role, err := requireMember(ctx, companyRepo, companyID)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin {
		return fmt.Errorf("permission denied: admin role required")
	}
	return nil
}
