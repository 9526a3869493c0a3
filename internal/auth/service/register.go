package service

import (
	"context"
	"strings"

	"givebridge/internal/auth/models"
	dErrors "givebridge/pkg/domain-errors"
	emailaddr "givebridge/pkg/email"
)

// Register creates the account at the provider and signs it in. A sign-in
// failure after creation is logged and yields the account without a session;
// the caller can still log in later.
func (g *Gateway) Register(ctx context.Context, req models.RegisterRequest) (*models.Account, *models.Session, error) {
	if !req.Role.IsValid() {
		return nil, nil, dErrors.New(dErrors.CodeBadRequest, "unknown account role")
	}
	req.Email = emailaddr.Normalize(req.Email)

	account, err := g.provider.Create(ctx, req)
	if err != nil {
		return nil, nil, g.translate(ctx, err, "account creation")
	}
	if account.Role == "" {
		account.Role = req.Role
	}
	if account.DisplayName == "" {
		account.DisplayName = strings.TrimSpace(req.DisplayName)
	}
	g.logger.InfoContext(ctx, "account registered",
		"account_id", account.ID.String(),
		"role", account.Role.String(),
	)

	session, err := g.signIn(ctx, req.Email, req.Password)
	if err != nil {
		g.logger.WarnContext(ctx, "sign-in after registration failed",
			"account_id", account.ID.String(),
			"error", err,
		)
		return account, nil, nil
	}
	return account, session, nil
}
