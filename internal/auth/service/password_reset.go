package service

import (
	"context"

	"givebridge/internal/auth/models"
	"givebridge/internal/validation"
	dErrors "givebridge/pkg/domain-errors"
	emailaddr "givebridge/pkg/email"
)

// RequestPasswordReset asks the provider to email a reset link. The outcome
// never reveals whether the email is registered; only connectivity loss is
// reported.
func (g *Gateway) RequestPasswordReset(ctx context.Context, email string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return dErrors.Wrap(err, models.ErrorInvalidEmail.Code(), models.ErrorInvalidEmail.Message())
	}
	email = emailaddr.Normalize(email)

	err := g.provider.SendReset(ctx, email)
	if err == nil {
		return nil
	}
	if kind := g.kindOf(ctx, err); kind == models.ErrorNetwork {
		return dErrors.Wrap(err, kind.Code(), kind.Message())
	}
	g.logger.InfoContext(ctx, "password reset not sent", "error", err)
	return nil
}
