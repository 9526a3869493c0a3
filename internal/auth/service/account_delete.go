package service

import (
	"context"
	"errors"

	id "givebridge/pkg/domain"
	dErrors "givebridge/pkg/domain-errors"
	"givebridge/pkg/platform/sentinel"
)

// DeleteAccount drops the account's sessions and then the account itself.
// Registration uses it to compensate for a failed profile creation.
func (g *Gateway) DeleteAccount(ctx context.Context, accountID id.AccountID) error {
	if accountID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "account ID required")
	}

	if err := g.sessions.DeleteByAccount(ctx, accountID); err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete account sessions")
		}
	}

	if err := g.provider.Delete(ctx, accountID); err != nil {
		return g.translate(ctx, err, "account deletion")
	}

	g.logger.InfoContext(ctx, "account deleted", "account_id", accountID.String())
	return nil
}
