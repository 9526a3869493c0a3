package service

import (
	"context"
	"errors"

	"givebridge/internal/auth/models"
	"givebridge/internal/auth/provider"
	dErrors "givebridge/pkg/domain-errors"
)

// providerKinds is the single table from provider codes to domain kinds.
var providerKinds = map[string]models.ErrorKind{
	provider.CodeEmailExists:         models.ErrorEmailInUse,
	provider.CodeUserAlreadyExists:   models.ErrorEmailInUse,
	provider.CodeEmailAddressInvalid: models.ErrorInvalidEmail,
	provider.CodeValidationFailed:    models.ErrorInvalidEmail,
	provider.CodeWeakPassword:        models.ErrorWeakPassword,
	provider.CodeInvalidCredentials:  models.ErrorInvalidCredentials,
	provider.CodeUserNotFound:        models.ErrorAccountNotFound,
	provider.CodeRateLimit:           models.ErrorRateLimited,
	provider.CodeEmailRateLimit:      models.ErrorRateLimited,
}

func (g *Gateway) kindOf(ctx context.Context, err error) models.ErrorKind {
	if errors.Is(err, provider.ErrTransport) || errors.Is(err, context.DeadlineExceeded) {
		return models.ErrorNetwork
	}
	code, ok := provider.CodeOf(err)
	if !ok {
		return models.ErrorUnknown
	}
	kind, ok := providerKinds[code]
	if !ok {
		g.logger.WarnContext(ctx, "unmapped credential provider code", "provider_code", code, "error", err)
		g.metrics.IncrementProviderCodeUnmapped(code)
		return models.ErrorUnknown
	}
	return kind
}

// translate converts a provider failure into a coded domain error.
func (g *Gateway) translate(ctx context.Context, err error, action string) error {
	kind := g.kindOf(ctx, err)
	if kind == models.ErrorUnknown {
		return dErrors.Wrap(err, dErrors.CodeInternal, action+" failed")
	}
	return dErrors.Wrap(err, kind.Code(), kind.Message())
}
