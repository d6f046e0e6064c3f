package services

import (
	"context"

	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/dto"
)

type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, string, error)
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error)
	// IssueToken signs an access token for an already-authenticated user.
	IssueToken(user *domain.User) (string, error)
}

// GoogleOAuthSvcFacade exchanges an authorization code for a verified Google
// profile and signs the user in.
type GoogleOAuthSvcFacade interface {
	ExchangeCode(ctx context.Context, code string) (*domain.User, string, error)
}
