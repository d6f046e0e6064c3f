package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/centsible/centsible_backend/internal/core/domain"
	portssvc "github.com/centsible/centsible_backend/internal/core/ports/services"
	"github.com/centsible/centsible_backend/internal/middleware"
	"github.com/centsible/centsible_backend/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// GoogleOAuthService exchanges an authorization code for a verified Google
// identity and signs the user in.
type GoogleOAuthService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
	userSvc      portssvc.UserSvcFacade
	authSvc      portssvc.AuthSvcFacade
}

func NewGoogleOAuthService(cfg *config.Config, userSvc portssvc.UserSvcFacade, authSvc portssvc.AuthSvcFacade) *GoogleOAuthService {
	return &GoogleOAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		userSvc: userSvc,
		authSvc: authSvc,
	}
}

// ExchangeCode trades the authorization code for Google tokens, validates the
// ID token, resolves (or creates) the user and issues an application JWT.
func (s *GoogleOAuthService) ExchangeCode(ctx context.Context, code string) (*domain.User, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cfg.GoogleClientID == "" {
		return nil, "", errors.New("google client ID is not configured")
	}

	oauth2Token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		return nil, "", errors.New("google token response did not include an ID token")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, "", fmt.Errorf("google ID token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, "", errors.New("google ID token has no email claim")
	}
	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = email
	}

	user, err := s.userSvc.FindOrCreateGoogleUser(ctx, email, name)
	if err != nil {
		return nil, "", err
	}

	token, err := s.authSvc.IssueToken(user)
	if err != nil {
		logger.Error("Failed to issue token after Google sign-in", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return nil, "", err
	}

	return user, token, nil
}
