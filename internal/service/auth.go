package service

import (
	"context"
	"errors"

	"rutilahu/internal/auth"
	"rutilahu/pkg/types"

	"github.com/sirupsen/logrus"
)

type UserStore interface {
	User(ctx context.Context, userID string) (*types.User, error)
	UserByUsername(ctx context.Context, username string) (*types.User, error)
	Create(ctx context.Context, user *types.User) error
	SetActive(ctx context.Context, userID string, active bool) error
}

// AuthService verifies credentials and issues session tokens. Login
// attempts are audited whether they succeed or not.
type AuthService struct {
	users  UserStore
	tokens *auth.TokenIssuer
	audit  Recorder
	logger *logrus.Logger
}

func NewAuthService(users UserStore, tokens *auth.TokenIssuer, audit Recorder, logger *logrus.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, audit: audit, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, input types.LoginInput, ipAddress string) (*types.Session, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := s.users.UserByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			s.recordLogin(ctx, "", input.Username, ipAddress, "unknown username")
			return nil, types.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, input.Password) {
		s.recordLogin(ctx, user.ID, input.Username, ipAddress, "wrong password")
		return nil, types.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.recordLogin(ctx, user.ID, input.Username, ipAddress, "inactive account")
		return nil, types.ErrAccountInactive
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.recordLogin(ctx, user.ID, input.Username, ipAddress, "success")

	return &types.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) recordLogin(ctx context.Context, userID, username, ipAddress, outcome string) {
	s.audit.Record(ctx, types.AuditEvent{
		UserID:       userID,
		Action:       types.AuditActionLogin,
		ResourceType: "session",
		Details:      username + ": " + outcome,
		IPAddress:    ipAddress,
	})
}

func (s *AuthService) CreateUser(ctx context.Context, input types.CreateUserInput, actor types.Actor) (*types.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, types.NewValidationError("role", "unknown role")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &types.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		DistrictID:   input.DistrictID,
		VillageID:    input.VillageID,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, types.AuditEvent{
		UserID:       actor.UserID,
		Action:       types.AuditActionCreate,
		ResourceType: "user",
		ResourceID:   user.ID,
		IPAddress:    actor.IPAddress,
	})

	return user, nil
}

func (s *AuthService) DeactivateUser(ctx context.Context, userID string, actor types.Actor) error {
	if err := s.users.SetActive(ctx, userID, false); err != nil {
		return err
	}

	s.audit.Record(ctx, types.AuditEvent{
		UserID:       actor.UserID,
		Action:       types.AuditActionUpdate,
		ResourceType: "user",
		ResourceID:   userID,
		Details:      "deactivated",
		IPAddress:    actor.IPAddress,
	})

	return nil
}
