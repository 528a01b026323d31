package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"food-order-system/internal/errs"
	"food-order-system/internal/logger"
	"food-order-system/internal/models"
)

// Service implements registration, credential verification and token
// issuance. It is the only component that touches password hashes.
type Service struct {
	repo     Repository
	tokens   *TokenManager
	sessions SessionStore
	logger   *logger.Logger
	cost     int
}

// NewService creates the identity service.
func NewService(repo Repository, tokens *TokenManager, sessions SessionStore, log *logger.Logger, bcryptCost int) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		sessions: sessions,
		logger:   log,
		cost:     bcryptCost,
	}
}

// Register creates an account, provisions a cart for customer-role accounts
// and issues the initial token pair.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest, requestID string) (*models.AuthResponse, error) {
	role, err := req.Validate()
	if err != nil {
		return nil, errs.Wrap(errs.InvalidInput, err.Error(), err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to hash password", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         role,
	}

	// Only customer accounts shop; admins get no cart.
	if err := s.repo.CreateUser(ctx, user, role == models.RoleCustomer); err != nil {
		return nil, err
	}

	s.logger.Info("user_registered", "User registered", requestID, map[string]any{
		"user_id": user.ID,
		"role":    string(user.Role),
	})

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and issues a fresh token pair. Unknown email
// and wrong password produce the same message.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest, requestID string) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Wrap(errs.InvalidInput, err.Error(), err)
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errs.KindOf(err) == errs.NotFound {
			return nil, errs.E(errs.Unauthorized, "email or password is incorrect")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errs.E(errs.Unauthorized, "email or password is incorrect")
	}

	s.logger.Info("user_logged_in", "User logged in", requestID, map[string]any{
		"user_id": user.ID,
	})

	return s.issueTokens(ctx, user)
}

// Refresh verifies a refresh token against its signature and the session
// store, then issues a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	live, err := s.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to check session", err)
	}
	if !live {
		return nil, errs.E(errs.Unauthorized, "refresh session is no longer valid")
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errs.KindOf(err) == errs.NotFound {
			return nil, errs.E(errs.Unauthorized, "refresh session is no longer valid")
		}
		return nil, err
	}

	access, err := s.tokens.NewAccessToken(user)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to sign access token", err)
	}

	return &models.TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

// Me returns the acting user's profile.
func (s *Service) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) issueTokens(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	access, err := s.tokens.NewAccessToken(user)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to sign access token", err)
	}

	refresh, jti, err := s.tokens.NewRefreshToken(user)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to sign refresh token", err)
	}

	if err := s.sessions.Save(ctx, jti, user.ID, s.tokens.refreshTTL); err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to save session", err)
	}

	return &models.AuthResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
