package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"chess-fen/internal/auth/domain/model"
	"chess-fen/internal/auth/domain/repository"
	"chess-fen/internal/shared/logger"

	"github.com/google/uuid"
)

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthUsecaseInterface defines the contract for authentication use cases.
type AuthUsecaseInterface interface {
	Register(ctx context.Context, req RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req LoginRequest) (*model.User, string, error)
	VerifyToken(ctx context.Context, tokenString string) (*repository.Claims, error)
	Logout(ctx context.Context, tokenString string) error
	CurrentUser(ctx context.Context, claims *repository.Claims) (model.Identity, error)
}

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUsecase implements the authentication logic.
type AuthUsecase struct {
	repo     repository.UserRepository
	tokenSvc repository.TokenService
	hasher   repository.PasswordHasher
	log      logger.Logger
	now      func() time.Time

	// compared against when the email is unknown so both login failures cost one hash
	dummyOnce sync.Once
	dummyHash string
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	repo repository.UserRepository,
	tokenSvc repository.TokenService,
	hasher repository.PasswordHasher,
	log logger.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		repo:     repo,
		tokenSvc: tokenSvc,
		hasher:   hasher,
		log:      log.WithComponent("auth_usecase"),
		now:      time.Now,
	}
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return model.ErrMissingField
	}
	if !emailRegex.MatchString(email) {
		return model.ErrInvalidEmailFormat
	}
	if len(password) > maxPasswordBytes {
		return model.ErrPasswordTooLong
	}
	return nil
}

// Register creates a new user. Uniqueness is left to the repository so that two concurrent
// registrations for the same address cannot both succeed.
func (uc *AuthUsecase) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	email := model.NormalizeEmail(req.Email)
	if err := validateCredentials(email, req.Password); err != nil {
		return nil, err
	}

	hashed, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := uc.now().UTC()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, model.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.log.WithContext(ctx).WithFields(map[string]interface{}{"user_id": user.ID}).Info("user registered")

	user.PasswordHash = ""
	return user, nil
}

// Login checks credentials and issues a session token. Unknown email and wrong password are
// indistinguishable to the caller.
func (uc *AuthUsecase) Login(ctx context.Context, req LoginRequest) (*model.User, string, error) {
	email := model.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, "", model.ErrMissingField
	}

	user, err := uc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			_ = uc.hasher.Compare(uc.fallbackHash(), req.Password)
			return nil, "", model.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := uc.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, "", model.ErrInvalidCredentials
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (uc *AuthUsecase) fallbackHash() string {
	uc.dummyOnce.Do(func() {
		h, err := uc.hasher.Hash(uuid.NewString())
		if err != nil {
			uc.log.WithError(err).Warn("failed to prepare fallback hash")
			return
		}
		uc.dummyHash = h
	})
	return uc.dummyHash
}

// VerifyToken is a pure check of signature and expiry.
func (uc *AuthUsecase) VerifyToken(ctx context.Context, tokenString string) (*repository.Claims, error) {
	if tokenString == "" {
		return nil, model.ErrMissingToken
	}
	claims, err := uc.tokenSvc.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, model.ErrTokenInvalid
	}
	return claims, nil
}

// Logout has nothing to revoke server side; the handler clears the cookie.
func (uc *AuthUsecase) Logout(ctx context.Context, tokenString string) error {
	if tokenString == "" {
		return nil
	}
	if claims, err := uc.tokenSvc.ValidateToken(ctx, tokenString); err == nil {
		uc.log.WithContext(ctx).WithFields(map[string]interface{}{"user_id": claims.UserID}).Debug("user logged out")
	}
	return nil
}

// CurrentUser confirms the session's account still exists. A token for a missing account is
// treated like any other invalid token.
func (uc *AuthUsecase) CurrentUser(ctx context.Context, claims *repository.Claims) (model.Identity, error) {
	user, err := uc.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.Identity{}, model.ErrTokenInvalid
		}
		return model.Identity{}, fmt.Errorf("failed to get user: %w", err)
	}
	return model.Identity{UserID: user.ID, Email: user.Email}, nil
}
