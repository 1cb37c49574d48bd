package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	jwtpkg "github.com/bookie-app/bookie-api/internal/jwt"
	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/models"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const uniqueViolationCode = "23505"

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	ListAll(ctx context.Context) ([]models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user models.UserDB) (*models.UserDB, error)
}

// TokenIssuer defines an interface for issuing signed tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, user jwtpkg.UserClaims, refresh bool) (string, error)
}

// TokenDenier marks token ids as revoked.
type TokenDenier interface {
	Deny(ctx context.Context, jti string) error
}

// AuthService handles signup, login, token refresh and logout.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	tokens      TokenIssuer
	denylist    TokenDenier
	kafkaWriter KafkaWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenIssuer, denylist TokenDenier, kafkaWriter KafkaWriter) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		tokens:      tokens,
		denylist:    denylist,
		kafkaWriter: kafkaWriter,
	}
}

// Register creates a new user account. The password is bcrypt-hashed before
// persisting and the role is always "user" regardless of input. A duplicate
// email is reported as ErrUserAlreadyExists, whether it is caught by the
// existence check or by the unique index on concurrent signup.
func (svc *AuthService) Register(ctx context.Context, username, email, password, firstName, lastName string) (*models.UserDB, error) {
	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "email", email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, models.UserDB{
		Username:  username,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      models.RoleUser,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			logger.Log.Errorw("user already exists", "email", email)
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	publishAuditEvent(ctx, svc.kafkaWriter, models.AuditEvent{
		Event:   models.EventUserRegistered,
		UserUID: user.UID.String(),
		Email:   user.Email,
	})

	return user, nil
}

// Login authenticates a user and returns an access/refresh token pair.
func (svc *AuthService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *models.UserDB, err error) {
	user, err = svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", "", nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "email", email)
		return "", "", nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "email", email)
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err = svc.tokens.Generate(ctx, jwtpkg.UserClaims{
		Email:   user.Email,
		UserUID: user.UID.String(),
		Role:    user.Role,
	}, false)
	if err != nil {
		logger.Log.Errorw("failed to generate access token", "err", err)
		return "", "", nil, err
	}

	refreshToken, err = svc.tokens.Generate(ctx, jwtpkg.UserClaims{
		Email:   user.Email,
		UserUID: user.UID.String(),
	}, true)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "err", err)
		return "", "", nil, err
	}

	return accessToken, refreshToken, user, nil
}

// Refresh issues a new access token from verified refresh token claims.
func (svc *AuthService) Refresh(ctx context.Context, claims *jwtpkg.Claims) (string, error) {
	accessToken, err := svc.tokens.Generate(ctx, claims.User, false)
	if err != nil {
		logger.Log.Errorw("failed to refresh access token", "err", err)
		return "", err
	}
	return accessToken, nil
}

// Logout revokes the presented token by denying its jti.
func (svc *AuthService) Logout(ctx context.Context, claims *jwtpkg.Claims) error {
	if err := svc.denylist.Deny(ctx, claims.ID); err != nil {
		logger.Log.Errorw("failed to deny token", "jti", claims.ID, "err", err)
		return err
	}
	return nil
}

// ListUsers returns every user account.
func (svc *AuthService) ListUsers(ctx context.Context) ([]models.UserDB, error) {
	users, err := svc.reader.ListAll(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return users, nil
}
