package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	jwtpkg "github.com/bookie-app/bookie-api/internal/jwt"
	"github.com/bookie-app/bookie-api/internal/models"
)

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockUserReader(ctrl)
	writer := NewMockUserWriter(ctrl)
	kafkaWriter := NewMockKafkaWriter(ctrl)

	ctx := context.Background()

	reader.EXPECT().
		GetByEmail(ctx, "alice@example.com").
		Return(nil, nil)

	var savedUser models.UserDB
	writer.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.UserDB) (*models.UserDB, error) {
			savedUser = user
			user.UID = uuid.New()
			return &user, nil
		})

	kafkaWriter.EXPECT().
		WriteMessages(ctx, gomock.Any()).
		Return(nil)

	svc := NewAuthService(reader, writer, nil, nil, kafkaWriter)

	user, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret", "Alice", "Smith")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "alice", savedUser.Username)
	assert.Equal(t, models.RoleUser, savedUser.Role)
	assert.NotEqual(t, "s3cret", savedUser.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(savedUser.Password), []byte("s3cret")))
}

func TestAuthService_Register_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockUserReader(ctrl)

	ctx := context.Background()

	reader.EXPECT().
		GetByEmail(ctx, "alice@example.com").
		Return(&models.UserDB{Email: "alice@example.com"}, nil)

	svc := NewAuthService(reader, nil, nil, nil, nil)

	user, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret", "", "")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Nil(t, user)
}

func TestAuthService_Register_UniqueViolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockUserReader(ctrl)
	writer := NewMockUserWriter(ctrl)

	ctx := context.Background()

	reader.EXPECT().
		GetByEmail(ctx, "alice@example.com").
		Return(nil, nil)

	writer.EXPECT().
		Save(ctx, gomock.Any()).
		Return(nil, &pgconn.PgError{Code: uniqueViolationCode})

	svc := NewAuthService(reader, writer, nil, nil, nil)

	user, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret", "", "")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Nil(t, user)
}

func TestAuthService_Register_ReaderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockUserReader(ctrl)

	ctx := context.Background()

	reader.EXPECT().
		GetByEmail(ctx, "alice@example.com").
		Return(nil, errors.New("db down"))

	svc := NewAuthService(reader, nil, nil, nil, nil)

	user, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret", "", "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserAlreadyExists)
	assert.Nil(t, user)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockUserReader(ctrl)
	tokens := NewMockTokenIssuer(ctrl)

	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	uid := uuid.New()
	stored := &models.UserDB{
		UID:      uid,
		Email:    "alice@example.com",
		Password: string(hash),
		Role:     models.RoleAdmin,
	}

	reader.EXPECT().
		GetByEmail(ctx, "alice@example.com").
		Return(stored, nil)

	tokens.EXPECT().
		Generate(ctx, jwtpkg.UserClaims{Email: "alice@example.com", UserUID: uid.String(), Role: models.RoleAdmin}, false).
		Return("access-token", nil)
	tokens.EXPECT().
		Generate(ctx, jwtpkg.UserClaims{Email: "alice@example.com", UserUID: uid.String()}, true).
		Return("refresh-token", nil)

	svc := NewAuthService(reader, nil, tokens, nil, nil)

	access, refresh, user, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "access-token", access)
	assert.Equal(t, "refresh-token", refresh)
	assert.Equal(t, stored, user)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockUserReader(ctrl)

	ctx := context.Background()

	reader.EXPECT().
		GetByEmail(ctx, "ghost@example.com").
		Return(nil, nil)

	svc := NewAuthService(reader, nil, nil, nil, nil)

	_, _, user, err := svc.Login(ctx, "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, user)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockUserReader(ctrl)

	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	require.NoError(t, err)

	reader.EXPECT().
		GetByEmail(ctx, "alice@example.com").
		Return(&models.UserDB{Email: "alice@example.com", Password: string(hash)}, nil)

	svc := NewAuthService(reader, nil, nil, nil, nil)

	_, _, _, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokens := NewMockTokenIssuer(ctrl)

	ctx := context.Background()

	claims := &jwtpkg.Claims{
		User:    jwtpkg.UserClaims{Email: "alice@example.com", UserUID: uuid.NewString()},
		Refresh: true,
	}

	tokens.EXPECT().
		Generate(ctx, claims.User, false).
		Return("new-access-token", nil)

	svc := NewAuthService(nil, nil, tokens, nil, nil)

	access, err := svc.Refresh(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, "new-access-token", access)
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	denylist := NewMockTokenDenier(ctrl)

	ctx := context.Background()

	claims := &jwtpkg.Claims{
		User: jwtpkg.UserClaims{Email: "alice@example.com"},
	}
	claims.ID = "jti-123"

	denylist.EXPECT().
		Deny(ctx, "jti-123").
		Return(nil)

	svc := NewAuthService(nil, nil, nil, denylist, nil)

	require.NoError(t, svc.Logout(ctx, claims))
}

func TestAuthService_Logout_DenyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	denylist := NewMockTokenDenier(ctrl)

	ctx := context.Background()

	denylist.EXPECT().
		Deny(ctx, "jti-123").
		Return(errors.New("redis down"))

	svc := NewAuthService(nil, nil, nil, denylist, nil)

	claims := &jwtpkg.Claims{}
	claims.ID = "jti-123"
	assert.Error(t, svc.Logout(ctx, claims))
}

func TestAuthService_ListUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockUserReader(ctrl)

	ctx := context.Background()

	expected := []models.UserDB{
		{UID: uuid.New(), Email: "alice@example.com"},
		{UID: uuid.New(), Email: "bob@example.com"},
	}

	reader.EXPECT().
		ListAll(ctx).
		Return(expected, nil)

	svc := NewAuthService(reader, nil, nil, nil, nil)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, users)
}
