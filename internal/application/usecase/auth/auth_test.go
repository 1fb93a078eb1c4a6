package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-builder/internal/domain/user"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := NewRegisterUseCase(repo, logger.NewNopLogger())

		repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(nil, apperror.NewNotFound("User", "jane@x.com")).Once()
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
			return u.Name == "Jane" && u.Email == "jane@x.com" && auth.CheckPasswordHash("pw123456", u.PasswordHash)
		})).Return(nil).Once()

		out, err := uc.Execute(ctx, RegisterInput{Name: "Jane", Email: " Jane@X.com ", Password: "pw123456"})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, out.User.ID)
		assert.Equal(t, "jane@x.com", out.User.Email)
		assert.NotEqual(t, "pw123456", out.User.PasswordHash)
		repo.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := NewRegisterUseCase(repo, logger.NewNopLogger())

		for _, in := range []RegisterInput{
			{Email: "a@x.com", Password: "pw"},
			{Name: "A", Password: "pw"},
			{Name: "A", Email: "a@x.com"},
		} {
			_, err := uc.Execute(ctx, in)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, "Missing fields", appErr.Message)
		}
		repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("AlreadyExists", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := NewRegisterUseCase(repo, logger.NewNopLogger())

		repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(&user.User{ID: uuid.New(), Email: "jane@x.com"}, nil).Once()

		_, err := uc.Execute(ctx, RegisterInput{Name: "Jane", Email: "jane@x.com", Password: "pw123456"})

		assert.ErrorIs(t, err, apperror.ErrConflict)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("InsertRaceReportsConflict", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := NewRegisterUseCase(repo, logger.NewNopLogger())

		repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(nil, apperror.NewNotFound("User", "jane@x.com")).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(apperror.NewConflict("user conflict", "users_email_key")).Once()

		_, err := uc.Execute(ctx, RegisterInput{Name: "Jane", Email: "jane@x.com", Password: "pw123456"})

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "User already exists", appErr.Message)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := NewRegisterUseCase(repo, logger.NewNopLogger())

		repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(nil, apperror.NewInternal("query user", errors.New("db down"))).Once()

		_, err := uc.Execute(ctx, RegisterInput{Name: "Jane", Email: "jane@x.com", Password: "pw123456"})

		assert.ErrorIs(t, err, apperror.ErrInternal)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	jwtSvc := auth.NewJWTService("test-secret", 7*24*time.Hour)
	hash, err := auth.HashPassword("pw123456")
	require.NoError(t, err)
	jane := &user.User{ID: uuid.New(), Name: "Jane", Email: "jane@x.com", PasswordHash: hash}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := NewLoginUseCase(repo, jwtSvc, logger.NewNopLogger())
		repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(jane, nil).Once()

		out, err := uc.Execute(ctx, LoginInput{Email: "jane@x.com", Password: "pw123456"})

		require.NoError(t, err)
		assert.Equal(t, jane, out.User)
		claims, err := jwtSvc.ValidateToken(out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, jane.ID, claims.UserID)
		assert.Equal(t, "jane@x.com", claims.Email)
	})

	t.Run("UnknownEmailAndWrongPasswordLookAlike", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := NewLoginUseCase(repo, jwtSvc, logger.NewNopLogger())
		repo.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, apperror.NewNotFound("User", "ghost@x.com")).Once()
		repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(jane, nil).Once()

		_, errUnknown := uc.Execute(ctx, LoginInput{Email: "ghost@x.com", Password: "pw123456"})
		_, errWrong := uc.Execute(ctx, LoginInput{Email: "jane@x.com", Password: "nope"})

		var a, b *apperror.AppError
		require.True(t, errors.As(errUnknown, &a))
		require.True(t, errors.As(errWrong, &b))
		assert.ErrorIs(t, errUnknown, apperror.ErrUnauthorized)
		assert.ErrorIs(t, errWrong, apperror.ErrUnauthorized)
		assert.Equal(t, "Invalid credentials", a.Message)
		assert.Equal(t, a.Message, b.Message)
	})

	t.Run("MissingFields", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := NewLoginUseCase(repo, jwtSvc, logger.NewNopLogger())

		_, err := uc.Execute(ctx, LoginInput{Email: "jane@x.com"})

		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}
