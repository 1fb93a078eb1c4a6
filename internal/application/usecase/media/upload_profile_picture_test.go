package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error) {
	args := m.Called(ctx, file, folder, publicID)
	return args.String(0), args.Error(1)
}

func TestUploadProfilePicture(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		up := new(MockUploader)
		uc := NewUploadProfilePictureUseCase(up, logger.NewNopLogger())
		up.On("Upload", ctx, mock.Anything, "portfolios/"+userID.String(), "avatar").
			Return("https://res.cloudinary.com/demo/avatar.png", nil).Once()

		out, err := uc.Execute(ctx, UploadProfilePictureInput{UserID: userID, File: strings.NewReader("png")})

		require.NoError(t, err)
		assert.Equal(t, "https://res.cloudinary.com/demo/avatar.png", out.URL)
		up.AssertExpectations(t)
	})

	t.Run("UploaderFails", func(t *testing.T) {
		up := new(MockUploader)
		uc := NewUploadProfilePictureUseCase(up, logger.NewNopLogger())
		up.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("quota")).Once()

		_, err := uc.Execute(ctx, UploadProfilePictureInput{UserID: userID, File: strings.NewReader("png")})

		assert.ErrorIs(t, err, apperror.ErrInternal)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		uc := NewUploadProfilePictureUseCase(nil, logger.NewNopLogger())

		_, err := uc.Execute(ctx, UploadProfilePictureInput{UserID: userID, File: strings.NewReader("png")})

		assert.ErrorIs(t, err, apperror.ErrUnavailable)
	})
}
