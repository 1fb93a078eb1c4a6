package media

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const profilePicturePublicID = "avatar"

type UploadProfilePictureUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

// NewUploadProfilePictureUseCase accepts a nil uploader; Execute then reports
// the feature as unavailable.
func NewUploadProfilePictureUseCase(u service.Uploader, log logger.Logger) *UploadProfilePictureUseCase {
	return &UploadProfilePictureUseCase{uploader: u, logger: log}
}

type UploadProfilePictureInput struct {
	UserID uuid.UUID
	File   io.Reader
}

type UploadProfilePictureOutput struct {
	URL string
}

func (uc *UploadProfilePictureUseCase) Execute(ctx context.Context, input UploadProfilePictureInput) (*UploadProfilePictureOutput, error) {
	if uc.uploader == nil {
		return nil, apperror.NewUnavailable("media storage is not configured")
	}
	if input.File == nil {
		return nil, apperror.NewInvalidInput("'file' is required", nil)
	}

	// One avatar per user; re-uploads overwrite the same public id.
	folder := fmt.Sprintf("portfolios/%s", input.UserID.String())
	url, err := uc.uploader.Upload(ctx, input.File, folder, profilePicturePublicID)
	if err != nil {
		uc.logger.Error("Failed to upload profile picture", err, zap.String("user_id", input.UserID.String()))
		return nil, apperror.NewStorage("Failed to upload image", "cloudinary upload", err)
	}

	uc.logger.Info("Profile picture uploaded", zap.String("user_id", input.UserID.String()), zap.String("url", url))
	return &UploadProfilePictureOutput{URL: url}, nil
}
