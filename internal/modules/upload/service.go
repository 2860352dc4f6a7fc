package upload

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrNotConfigured = errors.New("upload storage not configured")

const avatarFolder = "mentorhub/avatars"

type UserAvatarUpdater interface {
	UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error
}

type Service struct {
	cld   *cloudinary.Cloudinary
	users UserAvatarUpdater
}

// NewService builds the upload service. cloudinaryURL may be empty, in which
// case every upload returns ErrNotConfigured.
func NewService(cloudinaryURL string, users UserAvatarUpdater) (*Service, error) {
	if cloudinaryURL == "" {
		return &Service{users: users}, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Service{cld: cld, users: users}, nil
}

// UploadAvatar sends the file to Cloudinary and stores the returned URL on the
// user record.
func (s *Service) UploadAvatar(ctx context.Context, userID int64, file multipart.File) (string, error) {
	if s.cld == nil {
		return "", ErrNotConfigured
	}

	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   avatarFolder,
		PublicID: fmt.Sprintf("user_%d", userID),
	})
	if err != nil {
		return "", fmt.Errorf("avatar upload: %w", err)
	}

	if err := s.users.UpdateAvatar(ctx, userID, resp.SecureURL); err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
