package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const profilePictureFolder = "telbook/profile_pictures"

// CloudinaryService uploads contact profile pictures. When not configured
// the app stores whatever string the client sent (URL or data URI) as-is.
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld}, nil
}

// IsDataURI reports whether s is an inline base64 image (data:image/...)
// rather than an already-hosted URL.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}

// UploadProfilePicture uploads an inline image and returns its public URL.
// publicID keys the asset to the contact so re-uploads replace the old
// picture instead of piling up.
func (s *CloudinaryService) UploadProfilePicture(ctx context.Context, dataURI, publicID string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, dataURI, uploader.UploadParams{
		Folder:    profilePictureFolder,
		PublicID:  publicID,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return result.SecureURL, nil
}
