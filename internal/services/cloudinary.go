package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader stores a file somewhere public and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string) (string, error)
}

// attachmentFormats are the evidence file types accepted on journals.
var attachmentFormats = []string{"jpg", "jpeg", "png", "webp", "gif", "heic"}

// CloudinaryService uploads journal attachments to Cloudinary.
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryService{cld: cld}, nil
}

// Upload stores an image under folder and returns its HTTPS URL.
func (s *CloudinaryService) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         folder,
		ResourceType:   "image",
		AllowedFormats: attachmentFormats,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	// API-level rejections come back in the result, not as err.
	if result.Error.Message != "" {
		return "", errors.New("cloudinary rejected upload: " + result.Error.Message)
	}
	return result.SecureURL, nil
}
