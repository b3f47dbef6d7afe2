package helper

import (
	"context"
	"fmt"
	"strings"

	"haven_manager/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type UploadResult struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ImageUploader is the contract the managers depend on: given a base64
// payload, return a permanent URL plus an identifier for later deletion.
type ImageUploader interface {
	Upload(ctx context.Context, payload, folder string) (UploadResult, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore() (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(
		config.Config("CLOUDINARY_CLOUD_NAME"),
		config.Config("CLOUDINARY_API_KEY"),
		config.Config("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init failed: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, payload, folder string) (UploadResult, error) {
	if !strings.HasPrefix(payload, "data:") {
		payload = "data:image/png;base64," + payload
	}
	res, err := s.cld.Upload.Upload(ctx, payload, uploader.UploadParams{
		Folder:   folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	// An incomplete result is a failure, not something to persist.
	if res.PublicID == "" || res.SecureURL == "" {
		return UploadResult{}, fmt.Errorf("%w: incomplete upload result", ErrUpstream)
	}
	return UploadResult{ID: res.PublicID, URL: res.SecureURL}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return res.Result == "ok", nil
}
