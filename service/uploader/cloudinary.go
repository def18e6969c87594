package uploader

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary service
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// Constuctor for cloudinary service
func NewCld(cloudName, cloudKey, cloudSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, cloudKey, cloudSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryService{cld: cld}, nil
}

// Upload event artwork into the cloud service.
// Image here can be: local file path, io.Reader, base64, URL or storage bucket.
func (cld *CloudinaryService) UploadImage(ctx context.Context, name string, image any) (*uploader.UploadResult, error) {
	resp, err := cld.cld.Upload.Upload(ctx, image, uploader.UploadParams{
		PublicID: name,
	})

	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	return resp, nil
}
