package services

import "fmt"

// ImageService resolves a car's stored image reference to a URL the
// storefront can load.
type ImageService interface {
	ImageURL(imageKey string) (string, error)
}

// S3ImageService serves catalog images from a private S3 bucket via
// presigned URLs.
type S3ImageService struct {
	s3Service S3Interface
}

// NewS3ImageService creates an image service backed by S3
func NewS3ImageService(s3Service S3Interface) *S3ImageService {
	return &S3ImageService{s3Service: s3Service}
}

// ImageURL generates a presigned URL for the image key
func (s *S3ImageService) ImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(imageKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}
	return url, nil
}

// LocalImageService passes the seeded image path through unchanged, for
// deployments that serve catalog images as static assets.
type LocalImageService struct{}

// NewLocalImageService creates a passthrough image service
func NewLocalImageService() *LocalImageService {
	return &LocalImageService{}
}

// ImageURL returns the stored image reference as-is
func (s *LocalImageService) ImageURL(imageKey string) (string, error) {
	return imageKey, nil
}
