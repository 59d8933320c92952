package services

// MockImageService is a test double for ImageService. It records the keys
// it was asked about and returns a fixed prefix or error.
type MockImageService struct {
	URLPrefix string
	Err       error
	Requested []string
}

// NewMockImageService creates a mock that prefixes every key with urlPrefix
func NewMockImageService(urlPrefix string) *MockImageService {
	return &MockImageService{URLPrefix: urlPrefix}
}

// ImageURL returns the prefixed key, or the configured error
func (m *MockImageService) ImageURL(imageKey string) (string, error) {
	m.Requested = append(m.Requested, imageKey)
	if m.Err != nil {
		return "", m.Err
	}
	if imageKey == "" {
		return "", nil
	}
	return m.URLPrefix + imageKey, nil
}
