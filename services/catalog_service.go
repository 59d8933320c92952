package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/rentwheels/car-rental-api/models"
	"github.com/rentwheels/car-rental-api/store"
)

// CatalogService exposes read and filter access to the vehicle catalog.
// All catalog reads go through here so image URL resolution and error
// logging happen in one place.
type CatalogService struct {
	store  store.Store
	images ImageService
	log    *zap.SugaredLogger
}

// NewCatalogService creates a catalog service over the given store
func NewCatalogService(st store.Store, images ImageService, log *zap.SugaredLogger) *CatalogService {
	return &CatalogService{store: st, images: images, log: log}
}

// ListCars returns every car in the catalog, in stable catalog order.
func (s *CatalogService) ListCars(ctx context.Context) ([]models.Car, error) {
	cars, err := s.store.ListCars(ctx)
	if err != nil {
		s.log.Errorw("failed to list cars", "error", err)
		return nil, err
	}
	s.resolveImages(cars)
	return cars, nil
}

// GetCar looks up a single car by exact VIN.
func (s *CatalogService) GetCar(ctx context.Context, vin string) (*models.Car, error) {
	car, err := s.store.GetCarByVin(ctx, vin)
	if err != nil {
		if err != store.ErrCarNotFound {
			s.log.Errorw("failed to get car", "vin", vin, "error", err)
		}
		return nil, err
	}
	s.resolveImage(car)
	return car, nil
}

// CarTypes returns the unique car types for the type filter facet.
func (s *CatalogService) CarTypes(ctx context.Context) ([]string, error) {
	types, err := s.store.CarTypes(ctx)
	if err != nil {
		s.log.Errorw("failed to list car types", "error", err)
	}
	return types, err
}

// CarBrands returns the unique brands for the brand filter facet.
func (s *CatalogService) CarBrands(ctx context.Context) ([]string, error) {
	brands, err := s.store.CarBrands(ctx)
	if err != nil {
		s.log.Errorw("failed to list car brands", "error", err)
	}
	return brands, err
}

// Search filters the catalog by the given filters, preserving catalog order.
func (s *CatalogService) Search(ctx context.Context, filters models.SearchFilters) ([]models.Car, error) {
	cars, err := s.store.ListCars(ctx)
	if err != nil {
		s.log.Errorw("failed to search cars", "error", err)
		return nil, err
	}
	matched := models.FilterCars(cars, filters)
	s.resolveImages(matched)
	return matched, nil
}

// Suggestions returns autocomplete candidates for the given query.
func (s *CatalogService) Suggestions(ctx context.Context, query string) (models.SuggestionSet, error) {
	cars, err := s.store.ListCars(ctx)
	if err != nil {
		s.log.Errorw("failed to load cars for suggestions", "error", err)
		return models.SuggestionSet{}, err
	}
	return models.Suggest(cars, query), nil
}

func (s *CatalogService) resolveImages(cars []models.Car) {
	for i := range cars {
		s.resolveImage(&cars[i])
	}
}

// resolveImage fills the computed imageUrl field. Failures degrade to the
// raw image reference rather than failing the whole catalog read.
func (s *CatalogService) resolveImage(car *models.Car) {
	url, err := s.images.ImageURL(car.Image)
	if err != nil {
		s.log.Warnw("failed to resolve image URL", "vin", car.VIN, "image", car.Image, "error", err)
		car.ImageURL = car.Image
		return
	}
	car.ImageURL = url
}
