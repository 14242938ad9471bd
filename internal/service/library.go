package service

import (
	"context"
	"log/slog"

	"jellyterm/internal/domain"
)

// catalogSource abstracts the remote catalog operations (consumer-defined interface)
type catalogSource interface {
	FetchCatalog(ctx context.Context) (domain.Catalog, error)
	FetchHomeSections(ctx context.Context) (*domain.HomeSections, error)
	RefreshCache(ctx context.Context) (domain.Catalog, *domain.HomeSections, error)
}

// LibraryService owns the loaded catalog and home sections
type LibraryService struct {
	source catalogSource
	logger *slog.Logger

	catalog  domain.Catalog
	sections *domain.HomeSections
}

// NewLibraryService creates a new library service
func NewLibraryService(source catalogSource, logger *slog.Logger) *LibraryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LibraryService{source: source, logger: logger}
}

// Load fetches the catalog (cache-first) and the home sections
func (s *LibraryService) Load(ctx context.Context) error {
	catalog, err := s.source.FetchCatalog(ctx)
	if err != nil {
		return err
	}

	sections, err := s.source.FetchHomeSections(ctx)
	if err != nil {
		return err
	}

	s.catalog = catalog
	s.sections = sections
	return nil
}

// Refresh discards the persisted cache and refetches everything
func (s *LibraryService) Refresh(ctx context.Context) error {
	catalog, sections, err := s.source.RefreshCache(ctx)
	if err != nil {
		return err
	}

	s.catalog = catalog
	s.sections = sections
	s.logger.Info("refreshed catalog", "items", len(catalog))
	return nil
}

// Catalog returns the loaded catalog
func (s *LibraryService) Catalog() domain.Catalog {
	return s.catalog
}

// Sections returns the loaded home sections
func (s *LibraryService) Sections() *domain.HomeSections {
	if s.sections == nil {
		return &domain.HomeSections{}
	}
	return s.sections
}
