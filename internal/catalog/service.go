package catalog

import (
	"context"
	"log/slog"
	"math/rand"
)

// Source is the slice of the upstream API the service needs.
type Source interface {
	Products(ctx context.Context) ([]upstreamProduct, error)
	Categories(ctx context.Context) ([]string, error)
}

type Service struct {
	repo   Repository
	source Source
	log    *slog.Logger
}

func NewService(repo Repository, source Source, log *slog.Logger) *Service {
	return &Service{repo: repo, source: source, log: log}
}

func (s *Service) List(ctx context.Context, q Query) ([]Product, error) {
	return s.repo.Find(ctx, q)
}

func (s *Service) Get(ctx context.Context, productID int) (*Product, error) {
	return s.repo.FindByProductID(ctx, productID)
}

// Categories lists the distinct mirrored categories, falling back to the
// upstream source while nothing has been seeded yet.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		return categories, nil
	}
	return s.source.Categories(ctx)
}

// Seed mirrors the upstream catalog into the products collection, skipping
// products that are already present. Stock is informational only, so a
// random level is assigned on first import.
func (s *Service) Seed(ctx context.Context) (int, error) {
	upstream, err := s.source.Products(ctx)
	if err != nil {
		return 0, err
	}
	inserted := 0
	for _, up := range upstream {
		p := &Product{
			ProductID:   up.ID,
			Title:       up.Title,
			Price:       up.Price,
			Description: up.Description,
			Category:    up.Category,
			Image:       up.Image,
			Rating:      up.Rating,
			Stock:       rand.Intn(100) + 1,
		}
		ok, err := s.repo.InsertIfAbsent(ctx, p)
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}
	s.log.Info("catalog seeded", "upstream", len(upstream), "inserted", inserted)
	return inserted, nil
}
