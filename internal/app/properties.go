package app

import (
	"context"
	"fmt"
	"time"

	"github.com/flapabay/flapabay-engine/internal/domain"
)

type PropertyService struct {
	repo     domain.PropertyRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewPropertyService(r domain.PropertyRepository, c domain.Cache, ttl time.Duration) *PropertyService {
	return &PropertyService{repo: r, cache: c, cacheTTL: ttl}
}

// Create validates the input at the boundary, then maps it verbatim onto one
// durable insert. Storage faults are not recovered here; they propagate
// wrapped.
func (s *PropertyService) Create(ctx context.Context, in domain.NewPropertyInput) (domain.Property, error) {
	if err := in.Validate(); err != nil {
		return domain.Property{}, err
	}
	id, err := s.repo.InsertProperty(ctx, in)
	if err != nil {
		return domain.Property{}, fmt.Errorf("insert property: %w", err)
	}
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return domain.Property{}, fmt.Errorf("read back property %d: %w", id, err)
	}
	return p, nil
}

// Get is a read-through cached single-property read.
func (s *PropertyService) Get(ctx context.Context, id int64) (domain.Property, error) {
	key := fmt.Sprintf("property:%d", id)
	if s.cache != nil {
		var p domain.Property
		if ok, _ := s.cache.Get(ctx, key, &p); ok {
			return p, nil
		}
	}
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, p, int(s.cacheTTL.Seconds()))
	}
	return p, nil
}

// List applies the composed filter against the store. Results are not
// cached: the filter space is unbounded.
func (s *PropertyService) List(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	return s.repo.ListProperties(ctx, f)
}
