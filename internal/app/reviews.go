package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/flapabay/flapabay-engine/internal/domain"
)

type LookupStatus int

const (
	LookupInvalidID LookupStatus = iota
	LookupNotFound
	LookupFound
	LookupFailed
)

// ReviewLookup is the typed outcome of a user-review fetch. Every fault is
// translated at this boundary; callers never see a raw storage error.
type ReviewLookup struct {
	Status  LookupStatus
	UserID  int64
	Reviews []domain.Review
	Err     error // set only for LookupFailed
}

type ReviewLookupService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewReviewLookupService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *ReviewLookupService {
	return &ReviewLookupService{repo: r, cache: c, cacheTTL: ttl}
}

// FetchForUser validates the identifier shape, then classifies the stored
// reviews for that user. A non-numeric id never reaches storage; an empty
// result is a valid state, not an error.
func (s *ReviewLookupService) FetchForUser(ctx context.Context, userID string) ReviewLookup {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return ReviewLookup{Status: LookupInvalidID}
	}

	key := fmt.Sprintf("user_reviews:%d", id)
	if s.cache != nil {
		var cached []domain.Review
		if ok, _ := s.cache.Get(ctx, key, &cached); ok && len(cached) > 0 {
			return ReviewLookup{Status: LookupFound, UserID: id, Reviews: cached}
		}
	}

	rs, err := s.repo.ListReviewsByUser(ctx, id)
	if err != nil {
		return ReviewLookup{Status: LookupFailed, UserID: id, Err: err}
	}
	if len(rs) == 0 {
		return ReviewLookup{Status: LookupNotFound, UserID: id}
	}

	// copy slice to avoid aliasing the repo's backing array (prevents callers
	// from mutating the cached value)
	out := make([]domain.Review, len(rs))
	copy(out, rs)

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return ReviewLookup{Status: LookupFound, UserID: id, Reviews: out}
}
