package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flapabay/flapabay-engine/internal/domain"
)

type ImportService struct {
	feed  domain.FeedClient
	repo  domain.PropertyRepository
	cache domain.Cache
}

func NewImportService(f domain.FeedClient, r domain.PropertyRepository, cache domain.Cache) *ImportService {
	return &ImportService{feed: f, repo: r, cache: cache}
}

// ImportListing pulls one listing from the feed and upserts it keyed by its
// feed id. Known 404/401/403 responses and unmappable payloads are recorded
// as misses and do not abort the run; anything else bubbles up.
func (s *ImportService) ImportListing(ctx context.Context, feedID int64) error {
	payload, err := s.feed.GetListing(ctx, feedID)
	if err != nil {
		low := strings.ToLower(err.Error())

		// 404: listing gone from the feed -> record miss and stop gracefully.
		if errors.Is(err, domain.ErrNotFound) || strings.Contains(low, "not found") {
			_ = s.repo.LogMiss(ctx, feedID, 404, "not found")
			return nil
		}

		// 401/403: key rejected or listing withdrawn -> record miss, stop.
		if strings.Contains(low, "403") || strings.Contains(low, "forbidden") ||
			strings.Contains(low, "401") || strings.Contains(low, "unauthorized") {
			_ = s.repo.LogMiss(ctx, feedID, 403, "inactive")
			return nil
		}

		// Anything else is unexpected (network/5xx/JSON/etc.) -> bubble up.
		return err
	}

	in := mapListing(payload)
	if err := in.Validate(); err != nil {
		// Bad feed rows are a data-quality problem, not a run failure.
		_ = s.repo.LogMiss(ctx, feedID, 422, "invalid payload")
		return nil
	}

	id, err := s.repo.UpsertFeedProperty(ctx, feedID, in)
	if err != nil {
		return fmt.Errorf("upsert listing %d: %w", feedID, err)
	}

	// Re-imports change the stored row; drop any cached snapshot.
	if s.cache != nil {
		_ = s.cache.Del(ctx, fmt.Sprintf("property:%d", id))
	}
	return nil
}
