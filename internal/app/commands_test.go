package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/flapabay/flapabay-engine/internal/app"
)

type fakeFeed struct {
	listings map[int64]map[string]any
	err      error
}

func (f *fakeFeed) ListListingIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	for id := range f.listings {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeFeed) GetListing(ctx context.Context, id int64) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	l, ok := f.listings[id]
	if !ok {
		return nil, errors.New("feed: not found")
	}
	return l, nil
}

func feedListing(title string) map[string]any {
	return map[string]any{
		"title":          title,
		"description":    "desc",
		"location":       "Kinglake",
		"address":        "1 Main St",
		"county":         "Kinglake",
		"country":        "Australia",
		"check_in_hour":  "15:00",
		"check_out_hour": "10:00",
		"currency":       "AUD",
		"price":          120.0,
		"property_type":  "cabin",
	}
}

func TestImportListing_UpsertsAndInvalidates(t *testing.T) {
	repo := &fakePropRepo{}
	cache := &fakeCache{store: map[string]any{"property:1": "stale"}}
	feed := &fakeFeed{listings: map[int64]map[string]any{5001: feedListing("Cabin")}}
	s := app.NewImportService(feed, repo, cache)

	if err := s.ImportListing(context.Background(), 5001); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(repo.props) != 1 || repo.props[0].FeedID == nil || *repo.props[0].FeedID != 5001 {
		t.Fatalf("unexpected stored properties: %+v", repo.props)
	}
	if _, ok := cache.store["property:1"]; ok {
		t.Fatal("stale cache entry not dropped")
	}

	// second import of the same feed id updates in place
	feed.listings[5001] = feedListing("Cabin Renamed")
	if err := s.ImportListing(context.Background(), 5001); err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if len(repo.props) != 1 || repo.props[0].Title != "Cabin Renamed" {
		t.Fatalf("re-import did not upsert: %+v", repo.props)
	}
}

func TestImportListing_MissesAreRecordedNotFatal(t *testing.T) {
	repo := &fakePropRepo{}
	feed := &fakeFeed{listings: map[int64]map[string]any{}}
	s := app.NewImportService(feed, repo, nil)

	if err := s.ImportListing(context.Background(), 404404); err != nil {
		t.Fatalf("missing listing should not fail the run: %v", err)
	}
	if repo.misses[404404] != "not found" {
		t.Fatalf("miss not recorded: %v", repo.misses)
	}
}

func TestImportListing_InvalidPayloadRecorded(t *testing.T) {
	repo := &fakePropRepo{}
	feed := &fakeFeed{listings: map[int64]map[string]any{7: {"title": "no other fields"}}}
	s := app.NewImportService(feed, repo, nil)

	if err := s.ImportListing(context.Background(), 7); err != nil {
		t.Fatalf("invalid payload should not fail the run: %v", err)
	}
	if repo.misses[7] != "invalid payload" {
		t.Fatalf("miss not recorded: %v", repo.misses)
	}
	if len(repo.props) != 0 {
		t.Fatal("invalid payload reached storage")
	}
}

func TestImportListing_UnexpectedErrorBubbles(t *testing.T) {
	repo := &fakePropRepo{}
	feed := &fakeFeed{err: errors.New("remote 500")}
	s := app.NewImportService(feed, repo, nil)

	if err := s.ImportListing(context.Background(), 1); err == nil {
		t.Fatal("expected transport error to bubble up")
	}
}
