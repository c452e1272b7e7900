package domain

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("not found")

// InvalidInputError lists the create fields that failed boundary validation.
type InvalidInputError struct {
	Fields []string
}

func (e *InvalidInputError) Error() string {
	return "invalid property input: " + strings.Join(e.Fields, ", ")
}

// NewPropertyInput is the explicit set of writable property attributes. It
// replaces the legacy mass-assignment allow-list: a field that is not here
// cannot be written through Create, and unknown keys are rejected at the
// HTTP boundary.
type NewPropertyInput struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	Address          string `json:"address"`
	County           string `json:"county"`
	Country          string `json:"country"`
	NeighborhoodArea string `json:"neighborhood_area"`

	Lat *float64 `json:"latitude"`
	Lon *float64 `json:"longitude"`

	CheckInHour  string `json:"check_in_hour"`
	CheckOutHour string `json:"check_out_hour"`

	NumOfGuests      int  `json:"num_of_guests"`
	NumOfChildren    int  `json:"num_of_children"`
	MaximumGuests    int  `json:"maximum_guests"`
	AllowExtraGuests bool `json:"allow_extra_guests"`

	Currency             string      `json:"currency"`
	PriceRange           *PriceRange `json:"price_range"`
	Price                float64     `json:"price"`
	PricePerNight        float64     `json:"price_per_night"`
	AdditionalGuestPrice float64     `json:"additional_guest_price"`
	ChildrenPrice        float64     `json:"children_price"`

	Amenities  []string `json:"amenities"`
	HouseRules string   `json:"house_rules"`
	Images     []string `json:"images"`
	VideoLink  *string  `json:"video_link"`

	Verified                        bool `json:"verified"`
	Favorite                        bool `json:"favorite"`
	AllowInstantBooking             bool `json:"allow_instant_booking"`
	ShowContactFormInsteadOfBooking bool `json:"show_contact_form_instead_of_booking"`

	PropertyType string  `json:"property_type"`
	Page         string  `json:"page"`
	Rating       float64 `json:"rating"`
}

// Validate enforces required presence, non-negative numerics and price-range
// ordering before anything touches storage.
func (in NewPropertyInput) Validate() error {
	var bad []string

	required := []struct{ name, v string }{
		{"title", in.Title},
		{"description", in.Description},
		{"location", in.Location},
		{"address", in.Address},
		{"county", in.County},
		{"country", in.Country},
		{"currency", in.Currency},
		{"property_type", in.PropertyType},
		{"check_in_hour", in.CheckInHour},
		{"check_out_hour", in.CheckOutHour},
	}
	for _, r := range required {
		if strings.TrimSpace(r.v) == "" {
			bad = append(bad, r.name)
		}
	}

	if in.NumOfGuests < 0 {
		bad = append(bad, "num_of_guests")
	}
	if in.NumOfChildren < 0 {
		bad = append(bad, "num_of_children")
	}
	if in.MaximumGuests < 0 {
		bad = append(bad, "maximum_guests")
	}
	for _, n := range []struct {
		name string
		v    float64
	}{
		{"price", in.Price},
		{"price_per_night", in.PricePerNight},
		{"additional_guest_price", in.AdditionalGuestPrice},
		{"children_price", in.ChildrenPrice},
		{"rating", in.Rating},
	} {
		if n.v < 0 {
			bad = append(bad, n.name)
		}
	}
	if in.PriceRange != nil && in.PriceRange.Min > in.PriceRange.Max {
		bad = append(bad, "price_range")
	}

	if len(bad) > 0 {
		return &InvalidInputError{Fields: bad}
	}
	return nil
}

type PropertyRepository interface {
	// Write paths
	InsertProperty(ctx context.Context, in NewPropertyInput) (int64, error)
	UpsertFeedProperty(ctx context.Context, feedID int64, in NewPropertyInput) (int64, error)
	LogMiss(ctx context.Context, feedID int64, status int, reason string) error

	// Read paths
	GetProperty(ctx context.Context, id int64) (Property, error)
	ListProperties(ctx context.Context, f PropertyFilter) ([]Property, error)
}

type ReviewRepository interface {
	// ListReviewsByUser returns the user's reviews in storage order.
	ListReviewsByUser(ctx context.Context, userID int64) ([]Review, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type FeedClient interface {
	ListListingIDs(ctx context.Context) ([]int64, error)
	GetListing(ctx context.Context, id int64) (map[string]any, error)
}
