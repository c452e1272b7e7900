package httpserver

import (
	"time"

	"github.com/flapabay/flapabay-engine/internal/domain"
)

type reviewView struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Rating    *float64   `json:"rating"`
	Title     *string    `json:"title"`
	Text      *string    `json:"text"`
	CreatedAt *time.Time `json:"created_at"`
}

func toReviewViews(rs []domain.Review) []reviewView {
	out := make([]reviewView, 0, len(rs))
	for _, r := range rs {
		out = append(out, reviewView{
			ID:        r.ID,
			UserID:    r.UserID,
			Rating:    r.Rating,
			Title:     r.Title,
			Text:      r.Text,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

// propertyView is the wire shape for a property: every stored attribute plus
// the derived read-only fields.
type propertyView struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	Address          string `json:"address"`
	County           string `json:"county"`
	Country          string `json:"country"`
	NeighborhoodArea string `json:"neighborhood_area"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	CheckInHour  string `json:"check_in_hour"`
	CheckOutHour string `json:"check_out_hour"`

	NumOfGuests      int  `json:"num_of_guests"`
	NumOfChildren    int  `json:"num_of_children"`
	MaximumGuests    int  `json:"maximum_guests"`
	AllowExtraGuests bool `json:"allow_extra_guests"`

	Currency             string             `json:"currency"`
	PriceRange           *domain.PriceRange `json:"price_range"`
	Price                float64            `json:"price"`
	PricePerNight        float64            `json:"price_per_night"`
	AdditionalGuestPrice float64            `json:"additional_guest_price"`
	ChildrenPrice        float64            `json:"children_price"`

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

	// Derived, read-only.
	FormattedPriceRange *string `json:"formatted_price_range"`
	FullAddress         string  `json:"full_address"`
	FirstImageURL       *string `json:"first_image_url"`
	GoogleMapsURL       *string `json:"google_maps_url"`
}

func toPropertyView(p domain.Property) propertyView {
	return propertyView{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		Location:         p.Location,
		Address:          p.Address,
		County:           p.County,
		Country:          p.Country,
		NeighborhoodArea: p.NeighborhoodArea,

		Latitude:  p.Lat,
		Longitude: p.Lon,

		CheckInHour:  p.CheckInHour,
		CheckOutHour: p.CheckOutHour,

		NumOfGuests:      p.NumOfGuests,
		NumOfChildren:    p.NumOfChildren,
		MaximumGuests:    p.MaximumGuests,
		AllowExtraGuests: p.AllowExtraGuests,

		Currency:             p.Currency,
		PriceRange:           p.PriceRange,
		Price:                p.Price,
		PricePerNight:        p.PricePerNight,
		AdditionalGuestPrice: p.AdditionalGuestPrice,
		ChildrenPrice:        p.ChildrenPrice,

		Amenities:  p.Amenities,
		HouseRules: p.HouseRules,
		Images:     p.Images,
		VideoLink:  p.VideoLink,

		Verified:                        p.Verified,
		Favorite:                        p.Favorite,
		AllowInstantBooking:             p.AllowInstantBooking,
		ShowContactFormInsteadOfBooking: p.ShowContactFormInsteadOfBooking,

		PropertyType: p.PropertyType,
		Page:         p.Page,
		Rating:       p.Rating,

		FormattedPriceRange: p.FormattedPriceRange(),
		FullAddress:         p.FullAddress(),
		FirstImageURL:       p.FirstImageURL(),
		GoogleMapsURL:       p.GoogleMapsURL(),
	}
}

func toPropertyViews(ps []domain.Property) []propertyView {
	out := make([]propertyView, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPropertyView(p))
	}
	return out
}
