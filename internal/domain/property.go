package domain

import "strconv"

// PriceRange is the advertised nightly price band for a listing. When a row
// carries no band at all the Property field is nil, which is distinct from a
// zero band.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Property struct {
	ID     int64
	FeedID *int64 // external feed listing id; nil for properties created via the API

	Title            string
	Description      string
	Location         string
	Address          string
	County           string
	Country          string
	NeighborhoodArea string

	Lat, Lon *float64

	CheckInHour  string // "15:00"
	CheckOutHour string

	NumOfGuests      int
	NumOfChildren    int
	MaximumGuests    int
	AllowExtraGuests bool

	Currency             string
	PriceRange           *PriceRange
	Price                float64
	PricePerNight        float64
	AdditionalGuestPrice float64
	ChildrenPrice        float64

	Amenities  []string
	HouseRules string
	Images     []string // ordered; index 0 is the primary image
	VideoLink  *string

	Verified                        bool
	Favorite                        bool
	AllowInstantBooking             bool
	ShowContactFormInsteadOfBooking bool

	PropertyType string
	Page         string
	Rating       float64
}

// fmtNum renders numbers the way the legacy API did: plain decimal notation,
// no trailing zeros (100 -> "100", 99.5 -> "99.5").
func fmtNum(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// FormattedPriceRange renders the stored band verbatim as
// "Min: {min} - Max: {max}", or nil when the property has no band.
func (p Property) FormattedPriceRange() *string {
	if p.PriceRange == nil {
		return nil
	}
	s := "Min: " + fmtNum(p.PriceRange.Min) + " - Max: " + fmtNum(p.PriceRange.Max)
	return &s
}

// FullAddress joins address, county and country with ", " even when a
// component is empty. Legacy consumers depend on the exact join, so empty
// components are not cleaned up here.
func (p Property) FullAddress() string {
	return p.Address + ", " + p.County + ", " + p.Country
}

func (p Property) AllowsInstantBooking() bool { return p.AllowInstantBooking }

func (p Property) IsFavorite() bool { return p.Favorite }

// FirstImageURL returns the primary image, or nil when the property has no
// images.
func (p Property) FirstImageURL() *string {
	if len(p.Images) == 0 {
		return nil
	}
	return &p.Images[0]
}

// GoogleMapsURL builds a maps link from the stored coordinates, or nil when
// either coordinate was never set.
func (p Property) GoogleMapsURL() *string {
	if p.Lat == nil || p.Lon == nil {
		return nil
	}
	s := "https://www.google.com/maps?q=" + fmtNum(*p.Lat) + "," + fmtNum(*p.Lon)
	return &s
}
