package app

import (
	"strconv"
	"strings"

	"github.com/flapabay/flapabay-engine/internal/domain"
)

// Feed partners disagree on key names, so every writable attribute has an
// alias list tried in order. First non-empty wins.
var listingAliases = map[string][]string{
	"title":             {"title", "name", "listing_title", "headline"},
	"description":       {"description", "summary", "about", "listing_description"},
	"location":          {"location", "location.name", "area", "city"},
	"address":           {"address", "address.line", "street_address", "location.address"},
	"county":            {"county", "address.county", "region", "state"},
	"country":           {"country", "address.country", "location.country"},
	"neighborhood_area": {"neighborhood_area", "neighborhood", "district"},
	"check_in_hour":     {"check_in_hour", "check_in", "checkin.time"},
	"check_out_hour":    {"check_out_hour", "check_out", "checkout.time"},
	"currency":          {"currency", "currency_code", "price.currency"},
	"house_rules":       {"house_rules", "rules", "policies"},
	"video_link":        {"video_link", "video_url", "video"},
	"property_type":     {"property_type", "type", "category"},
	"page":              {"page", "slug", "page_name"},
}

// mapListing flattens a raw feed payload into the permitted input set.
// Validation happens later, at the same boundary the API uses.
func mapListing(m map[string]any) domain.NewPropertyInput {
	in := domain.NewPropertyInput{
		Title:            aliasStr(m, "title"),
		Description:      aliasStr(m, "description"),
		Location:         aliasStr(m, "location"),
		Address:          aliasStr(m, "address"),
		County:           aliasStr(m, "county"),
		Country:          aliasStr(m, "country"),
		NeighborhoodArea: aliasStr(m, "neighborhood_area"),
		CheckInHour:      aliasStr(m, "check_in_hour"),
		CheckOutHour:     aliasStr(m, "check_out_hour"),
		Currency:         aliasStr(m, "currency"),
		HouseRules:       aliasStr(m, "house_rules"),
		PropertyType:     aliasStr(m, "property_type"),
		Page:             aliasStr(m, "page"),

		Lat: getFloatFlexible(m, "latitude", "lat", "location.latitude", "coords.lat"),
		Lon: getFloatFlexible(m, "longitude", "lon", "lng", "location.longitude", "coords.lon"),

		NumOfGuests:      getIntFlexible(m, "num_of_guests", "guests", "capacity.guests"),
		NumOfChildren:    getIntFlexible(m, "num_of_children", "children", "capacity.children"),
		MaximumGuests:    getIntFlexible(m, "maximum_guests", "max_guests", "capacity.maximum"),
		AllowExtraGuests: getBoolFlexible(m, "allow_extra_guests", "extra_guests"),

		Price:                derefF(getFloatFlexible(m, "price", "price.amount", "nightly_price")),
		PricePerNight:        derefF(getFloatFlexible(m, "price_per_night", "price.per_night", "nightly_price")),
		AdditionalGuestPrice: derefF(getFloatFlexible(m, "additional_guest_price", "extra_guest_price")),
		ChildrenPrice:        derefF(getFloatFlexible(m, "children_price", "child_price")),
		Rating:               derefF(getFloatFlexible(m, "rating", "score", "rating.value")),

		Amenities: getStringsFlexible(m, "amenities", "features"),
		Images:    getStringsFlexible(m, "images", "photos", "image_urls"),

		Verified:                        getBoolFlexible(m, "verified", "is_verified"),
		Favorite:                        getBoolFlexible(m, "favorite", "is_favorite"),
		AllowInstantBooking:             getBoolFlexible(m, "allow_instant_booking", "instant_booking"),
		ShowContactFormInsteadOfBooking: getBoolFlexible(m, "show_contact_form_instead_of_booking", "contact_form_only"),
	}

	if v := aliasStr(m, "video_link"); v != "" {
		in.VideoLink = &v
	}
	if pr := getPriceRange(m); pr != nil {
		in.PriceRange = pr
	}
	return in
}

func getPriceRange(m map[string]any) *domain.PriceRange {
	min := getFloatFlexible(m, "price_range.min", "price_range.from", "min_price")
	max := getFloatFlexible(m, "price_range.max", "price_range.to", "max_price")
	if min == nil || max == nil {
		return nil
	}
	return &domain.PriceRange{Min: *min, Max: *max}
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// aliasStr: first non-empty string for a named alias set.
func aliasStr(m map[string]any, key string) string {
	for _, p := range listingAliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func getIntFlexible(m map[string]any, paths ...string) int {
	if f := getFloatFlexible(m, paths...); f != nil {
		return int(*f)
	}
	return 0
}

// getBoolFlexible accepts bool, 1/0 numerics and "true"/"1"/"yes" strings.
func getBoolFlexible(m map[string]any, paths ...string) bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			return v
		case float64:
			return v != 0
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "1", "true", "yes":
				return true
			case "0", "false", "no":
				return false
			}
		}
	}
	return false
}

// getStringsFlexible accepts a JSON array of strings or a comma-separated
// string (legacy feeds ship amenities both ways).
func getStringsFlexible(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case []any:
			var out []string
			for _, e := range v {
				if s, ok := e.(string); ok && s != "" {
					out = append(out, s)
				}
			}
			if len(out) > 0 {
				return out
			}
		case []string:
			if len(v) > 0 {
				return v
			}
		case string:
			var out []string
			for _, part := range strings.Split(v, ",") {
				if t := strings.TrimSpace(part); t != "" {
					out = append(out, t)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

func derefF(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
