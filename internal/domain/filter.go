package domain

// PropertyFilter is a composable refinement over the property collection.
// The zero value matches everything; each method narrows a copy, so filters
// chain like query scopes:
//
//	f := domain.PropertyFilter{}.Verified().WithinPriceRange(50, 150)
type PropertyFilter struct {
	VerifiedOnly  bool
	FavoritesOnly bool
	PropertyType  *string
	PriceMin      *float64
	PriceMax      *float64
	Limit         int
}

// Verified keeps only verified properties.
func (f PropertyFilter) Verified() PropertyFilter {
	f.VerifiedOnly = true
	return f
}

// FavoriteOnly keeps only properties flagged as favorites.
func (f PropertyFilter) FavoriteOnly() PropertyFilter {
	f.FavoritesOnly = true
	return f
}

// OfType keeps only properties of the given type.
func (f PropertyFilter) OfType(t string) PropertyFilter {
	f.PropertyType = &t
	return f
}

// WithinPriceRange keeps properties whose price is in [min, max], inclusive.
// The caller is responsible for min <= max; no reordering happens here.
func (f PropertyFilter) WithinPriceRange(min, max float64) PropertyFilter {
	f.PriceMin, f.PriceMax = &min, &max
	return f
}

// WithLimit caps the result set; n <= 0 means the store default.
func (f PropertyFilter) WithLimit(n int) PropertyFilter {
	f.Limit = n
	return f
}
