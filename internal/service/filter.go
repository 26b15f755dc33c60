package service

import "gorm.io/gorm"

// PropertyFilters holds the optional listing filters parsed at the HTTP
// boundary. An empty/nil field leaves that dimension unconstrained.
// Malformed numeric input never reaches this type; the boundary rejects it.
type PropertyFilters struct {
	District     string
	PropertyType string
	Category     string
	MinPrice     *int
	MaxPrice     *int
	Bedrooms     *int
}

// Apply translates the supplied filters into WHERE clauses so that a record
// matches iff every supplied field constrains it. Price bounds are inclusive
// and independent of each other.
func (f PropertyFilters) Apply(query *gorm.DB) *gorm.DB {
	if f.District != "" {
		query = query.Where("district = ?", f.District)
	}
	if f.PropertyType != "" {
		query = query.Where("property_type = ?", f.PropertyType)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.Bedrooms != nil {
		query = query.Where("bedrooms = ?", *f.Bedrooms)
	}
	return query
}
