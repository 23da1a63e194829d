package catalog

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sareecustoms/storefront-api/models"
)

// Query-string keys understood by ParseCriteria and Encode.
const (
	ParamColor     = "color"
	ParamFabric    = "fabric"
	ParamOccasion  = "occasion"
	ParamStyle     = "style"
	ParamDressType = "dressType"
	ParamMinPrice  = "minPrice"
	ParamMaxPrice  = "maxPrice"
	ParamQuery     = "q"
)

// ParseCriteria reads filter criteria and the free-text query from URL
// values. Set parameters may repeat or hold comma separated values. Without
// maxPrice the range has no upper bound.
func ParseCriteria(values url.Values) (Criteria, string, error) {
	c := DefaultCriteria()
	c.PriceRange.Unbounded = true
	collect(c.Colors, values[ParamColor])
	collect(c.Fabrics, values[ParamFabric])
	collect(c.Occasions, values[ParamOccasion])
	collect(c.Styles, values[ParamStyle])
	collect(c.DressTypes, values[ParamDressType])

	if raw := strings.TrimSpace(values.Get(ParamMinPrice)); raw != "" {
		lo, err := decimal.NewFromString(raw)
		if err != nil {
			return c, "", &models.ValidationError{Field: ParamMinPrice, Message: "invalid price"}
		}
		c.PriceRange.Min = lo
	}
	if raw := strings.TrimSpace(values.Get(ParamMaxPrice)); raw != "" {
		hi, err := decimal.NewFromString(raw)
		if err != nil {
			return c, "", &models.ValidationError{Field: ParamMaxPrice, Message: "invalid price"}
		}
		c.PriceRange.Max = hi
		c.PriceRange.Unbounded = false
	}
	if !c.PriceRange.Unbounded && c.PriceRange.Min.GreaterThan(c.PriceRange.Max) {
		return c, "", &models.ValidationError{Field: ParamMinPrice, Message: "minPrice exceeds maxPrice"}
	}

	return c, values.Get(ParamQuery), nil
}

func collect(s Set, raw []string) {
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				s.Add(part)
			}
		}
	}
}

// Encode is the inverse of ParseCriteria. A bounded range always carries
// maxPrice.
func Encode(c Criteria, query string) url.Values {
	values := url.Values{}
	add := func(key string, s Set) {
		for _, v := range s.Values() {
			values.Add(key, v)
		}
	}
	add(ParamColor, c.Colors)
	add(ParamFabric, c.Fabrics)
	add(ParamOccasion, c.Occasions)
	add(ParamStyle, c.Styles)
	add(ParamDressType, c.DressTypes)

	if !c.PriceRange.Min.IsZero() {
		values.Set(ParamMinPrice, c.PriceRange.Min.String())
	}
	if !c.PriceRange.Unbounded {
		values.Set(ParamMaxPrice, c.PriceRange.Max.String())
	}
	if q := strings.TrimSpace(query); q != "" {
		values.Set(ParamQuery, q)
	}
	return values
}
