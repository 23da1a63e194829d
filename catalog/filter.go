package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sareecustoms/storefront-api/models"
)

// DefaultMaxPrice is the upper bound of the default price range.
var DefaultMaxPrice = decimal.NewFromInt(50000)

// Set is a set of attribute values. An empty Set applies no filter.
type Set map[string]struct{}

func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func (s Set) Add(v string) {
	s[v] = struct{}{}
}

// Values returns the members in sorted order.
func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// allows reports whether v passes this dimension.
func (s Set) allows(v string) bool {
	return len(s) == 0 || s.Has(v)
}

// PriceRange is inclusive at both ends. Max is ignored when Unbounded.
type PriceRange struct {
	Min       decimal.Decimal
	Max       decimal.Decimal
	Unbounded bool
}

func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && (r.Unbounded || price.LessThanOrEqual(r.Max))
}

type Criteria struct {
	Colors     Set
	Fabrics    Set
	Occasions  Set
	Styles     Set
	DressTypes Set
	PriceRange PriceRange
}

// DefaultCriteria selects everything priced within [0, DefaultMaxPrice].
func DefaultCriteria() Criteria {
	return Criteria{
		Colors:     Set{},
		Fabrics:    Set{},
		Occasions:  Set{},
		Styles:     Set{},
		DressTypes: Set{},
		PriceRange: PriceRange{Min: decimal.Zero, Max: DefaultMaxPrice},
	}
}

// Matches reports whether p passes every criteria dimension.
func (c Criteria) Matches(p models.Product) bool {
	return c.PriceRange.Contains(p.Price) &&
		c.Colors.allows(p.Color) &&
		c.Fabrics.allows(p.Fabric) &&
		c.Occasions.allows(p.Occasion) &&
		c.Styles.allows(p.StyleValue()) &&
		c.DressTypes.allows(p.DressTypeValue())
}

// MatchesQuery reports whether query is a case-insensitive substring of the
// product's name, fabric, color or occasion. A blank query matches all.
func MatchesQuery(p models.Product, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range [...]string{p.Name, p.Fabric, p.Color, p.Occasion} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Filter returns the products passing criteria and query, in input order.
func Filter(products []models.Product, criteria Criteria, query string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if criteria.Matches(p) && MatchesQuery(p, query) {
			out = append(out, p)
		}
	}
	return out
}
