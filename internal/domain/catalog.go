package domain

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceCategory groups services and restricts add-ons.
type ServiceCategory string

const (
	CategoryMassage  ServiceCategory = "Massage"
	CategoryNails    ServiceCategory = "Nails"
	CategoryPackages ServiceCategory = "Packages"
)

// Service is immutable reference data: what can be booked and for how much.
type Service struct {
	ID            uuid.UUID
	Title         string
	Category      ServiceCategory
	RequiredSkill string
	StaffRequired int
	Prices        map[int]decimal.Decimal // duration in minutes -> base price
}

// Durations returns the declared duration options in ascending order.
func (s *Service) Durations() []int {
	out := make([]int, 0, len(s.Prices))
	for d := range s.Prices {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// PriceFor returns the base price for a duration, if the duration is offered.
func (s *Service) PriceFor(durationMinutes int) (decimal.Decimal, bool) {
	price, ok := s.Prices[durationMinutes]
	return price, ok
}

// IsTeamService reports whether more than one staff member is needed.
func (s *Service) IsTeamService() bool {
	return s.StaffRequired > 1
}

// Addon is an optional extra priced on top of the service.
type Addon struct {
	ID       string
	Title    string
	Price    decimal.Decimal
	ValidFor []ServiceCategory // empty = valid for all categories
}

// ValidForCategory reports whether the add-on may be attached to the category.
func (a *Addon) ValidForCategory(category ServiceCategory) bool {
	if len(a.ValidFor) == 0 {
		return true
	}
	for _, c := range a.ValidFor {
		if c == category {
			return true
		}
	}
	return false
}
