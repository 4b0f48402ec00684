package memory

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

type seedFile struct {
	Services []seedService `toml:"services"`
	Addons   []seedAddon   `toml:"addons"`
	Staff    []seedStaff   `toml:"staff"`
}

type seedService struct {
	ID            string      `toml:"id"`
	Title         string      `toml:"title"`
	Category      string      `toml:"category"`
	RequiredSkill string      `toml:"required_skill"`
	StaffRequired int         `toml:"staff_required"`
	Prices        []seedPrice `toml:"prices"`
}

type seedPrice struct {
	Duration int    `toml:"duration"`
	Price    string `toml:"price"`
}

type seedAddon struct {
	ID       string   `toml:"id"`
	Title    string   `toml:"title"`
	Price    string   `toml:"price"`
	ValidFor []string `toml:"valid_for"`
}

type seedStaff struct {
	ID           string   `toml:"id"`
	Name         string   `toml:"name"`
	Skills       []string `toml:"skills"`
	Rating       float64  `toml:"rating"`
	ReviewCount  int      `toml:"review_count"`
	Available    bool     `toml:"available"`
	Verified     bool     `toml:"verified"`
	LocationBase string   `toml:"location_base"`
}

// LoadSeed наполняет хранилище каталогом и мастерами из TOML файла
func (s *Store) LoadSeed(path string) error {
	var seed seedFile
	if _, err := toml.DecodeFile(path, &seed); err != nil {
		return fmt.Errorf("decode seed %s: %w", path, err)
	}

	for _, raw := range seed.Services {
		service, err := raw.toDomain()
		if err != nil {
			return err
		}
		s.AddService(service)
	}
	for _, raw := range seed.Addons {
		price, err := decimal.NewFromString(raw.Price)
		if err != nil {
			return fmt.Errorf("addon %s: invalid price %q: %w", raw.ID, raw.Price, err)
		}
		addon := &domain.Addon{ID: raw.ID, Title: raw.Title, Price: price}
		for _, c := range raw.ValidFor {
			addon.ValidFor = append(addon.ValidFor, domain.ServiceCategory(c))
		}
		s.AddAddon(addon)
	}
	for _, raw := range seed.Staff {
		id, err := uuid.Parse(raw.ID)
		if err != nil {
			return fmt.Errorf("staff %q: invalid id: %w", raw.Name, err)
		}
		s.AddStaff(&domain.StaffMember{
			ID:           id,
			Name:         raw.Name,
			Skills:       raw.Skills,
			Rating:       raw.Rating,
			ReviewCount:  raw.ReviewCount,
			Available:    raw.Available,
			Verified:     raw.Verified,
			LocationBase: raw.LocationBase,
		})
	}
	return nil
}

func (raw seedService) toDomain() (*domain.Service, error) {
	id, err := uuid.Parse(raw.ID)
	if err != nil {
		return nil, fmt.Errorf("service %q: invalid id: %w", raw.Title, err)
	}
	if len(raw.Prices) == 0 {
		return nil, fmt.Errorf("service %q: no prices", raw.Title)
	}

	service := &domain.Service{
		ID:            id,
		Title:         raw.Title,
		Category:      domain.ServiceCategory(raw.Category),
		RequiredSkill: raw.RequiredSkill,
		StaffRequired: raw.StaffRequired,
		Prices:        make(map[int]decimal.Decimal, len(raw.Prices)),
	}
	if service.StaffRequired == 0 {
		service.StaffRequired = 1
	}
	for _, p := range raw.Prices {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("service %q: invalid price %q: %w", raw.Title, p.Price, err)
		}
		service.Prices[p.Duration] = price
	}
	return service, nil
}
