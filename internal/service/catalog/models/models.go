package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// DurationOption вариант длительности услуги
type DurationOption struct {
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID            uuid.UUID        `json:"id"`
	Title         string           `json:"title"`
	Category      string           `json:"category"`
	RequiredSkill string           `json:"requiredSkill"`
	StaffRequired int              `json:"staffRequired"`
	Options       []DurationOption `json:"options"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// PolicyResponse сетка слотов и правила окна бронирования
type PolicyResponse struct {
	TimeSlots          []string `json:"timeSlots"`
	AdvanceBookingDays int      `json:"advanceBookingDays"` // 0 = без ограничений
	MinNoticeMinutes   int      `json:"minNoticeMinutes"`
	Timezone           string   `json:"timezone"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	resp := &ServiceResponse{
		ID:            s.ID,
		Title:         s.Title,
		Category:      string(s.Category),
		RequiredSkill: s.RequiredSkill,
		StaffRequired: s.StaffRequired,
		Options:       make([]DurationOption, 0, len(s.Prices)),
	}
	for _, d := range s.Durations() {
		price, _ := s.PriceFor(d)
		resp.Options = append(resp.Options, DurationOption{DurationMinutes: d, Price: price})
	}
	return resp
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		if r := FromDomainService(s); r != nil {
			resp.Services = append(resp.Services, *r)
		}
	}
	return resp
}

// FromDomainPolicy конвертирует правила бронирования в DTO
func FromDomainPolicy(p domain.BookingPolicy) *PolicyResponse {
	slots := p.TimeSlots()
	resp := &PolicyResponse{
		TimeSlots:          make([]string, 0, len(slots)),
		AdvanceBookingDays: p.AdvanceBookingDays,
		MinNoticeMinutes:   p.MinNoticeMinutes,
		Timezone:           "UTC",
	}
	for _, slot := range slots {
		resp.TimeSlots = append(resp.TimeSlots, slot.String())
	}
	if p.Location != nil {
		resp.Timezone = p.Location.String()
	}
	return resp
}
