package models

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// Actor участник запроса (из заголовков авторизации)
type Actor struct {
	ID   uuid.UUID
	Role domain.Role
}

// ListStaffRequest запрос на получение списка мастеров
type ListStaffRequest struct {
	Actor Actor
	Skill *string
}

// UpdateStaffRequest запрос на изменение флагов мастера.
// Available меняет сам мастер, Verified только админ.
type UpdateStaffRequest struct {
	Actor     Actor
	StaffID   uuid.UUID
	Available *bool `json:"available,omitempty"`
	Verified  *bool `json:"verified,omitempty"`
}

// StaffResponse ответ с данными мастера
type StaffResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Skills       []string  `json:"skills"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"reviewCount"`
	Available    bool      `json:"available"`
	Verified     bool      `json:"verified"`
	LocationBase string    `json:"locationBase,omitempty"`
}

// StaffListResponse ответ со списком мастеров
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(m *domain.StaffMember) *StaffResponse {
	if m == nil {
		return nil
	}
	skills := m.Skills
	if skills == nil {
		skills = []string{}
	}
	return &StaffResponse{
		ID:           m.ID,
		Name:         m.Name,
		Skills:       skills,
		Rating:       m.Rating,
		ReviewCount:  m.ReviewCount,
		Available:    m.Available,
		Verified:     m.Verified,
		LocationBase: m.LocationBase,
	}
}

// FromDomainStaffList конвертирует список domain моделей в DTO
func FromDomainStaffList(members []*domain.StaffMember) *StaffListResponse {
	resp := &StaffListResponse{Staff: make([]StaffResponse, 0, len(members))}
	for _, m := range members {
		if r := FromDomainStaff(m); r != nil {
			resp.Staff = append(resp.Staff, *r)
		}
	}
	return resp
}
