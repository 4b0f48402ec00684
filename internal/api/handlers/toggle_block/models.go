package toggle_block

import (
	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	toggleBlock "github.com/m04kA/SMC-SpaBooking/internal/usecase/toggle_block"
)

// ToggleBlockRequest HTTP request model
type ToggleBlockRequest struct {
	Date    string `json:"date"` // "2025-10-15"
	Time    string `json:"time"` // "14:00"
	Blocked bool   `json:"blocked"`
}

// BlockResponse HTTP response model
type BlockResponse struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Slot    string `json:"slot"` // "2025-10-15T14:00"
	Blocked bool   `json:"blocked"`
	Changed bool   `json:"changed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *toggleBlock.Response) *BlockResponse {
	return &BlockResponse{
		Date:    resp.Slot.Date.Format(domain.DateFormat),
		Time:    resp.Slot.StartTime.String(),
		Slot:    resp.Slot.Key(),
		Blocked: resp.Blocked,
		Changed: resp.Changed,
	}
}
