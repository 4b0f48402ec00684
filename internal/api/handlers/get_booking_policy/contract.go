package get_booking_policy

import "github.com/m04kA/SMC-SpaBooking/internal/service/catalog/models"

type PolicyProvider interface {
	Policy() *models.PolicyResponse
}
