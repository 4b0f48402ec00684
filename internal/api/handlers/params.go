package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// PathUUID извлекает UUID из параметра пути
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", name, err)
	}
	return id, nil
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}

// ParseTime разбирает время в формате HH:MM
func ParseTime(s string) (types.TimeString, error) {
	return types.NewTimeStringFromString(s)
}

// ParseDuration разбирает длительность в минутах
func ParseDuration(s string) (int, error) {
	minutes, err := strconv.Atoi(s)
	if err != nil || minutes <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return minutes, nil
}
