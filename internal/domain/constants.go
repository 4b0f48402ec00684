package domain

// Default booking policy values
const (
	DefaultFirstSlotHour      = 10
	DefaultLastSlotHour       = 20
	DefaultAdvanceBookingDays = 0  // 0 = unlimited
	DefaultMinNoticeMinutes   = 60 // 1 hour
	DefaultStaffRequired      = 1
)

// Business validation constants
const (
	MaxNotesLength    = 500
	MaxLocationLength = 300
	MaxAddons         = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
