package model

// DailyReport summarises gate traffic for one calendar day.
type DailyReport struct {
	Date          string       `json:"date"`
	ResidentCount int          `json:"resident_count"`
	GuestCount    int          `json:"guest_count"`
	Revenue       int64        `json:"revenue"`
	Sessions      []SessionRow `json:"sessions,omitempty"`
}

// SessionRow is one guest session as listed in the detailed report.
type SessionRow struct {
	PlateNumber  string `json:"plate_number"`
	TicketCode   string `json:"ticket_code"`
	CheckinTime  string `json:"checkin_time"`
	CheckoutTime string `json:"checkout_time"`
	Amount       int64  `json:"amount"`
}
