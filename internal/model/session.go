package model

import "time"

// Guest session status values.
const (
	SessionOpen   = "open"
	SessionClosed = "closed"
)

// GuestSession is a pay-on-exit visit identified by a ticket code.
type GuestSession struct {
	ID            int64      `json:"id"`
	Plate         string     `json:"plate"`
	TicketCode    string     `json:"ticket_code"`
	CheckinTime   time.Time  `json:"checkin_time"`
	CheckoutTime  *time.Time `json:"checkout_time,omitempty"`
	Fee           *int64     `json:"fee,omitempty"`
	Status        string     `json:"status"`
	EntryImageKey string     `json:"entry_image_key,omitempty"`
	ExitImageKey  string     `json:"exit_image_key,omitempty"`
}

// Parking log event types.
const (
	EventResidentIn  = "resident_in"
	EventResidentOut = "resident_out"
)

// ParkingLog records a resident passing the gate.
type ParkingLog struct {
	ID         int64     `json:"id"`
	EventTime  time.Time `json:"event_time"`
	EventType  string    `json:"event_type"`
	UserType   string    `json:"user_type"`
	ResidentID int64     `json:"resident_id"`
	Plate      string    `json:"plate,omitempty"`
}
