package model

import "time"

// Resident status values.
const (
	ResidentActive   = "active"
	ResidentInactive = "inactive"
)

// Resident is a registered vehicle owner allowed in through face or backup-code entry.
type Resident struct {
	ID         int64     `json:"id"`
	FullName   string    `json:"full_name"`
	Floor      int       `json:"floor"`
	Room       string    `json:"room"`
	NationalID string    `json:"national_id"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsActive reports whether the resident may pass the gate.
func (r *Resident) IsActive() bool {
	return r.Status == ResidentActive
}

// ResidentPatch carries the optional fields of a partial update.
type ResidentPatch struct {
	FullName   *string `json:"full_name"`
	Floor      *int    `json:"floor"`
	Room       *string `json:"room"`
	NationalID *string `json:"national_id"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Status     *string `json:"status"`
}

// Apply copies the set fields of p onto r.
func (p ResidentPatch) Apply(r *Resident) {
	if p.FullName != nil {
		r.FullName = *p.FullName
	}
	if p.Floor != nil {
		r.Floor = *p.Floor
	}
	if p.Room != nil {
		r.Room = *p.Room
	}
	if p.NationalID != nil {
		r.NationalID = *p.NationalID
	}
	if p.Email != nil {
		r.Email = *p.Email
	}
	if p.Phone != nil {
		r.Phone = *p.Phone
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
}

// BackupCode is a fallback credential for a resident when face recognition fails.
type BackupCode struct {
	ID         int64     `json:"id"`
	ResidentID int64     `json:"resident_id"`
	Code       string    `json:"backup_code"`
	Active     bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}
