package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// CalculateFee bills every started hour: 1h12m is two hours, exactly 2h is two hours.
// A checkout before check-in bills nothing.
func CalculateFee(checkin, checkout time.Time, perHour int64) (hours int64, fee int64) {
	d := checkout.Sub(checkin)
	if d <= 0 {
		return 0, 0
	}
	hours = int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	return hours, hours * perHour
}

var ticketSpace = big.NewInt(1_000_000)

// NewTicketCode returns six random digits, zero padded.
func NewTicketCode() (string, error) {
	n, err := rand.Int(rand.Reader, ticketSpace)
	if err != nil {
		return "", fmt.Errorf("ticket code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

const backupAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewBackupCode returns an 8 character code without easily confused glyphs.
func NewBackupCode() (string, error) {
	buf := make([]byte, 8)
	alphabetLen := big.NewInt(int64(len(backupAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("backup code: %w", err)
		}
		buf[i] = backupAlphabet[n.Int64()]
	}
	return string(buf), nil
}
