package handler

import (
	"encoding/base64"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"parkgate/internal/service"
)

const maxImageBytes = 5 << 20

// EventRecorder counts gate outcomes. A nil recorder is allowed.
type EventRecorder interface {
	GateEvent(action, outcome string)
}

func record(rec EventRecorder, action string, err error) {
	if rec == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	rec.GateEvent(action, outcome)
}

type residentPassResponse struct {
	Success      bool      `json:"success"`
	ResidentName string    `json:"resident_name"`
	ResidentID   int64     `json:"resident_id"`
	Floor        int       `json:"floor"`
	Room         string    `json:"room"`
	Plate        string    `json:"plate,omitempty"`
	EventTime    time.Time `json:"event_time"`
}

func passResponse(p *service.ResidentPass) residentPassResponse {
	return residentPassResponse{
		Success:      true,
		ResidentName: p.FullName,
		ResidentID:   p.ResidentID,
		Floor:        p.Floor,
		Room:         p.Room,
		Plate:        p.Plate,
		EventTime:    p.EventTime,
	}
}

type backupLoginRequest struct {
	BackupCode string `json:"backup_code"`
}

type residentEventRequest struct {
	ResidentID int64  `json:"resident_id"`
	Plate      string `json:"plate"`
}

type guestCheckinRequest struct {
	Plate string `json:"plate"`
	// Image is an optional base64 encoded entry snapshot.
	Image string `json:"image"`
}

type guestCheckinResponse struct {
	Success     bool      `json:"success"`
	TicketCode  string    `json:"ticket_code"`
	Plate       string    `json:"plate,omitempty"`
	CheckinTime time.Time `json:"checkin_time"`
}

type guestCheckoutRequest struct {
	TicketCode string `json:"ticket_code"`
	Image      string `json:"image"`
}

type guestCheckoutResponse struct {
	Success      bool      `json:"success"`
	TicketCode   string    `json:"ticket_code"`
	Plate        string    `json:"plate,omitempty"`
	CheckinTime  time.Time `json:"checkin_time"`
	CheckoutTime time.Time `json:"checkout_time"`
	Hours        int64     `json:"hours"`
	Amount       int64     `json:"amount"`
}

// parseJSON decodes an optional JSON body; an empty body leaves dst untouched.
func parseJSON(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(dst); err != nil {
		return badRequest("INVALID_BODY", "invalid JSON body")
	}
	return nil
}

// formImage reads the optional multipart "image" field.
func formImage(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	if fh.Size > maxImageBytes {
		return nil, tooLarge("image too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, badRequest("FILE_OPEN_ERROR", "cannot open uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	if err != nil {
		return nil, badRequest("FILE_OPEN_ERROR", "cannot read uploaded file")
	}
	return data, nil
}

func decodeImage(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, badRequest("VALIDATION_ERROR", "image must be base64 encoded")
	}
	if len(data) > maxImageBytes {
		return nil, tooLarge("image too large")
	}
	return data, nil
}

// ResidentFace identifies a resident at the gate.
//
// @Summary Resident face entry
// @Tags gate
// @Accept mpfd
// @Produce json
// @Param image formData file false "Camera frame"
// @Success 200 {object} residentPassResponse
// @Failure 401 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router /api/gate/resident/face [post]
func ResidentFace(svc service.GateService, rec EventRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		image, err := formImage(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		pass, err := svc.ResidentFace(c.UserContext(), image)
		record(rec, "resident_face", err)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(passResponse(pass))
	}
}

// BackupLogin admits a resident by backup code.
//
// @Summary Resident backup-code entry
// @Tags gate
// @Accept json
// @Produce json
// @Param body body backupLoginRequest true "Backup code"
// @Success 200 {object} residentPassResponse
// @Failure 401 {object} errorPayload
// @Failure 429 {object} errorPayload
// @Router /api/gate/resident/backup-login [post]
func BackupLogin(svc service.GateService, rec EventRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req backupLoginRequest
		if err := parseJSON(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		pass, err := svc.BackupLogin(c.UserContext(), req.BackupCode)
		record(rec, "backup_login", err)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(passResponse(pass))
	}
}

// ResidentEvent logs an identified resident passing the gate; out selects resident_out.
//
// @Summary Resident check-in / check-out log
// @Tags gate
// @Accept json
// @Produce json
// @Param body body residentEventRequest true "Resident and plate"
// @Success 200 {object} residentPassResponse
// @Failure 403 {object} errorPayload
// @Router /api/gate/resident/checkin [post]
// @Router /api/gate/resident/checkout [post]
func ResidentEvent(svc service.GateService, rec EventRecorder, out bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req residentEventRequest
		if err := parseJSON(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		action, call := "resident_checkin", svc.ResidentCheckin
		if out {
			action, call = "resident_checkout", svc.ResidentCheckout
		}
		pass, err := call(c.UserContext(), req.ResidentID, req.Plate)
		record(rec, action, err)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(passResponse(pass))
	}
}

// GuestCheckin issues a six digit ticket.
//
// @Summary Guest check-in
// @Tags gate
// @Accept json
// @Produce json
// @Param body body guestCheckinRequest false "Optional plate and snapshot"
// @Success 200 {object} guestCheckinResponse
// @Failure 400 {object} errorPayload
// @Router /api/gate/guest/checkin [post]
func GuestCheckin(svc service.GateService, rec EventRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req guestCheckinRequest
		if err := parseJSON(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		image, err := decodeImage(req.Image)
		if err != nil {
			return writeServiceError(c, err)
		}
		ticket, err := svc.GuestCheckin(c.UserContext(), req.Plate, image)
		record(rec, "guest_checkin", err)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(guestCheckinResponse{
			Success:     true,
			TicketCode:  ticket.TicketCode,
			Plate:       ticket.Plate,
			CheckinTime: ticket.CheckinTime,
		})
	}
}

// GuestCheckout closes a ticket and returns the fee.
//
// @Summary Guest check-out
// @Tags gate
// @Accept json
// @Produce json
// @Param body body guestCheckoutRequest true "Ticket code"
// @Success 200 {object} guestCheckoutResponse
// @Failure 404 {object} errorPayload
// @Failure 429 {object} errorPayload
// @Router /api/gate/guest/checkout [post]
func GuestCheckout(svc service.GateService, rec EventRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req guestCheckoutRequest
		if err := parseJSON(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		image, err := decodeImage(req.Image)
		if err != nil {
			return writeServiceError(c, err)
		}
		s, err := svc.GuestCheckout(c.UserContext(), req.TicketCode, utils.CopyString(c.IP()), image)
		record(rec, "guest_checkout", err)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(guestCheckoutResponse{
			Success:      true,
			TicketCode:   s.TicketCode,
			Plate:        s.Plate,
			CheckinTime:  s.CheckinTime,
			CheckoutTime: s.CheckoutTime,
			Hours:        s.Hours,
			Amount:       s.Amount,
		})
	}
}
