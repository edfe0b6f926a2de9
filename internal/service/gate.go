package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"parkgate/internal/model"
	"parkgate/internal/repository"
	"parkgate/internal/storage"
)

const (
	maxPlateLen       = 20
	maxTicketAttempts = 5
	// wrongTicketAlertAt is the miss count from one source that starts alerting operators.
	wrongTicketAlertAt = 3
)

// FaceRecognizer identifies a resident from a camera frame. A recognizer that owns
// its own camera may ignore image, which is nil when the kiosk posts no body.
type FaceRecognizer interface {
	Identify(ctx context.Context, image []byte) (residentID int64, err error)
}

// ResidentPass is the outcome of a resident passing the gate.
type ResidentPass struct {
	ResidentID int64
	FullName   string
	Floor      int
	Room       string
	Plate      string
	EventTime  time.Time
}

// Ticket is handed to a guest at check-in.
type Ticket struct {
	TicketCode  string
	Plate       string
	CheckinTime time.Time
}

// Settlement is the bill of a guest session closed at check-out.
type Settlement struct {
	TicketCode   string
	Plate        string
	CheckinTime  time.Time
	CheckoutTime time.Time
	Hours        int64
	Amount       int64
}

// OpenSession is a guest still inside, with the fee owed if they left now.
type OpenSession struct {
	TicketCode  string
	Plate       string
	CheckinTime time.Time
	Hours       int64
	FeeDue      int64
}

// GateService defines the gate use cases.
type GateService interface {
	// ResidentFace identifies a resident by face and logs the entry.
	ResidentFace(ctx context.Context, image []byte) (*ResidentPass, error)

	// BackupLogin admits a resident by an active backup code.
	BackupLogin(ctx context.Context, code string) (*ResidentPass, error)

	// ResidentCheckin and ResidentCheckout log an already identified resident.
	ResidentCheckin(ctx context.Context, residentID int64, plate string) (*ResidentPass, error)
	ResidentCheckout(ctx context.Context, residentID int64, plate string) (*ResidentPass, error)

	// GuestCheckin opens a guest session under a fresh six digit ticket code.
	GuestCheckin(ctx context.Context, plate string, image []byte) (*Ticket, error)

	// GuestCheckout closes the open session of ticketCode and bills it. source
	// identifies the client; its wrong codes are counted and alerted on.
	GuestCheckout(ctx context.Context, ticketCode, source string, image []byte) (*Settlement, error)

	// OpenSessions lists guests still inside, oldest first.
	OpenSessions(ctx context.Context) ([]OpenSession, error)
}

// GateOptions tunes a GateService. Zero values select the defaults.
type GateOptions struct {
	FeePerHour int64
	Recognizer FaceRecognizer
	Now        func() time.Time
	TicketCode func() (string, error)
	// Attempts and Alerts enable wrong ticket tracking; either may be nil.
	Attempts repository.TicketAttemptRepository
	Alerts   Notifier
	Log      *zerolog.Logger
}

type gateService struct {
	sessions   repository.GuestSessionRepository
	residents  repository.ResidentRepository
	logs       repository.ParkingLogRepository
	store      storage.Storage
	feePerHour int64
	recognizer FaceRecognizer
	now        func() time.Time
	ticketCode func() (string, error)
	attempts   repository.TicketAttemptRepository
	alerts     Notifier
	log        zerolog.Logger
}

// NewGateService constructs a GateService. store may be nil, in which case snapshots are dropped.
func NewGateService(
	sessions repository.GuestSessionRepository,
	residents repository.ResidentRepository,
	logs repository.ParkingLogRepository,
	store storage.Storage,
	opts GateOptions,
) GateService {
	s := &gateService{
		sessions:   sessions,
		residents:  residents,
		logs:       logs,
		store:      store,
		feePerHour: opts.FeePerHour,
		recognizer: opts.Recognizer,
		now:        opts.Now,
		ticketCode: opts.TicketCode,
		attempts:   opts.Attempts,
		alerts:     opts.Alerts,
		log:        zerolog.Nop(),
	}
	if opts.Log != nil {
		s.log = *opts.Log
	}
	if s.feePerHour <= 0 {
		s.feePerHour = 5000
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.ticketCode == nil {
		s.ticketCode = NewTicketCode
	}
	return s
}

func (s *gateService) ResidentFace(ctx context.Context, image []byte) (*ResidentPass, error) {
	if s.recognizer == nil {
		return nil, ErrRecognizerUnavailable
	}
	id, err := s.recognizer.Identify(ctx, image)
	if err != nil {
		if errors.Is(err, ErrFaceNotRecognized) {
			return nil, ErrFaceNotRecognized
		}
		return nil, fmt.Errorf("identify face: %w", err)
	}
	return s.logResident(ctx, id, "", model.EventResidentIn)
}

func (s *gateService) BackupLogin(ctx context.Context, code string) (*ResidentPass, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: backup_code is required", ErrValidation)
	}
	r, err := s.residents.FindByBackupCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidBackupCode
		}
		return nil, fmt.Errorf("find backup code: %w", err)
	}
	return s.record(ctx, r, "", model.EventResidentIn)
}

func (s *gateService) ResidentCheckin(ctx context.Context, residentID int64, plate string) (*ResidentPass, error) {
	return s.logResident(ctx, residentID, plate, model.EventResidentIn)
}

func (s *gateService) ResidentCheckout(ctx context.Context, residentID int64, plate string) (*ResidentPass, error) {
	return s.logResident(ctx, residentID, plate, model.EventResidentOut)
}

func (s *gateService) logResident(ctx context.Context, residentID int64, plate, event string) (*ResidentPass, error) {
	if residentID <= 0 {
		return nil, fmt.Errorf("%w: resident_id is required", ErrValidation)
	}
	plate, err := normalizePlate(plate)
	if err != nil {
		return nil, err
	}
	r, err := s.residents.FindByID(ctx, residentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResidentInactive
		}
		return nil, fmt.Errorf("find resident: %w", err)
	}
	if !r.IsActive() {
		return nil, ErrResidentInactive
	}
	return s.record(ctx, r, plate, event)
}

func (s *gateService) record(ctx context.Context, r *model.Resident, plate, event string) (*ResidentPass, error) {
	now := s.now()
	if err := s.logs.Create(ctx, &model.ParkingLog{
		EventTime:  now,
		EventType:  event,
		UserType:   "resident",
		ResidentID: r.ID,
		Plate:      plate,
	}); err != nil {
		return nil, fmt.Errorf("log %s: %w", event, err)
	}
	return &ResidentPass{
		ResidentID: r.ID,
		FullName:   r.FullName,
		Floor:      r.Floor,
		Room:       r.Room,
		Plate:      plate,
		EventTime:  now,
	}, nil
}

func (s *gateService) GuestCheckin(ctx context.Context, plate string, image []byte) (*Ticket, error) {
	plate, err := normalizePlate(plate)
	if err != nil {
		return nil, err
	}
	key, err := s.putSnapshot(ctx, "entry", image)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for attempt := 0; attempt < maxTicketAttempts; attempt++ {
		code, err := s.ticketCode()
		if err != nil {
			s.dropSnapshot(ctx, key)
			return nil, err
		}
		sess, err := s.sessions.Create(ctx, &model.GuestSession{
			Plate:         plate,
			TicketCode:    code,
			CheckinTime:   now,
			Status:        model.SessionOpen,
			EntryImageKey: key,
		})
		if errors.Is(err, repository.ErrConflict) {
			continue
		}
		if err != nil {
			s.dropSnapshot(ctx, key)
			return nil, fmt.Errorf("open session: %w", err)
		}
		return &Ticket{TicketCode: sess.TicketCode, Plate: sess.Plate, CheckinTime: sess.CheckinTime}, nil
	}

	s.dropSnapshot(ctx, key)
	return nil, ErrTicketExhausted
}

func (s *gateService) GuestCheckout(ctx context.Context, ticketCode, source string, image []byte) (*Settlement, error) {
	ticketCode = strings.TrimSpace(ticketCode)
	if ticketCode == "" {
		return nil, fmt.Errorf("%w: ticket_code is required", ErrValidation)
	}
	sess, err := s.sessions.FindOpenByTicket(ctx, ticketCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.recordMiss(ctx, source, ticketCode)
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	key, err := s.putSnapshot(ctx, "exit", image)
	if err != nil {
		return nil, err
	}

	now := s.now()
	hours, fee := CalculateFee(sess.CheckinTime, now, s.feePerHour)
	if err := s.sessions.Close(ctx, sess.ID, now, fee, key); err != nil {
		s.dropSnapshot(ctx, key)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("close session: %w", err)
	}
	s.clearMisses(ctx, source)

	return &Settlement{
		TicketCode:   sess.TicketCode,
		Plate:        sess.Plate,
		CheckinTime:  sess.CheckinTime,
		CheckoutTime: now,
		Hours:        hours,
		Amount:       fee,
	}, nil
}

func (s *gateService) OpenSessions(ctx context.Context) ([]OpenSession, error) {
	sessions, err := s.sessions.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open sessions: %w", err)
	}
	now := s.now()
	out := make([]OpenSession, 0, len(sessions))
	for _, gs := range sessions {
		hours, fee := CalculateFee(gs.CheckinTime, now, s.feePerHour)
		out = append(out, OpenSession{
			TicketCode:  gs.TicketCode,
			Plate:       gs.Plate,
			CheckinTime: gs.CheckinTime,
			Hours:       hours,
			FeeDue:      fee,
		})
	}
	return out, nil
}

// recordMiss counts a wrong code from source and alerts operators once the
// count reaches wrongTicketAlertAt. Tracking failures never fail the checkout.
func (s *gateService) recordMiss(ctx context.Context, source, ticketCode string) {
	if s.attempts == nil || source == "" {
		return
	}
	now := s.now()
	n, err := s.attempts.RecordMiss(ctx, source, ticketCode, now)
	if err != nil {
		s.log.Warn().Err(err).Str("event", "ticket_miss_not_recorded").Str("source", source).Send()
		return
	}
	if n < wrongTicketAlertAt || s.alerts == nil {
		return
	}
	msg := fmt.Sprintf("Source: %s | Last code: %s | Misses: %d | Time: %s",
		source, ticketCode, n, now.Format("02/01/2006 15:04:05"))
	if _, err := s.alerts.Notify(ctx, model.LevelDanger, fmt.Sprintf("Wrong ticket code entered %d times", n), msg); err != nil {
		s.log.Warn().Err(err).Str("event", "ticket_alert_failed").Str("source", source).Send()
	}
}

func (s *gateService) clearMisses(ctx context.Context, source string) {
	if s.attempts == nil || source == "" {
		return
	}
	if err := s.attempts.Clear(ctx, source); err != nil {
		s.log.Warn().Err(err).Str("event", "ticket_miss_not_cleared").Str("source", source).Send()
	}
}

// putSnapshot stores an optional gate image and returns its key, or "" when nothing was stored.
func (s *gateService) putSnapshot(ctx context.Context, kind string, image []byte) (string, error) {
	if len(image) == 0 || s.store == nil {
		return "", nil
	}
	mt := mimetype.Detect(image)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: snapshot must be an image, got %s", ErrValidation, mt.String())
	}
	key := storage.SnapshotKey(kind, s.now(), mt.Extension())
	info, err := s.store.Put(ctx, key, bytes.NewReader(image), storage.PutObjectOptions{
		Size:        int64(len(image)),
		ContentType: mt.String(),
		Metadata:    map[string]string{"gate-event": kind},
	})
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	return info.Key, nil
}

// dropSnapshot rolls back an upload whose session write failed.
func (s *gateService) dropSnapshot(ctx context.Context, key string) {
	if key == "" || s.store == nil {
		return
	}
	_ = s.store.Delete(ctx, key)
}

func normalizePlate(plate string) (string, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if len(plate) > maxPlateLen {
		return "", fmt.Errorf("%w: plate exceeds %d characters", ErrValidation, maxPlateLen)
	}
	return plate, nil
}
