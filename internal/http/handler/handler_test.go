package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"parkgate/internal/service"
	serviceMocks "parkgate/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

type eventLog struct{ events []string }

func (e *eventLog) GateEvent(action, outcome string) {
	e.events = append(e.events, action+":"+outcome)
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		body := decodeError(t, resp)
		assert.False(t, body.Success)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWriteServiceError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: room is required", service.ErrValidation), http.StatusBadRequest, "VALIDATION_ERROR"},
		{service.ErrInvalidBackupCode, http.StatusUnauthorized, "INVALID_BACKUP_CODE"},
		{fmt.Errorf("close session: %w", service.ErrTicketNotFound), http.StatusNotFound, "TICKET_NOT_FOUND"},
		{service.ErrResidentInactive, http.StatusForbidden, "RESIDENT_INACTIVE"},
		{service.ErrTicketExhausted, http.StatusServiceUnavailable, "TICKET_EXHAUSTED"},
		{service.ErrUsernameTaken, http.StatusConflict, "USERNAME_TAKEN"},
		{badRequest("INVALID_BODY", "invalid JSON body"), http.StatusBadRequest, "INVALID_BODY"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeServiceError(c, tc.err) })

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tc.status, resp.StatusCode)
			body := decodeError(t, resp)
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.Error.Code)
			assert.Equal(t, body.Error.Message, body.Message)
		})
	}

	t.Run("validation keeps the detail", func(t *testing.T) {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			return writeServiceError(c, fmt.Errorf("%w: room is required", service.ErrValidation))
		})
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "validation failed: room is required", decodeError(t, resp).Message)
	})

	t.Run("internal errors are not leaked", func(t *testing.T) {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			return writeServiceError(c, errors.New("pq: password authentication failed"))
		})
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "internal server error", decodeError(t, resp).Message)
	})
}

func TestResidentFace(t *testing.T) {
	mockSvc := new(serviceMocks.MockGateService)
	events := &eventLog{}
	app := fiber.New()
	app.Post("/face", ResidentFace(mockSvc, events))

	t.Run("recognized without image", func(t *testing.T) {
		pass := &service.ResidentPass{ResidentID: 7, FullName: "Tran Thi B", Floor: 3, Room: "A-301"}
		mockSvc.On("ResidentFace", mock.Anything, []byte(nil)).Return(pass, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/face", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body residentPassResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.Equal(t, "Tran Thi B", body.ResidentName)
		assert.Equal(t, int64(7), body.ResidentID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("multipart image is forwarded", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("image", "frame.png")
		part.Write([]byte("frame-bytes"))
		writer.Close()

		mockSvc.On("ResidentFace", mock.Anything, []byte("frame-bytes")).
			Return(nil, service.ErrFaceNotRecognized).Once()

		req := httptest.NewRequest(http.MethodPost, "/face", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "face not recognized", res.Message)
		mockSvc.AssertExpectations(t)
	})

	assert.Equal(t, []string{"resident_face:ok", "resident_face:error"}, events.events)
}

func TestBackupLogin(t *testing.T) {
	mockSvc := new(serviceMocks.MockGateService)
	app := fiber.New()
	app.Post("/backup", BackupLogin(mockSvc, nil))

	t.Run("success", func(t *testing.T) {
		pass := &service.ResidentPass{ResidentID: 2, FullName: "Le Van C"}
		mockSvc.On("BackupLogin", mock.Anything, "AB12CD").Return(pass, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/backup", backupLoginRequest{BackupCode: "AB12CD"}))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body residentPassResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Le Van C", body.ResidentName)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid code", func(t *testing.T) {
		mockSvc.On("BackupLogin", mock.Anything, "NOPE").Return(nil, service.ErrInvalidBackupCode).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/backup", backupLoginRequest{BackupCode: "NOPE"}))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_BACKUP_CODE", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/backup", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})
}

func TestResidentEvent(t *testing.T) {
	mockSvc := new(serviceMocks.MockGateService)
	events := &eventLog{}
	app := fiber.New()
	app.Post("/in", ResidentEvent(mockSvc, events, false))
	app.Post("/out", ResidentEvent(mockSvc, events, true))

	pass := &service.ResidentPass{ResidentID: 4, FullName: "Pham D", Plate: "51A12345"}
	mockSvc.On("ResidentCheckin", mock.Anything, int64(4), "51a12345").Return(pass, nil).Once()
	mockSvc.On("ResidentCheckout", mock.Anything, int64(4), "").Return(nil, service.ErrResidentInactive).Once()

	resp, _ := app.Test(jsonRequest(http.MethodPost, "/in", residentEventRequest{ResidentID: 4, Plate: "51a12345"}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.Test(jsonRequest(http.MethodPost, "/out", residentEventRequest{ResidentID: 4}))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	assert.Equal(t, []string{"resident_checkin:ok", "resident_checkout:error"}, events.events)
	mockSvc.AssertExpectations(t)
}

func TestGuestCheckin(t *testing.T) {
	mockSvc := new(serviceMocks.MockGateService)
	app := fiber.New()
	app.Post("/checkin", GuestCheckin(mockSvc, nil))
	at := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

	t.Run("empty body issues a ticket", func(t *testing.T) {
		mockSvc.On("GuestCheckin", mock.Anything, "", []byte(nil)).
			Return(&service.Ticket{TicketCode: "004217", CheckinTime: at}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/checkin", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body guestCheckinResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.Equal(t, "004217", body.TicketCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("plate and snapshot", func(t *testing.T) {
		img := []byte("snapshot")
		mockSvc.On("GuestCheckin", mock.Anything, "30F-123.45", img).
			Return(&service.Ticket{TicketCode: "120000", Plate: "30F-123.45", CheckinTime: at}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/checkin", guestCheckinRequest{
			Plate: "30F-123.45",
			Image: base64.StdEncoding.EncodeToString(img),
		}))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("image is not base64", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/checkin", guestCheckinRequest{Image: "%%%"}))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, resp).Error.Code)
	})

	t.Run("codes exhausted", func(t *testing.T) {
		mockSvc.On("GuestCheckin", mock.Anything, "", []byte(nil)).Return(nil, service.ErrTicketExhausted).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/checkin", map[string]string{}))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGuestCheckout(t *testing.T) {
	mockSvc := new(serviceMocks.MockGateService)
	app := fiber.New()
	app.Post("/checkout", GuestCheckout(mockSvc, nil))

	t.Run("settles", func(t *testing.T) {
		in := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
		mockSvc.On("GuestCheckout", mock.Anything, "004217", "0.0.0.0", []byte(nil)).Return(&service.Settlement{
			TicketCode:   "004217",
			CheckinTime:  in,
			CheckoutTime: in.Add(3*time.Hour + time.Minute),
			Hours:        4,
			Amount:       20000,
		}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/checkout", guestCheckoutRequest{TicketCode: "004217"}))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body guestCheckoutResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int64(4), body.Hours)
		assert.Equal(t, int64(20000), body.Amount)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown ticket", func(t *testing.T) {
		mockSvc.On("GuestCheckout", mock.Anything, "999999", "0.0.0.0", []byte(nil)).Return(nil, service.ErrTicketNotFound).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/checkout", guestCheckoutRequest{TicketCode: "999999"}))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "TICKET_NOT_FOUND", body.Error.Code)
		assert.Equal(t, "ticket not found or already closed", body.Message)
		mockSvc.AssertExpectations(t)
	})
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp).Error.Code)
}
