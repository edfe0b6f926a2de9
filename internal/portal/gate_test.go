package portal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"parkgate/internal/apiclient"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type gateHarness struct {
	gate    *Gate
	api     *fakeAPI
	result  *fakeRegion
	alert   *fakeAlerter
	backup  *fakeField
	ticket  *fakeField
	plate   *fakeField
	picker  *fakePicker
	preview *fakeImage
	logs    *bytes.Buffer
}

func newGateHarness(t *testing.T) *gateHarness {
	t.Helper()
	h := &gateHarness{
		api:     &fakeAPI{},
		result:  &fakeRegion{},
		alert:   &fakeAlerter{},
		backup:  &fakeField{},
		ticket:  &fakeField{},
		plate:   &fakeField{},
		picker:  &fakePicker{},
		preview: &fakeImage{},
		logs:    &bytes.Buffer{},
	}
	logger := zerolog.New(h.logs)
	g, err := NewGate(GateView{
		Result:     h.result,
		Alert:      h.alert,
		BackupCode: h.backup,
		TicketCode: h.ticket,
		Plate:      h.plate,
		Image:      h.picker,
		Preview:    h.preview,
	}, h.api, Options{Logger: &logger})
	require.NoError(t, err)
	h.gate = g
	return h
}

func TestNewGate_MissingBindings(t *testing.T) {
	_, err := NewGate(GateView{Alert: &fakeAlerter{}}, &fakeAPI{}, Options{})
	assert.ErrorIs(t, err, ErrMissingBinding)
	assert.Contains(t, err.Error(), "GateView.Result")

	_, err = NewGate(GateView{
		Result: &fakeRegion{}, Alert: &fakeAlerter{}, BackupCode: &fakeField{}, TicketCode: &fakeField{},
		Preview: &fakeImage{},
	}, &fakeAPI{}, Options{})
	assert.ErrorIs(t, err, ErrMissingBinding)

	_, err = NewGate(GateView{
		Result: &fakeRegion{}, Alert: &fakeAlerter{}, BackupCode: &fakeField{}, TicketCode: &fakeField{},
	}, nil, Options{})
	assert.ErrorIs(t, err, ErrMissingBinding)
}

func TestGate_SuccessRendersFieldsVerbatim(t *testing.T) {
	ctx := context.Background()

	t.Run("resident face", func(t *testing.T) {
		h := newGateHarness(t)
		h.api.face = func(context.Context) (*apiclient.FaceResult, error) {
			return &apiclient.FaceResult{Envelope: okEnvelope(), ResidentName: "Nguyen Van A", ResidentID: 12}, nil
		}

		assert.Equal(t, OutcomeSucceeded, h.gate.ResidentFace(ctx))
		assert.Contains(t, h.result.Current(), "<b>Nguyen Van A</b> (ID: 12)")
		assert.Contains(t, h.result.Current(), "Gate opened")
		assert.Contains(t, string(h.result.history[0]), "Recognizing resident...")
	})

	t.Run("backup login", func(t *testing.T) {
		h := newGateHarness(t)
		h.backup.value = "  ABCD2345 "
		h.api.backup = func(_ context.Context, code string) (*apiclient.BackupResult, error) {
			assert.Equal(t, "ABCD2345", code)
			return &apiclient.BackupResult{Envelope: okEnvelope(), ResidentName: "Tran B"}, nil
		}

		assert.Equal(t, OutcomeSucceeded, h.gate.BackupLogin(ctx))
		assert.Contains(t, h.result.Current(), "<b>Tran B</b>")
	})

	t.Run("guest checkin", func(t *testing.T) {
		h := newGateHarness(t)
		h.api.checkin = func(_ context.Context, req apiclient.GuestCheckinRequest) (*apiclient.CheckinResult, error) {
			assert.Equal(t, apiclient.GuestCheckinRequest{}, req)
			return &apiclient.CheckinResult{Envelope: okEnvelope(), TicketCode: "004217"}, nil
		}

		assert.Equal(t, OutcomeSucceeded, h.gate.GuestCheckin(ctx))
		assert.Contains(t, h.result.Current(), "<b>004217</b>")
	})

	t.Run("guest checkout", func(t *testing.T) {
		h := newGateHarness(t)
		h.ticket.value = "004217"
		h.api.checkout = func(_ context.Context, ticket string) (*apiclient.CheckoutResult, error) {
			assert.Equal(t, "004217", ticket)
			return &apiclient.CheckoutResult{Envelope: okEnvelope(), Hours: 3, Amount: 15000}, nil
		}

		assert.Equal(t, OutcomeSucceeded, h.gate.GuestCheckout(ctx))
		assert.Contains(t, h.result.Current(), "<b>3 hours</b>")
		assert.Contains(t, h.result.Current(), "<b>15,000 VNĐ</b>")
	})
}

func TestGate_RejectionNeverShowsSuccessMarkup(t *testing.T) {
	ctx := context.Background()

	t.Run("resident face surfaces the server message", func(t *testing.T) {
		h := newGateHarness(t)
		h.api.face = func(context.Context) (*apiclient.FaceResult, error) {
			return &apiclient.FaceResult{Envelope: rejected("face not recognized"), ResidentName: "ghost"}, nil
		}

		assert.Equal(t, OutcomeRejected, h.gate.ResidentFace(ctx))
		assert.Contains(t, h.result.Current(), "Face not recognized. face not recognized")
		assert.NotContains(t, h.result.Current(), "alert-success")
		assert.NotContains(t, h.result.Current(), "ghost")
	})

	t.Run("backup login keeps the generic message", func(t *testing.T) {
		h := newGateHarness(t)
		h.backup.value = "WRONG123"
		h.api.backup = func(context.Context, string) (*apiclient.BackupResult, error) {
			return &apiclient.BackupResult{Envelope: rejected("invalid or inactive backup code")}, nil
		}

		assert.Equal(t, OutcomeRejected, h.gate.BackupLogin(ctx))
		assert.Contains(t, h.result.Current(), "Backup code is invalid or disabled.")
		assert.NotContains(t, h.result.Current(), "inactive backup code")
		assert.NotContains(t, h.result.Current(), "alert-success")
	})

	t.Run("guest checkin", func(t *testing.T) {
		h := newGateHarness(t)
		h.api.checkin = func(context.Context, apiclient.GuestCheckinRequest) (*apiclient.CheckinResult, error) {
			return &apiclient.CheckinResult{Envelope: rejected("")}, nil
		}

		assert.Equal(t, OutcomeRejected, h.gate.GuestCheckin(ctx))
		assert.Contains(t, h.result.Current(), "Could not issue a ticket.")
		assert.NotContains(t, h.result.Current(), "alert-success")
	})

	t.Run("guest checkout", func(t *testing.T) {
		h := newGateHarness(t)
		h.ticket.value = "000000"
		h.api.checkout = func(context.Context, string) (*apiclient.CheckoutResult, error) {
			return &apiclient.CheckoutResult{Envelope: rejected("ticket not found")}, nil
		}

		assert.Equal(t, OutcomeRejected, h.gate.GuestCheckout(ctx))
		assert.Contains(t, h.result.Current(), "Ticket code is invalid or already used.")
		assert.NotContains(t, h.result.Current(), "alert-success")
	})
}

func TestGate_TransportErrorShownOnceAndLogged(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("dial tcp: connection refused")

	actions := map[string]func(h *gateHarness) Outcome{
		"resident face": func(h *gateHarness) Outcome {
			h.api.face = func(context.Context) (*apiclient.FaceResult, error) { return nil, boom }
			return h.gate.ResidentFace(ctx)
		},
		"backup login": func(h *gateHarness) Outcome {
			h.backup.value = "ABCD2345"
			h.api.backup = func(context.Context, string) (*apiclient.BackupResult, error) { return nil, boom }
			return h.gate.BackupLogin(ctx)
		},
		"guest checkin": func(h *gateHarness) Outcome {
			h.api.checkin = func(context.Context, apiclient.GuestCheckinRequest) (*apiclient.CheckinResult, error) {
				return nil, boom
			}
			return h.gate.GuestCheckin(ctx)
		},
		"guest checkout": func(h *gateHarness) Outcome {
			h.ticket.value = "004217"
			h.api.checkout = func(context.Context, string) (*apiclient.CheckoutResult, error) { return nil, boom }
			return h.gate.GuestCheckout(ctx)
		},
	}

	for name, run := range actions {
		t.Run(name, func(t *testing.T) {
			h := newGateHarness(t)

			assert.Equal(t, OutcomeFailed, run(h))
			assert.Equal(t, 1, h.result.Count(msgAPIError))
			assert.Contains(t, h.logs.String(), "connection refused")
			assert.Equal(t, 1, strings.Count(h.logs.String(), `"event":"api_call_failed"`))
		})
	}
}

func TestGate_ValidationBlocksWithoutRequest(t *testing.T) {
	ctx := context.Background()
	h := newGateHarness(t)
	h.backup.value = "   "
	h.ticket.value = ""

	assert.Equal(t, OutcomeBlocked, h.gate.BackupLogin(ctx))
	assert.Equal(t, OutcomeBlocked, h.gate.GuestCheckout(ctx))

	assert.Equal(t, []string{"Please enter the backup code", "Please enter the ticket code"}, h.alert.alerts)
	assert.Zero(t, h.api.Calls("backup"))
	assert.Zero(t, h.api.Calls("checkout"))
	assert.Empty(t, h.result.history)
}

func TestGate_EscapesBackendStrings(t *testing.T) {
	h := newGateHarness(t)
	h.api.face = func(context.Context) (*apiclient.FaceResult, error) {
		return &apiclient.FaceResult{Envelope: okEnvelope(), ResidentName: "<script>alert(1)</script>", ResidentID: 1}, nil
	}

	h.gate.ResidentFace(context.Background())

	assert.NotContains(t, h.result.Current(), "<script>")
	assert.Contains(t, h.result.Current(), "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestGate_PreviewImage(t *testing.T) {
	h := newGateHarness(t)

	assert.False(t, h.gate.PreviewImage())

	h.picker.data = []byte("plain text, not an image")
	assert.False(t, h.gate.PreviewImage())
	assert.Empty(t, h.preview.src)

	h.picker.data = pngBytes
	assert.True(t, h.gate.PreviewImage())
	assert.True(t, strings.HasPrefix(string(h.preview.src), "data:image/png;base64,"))
	assert.Zero(t, h.api.Calls("checkin"))
}

func TestGate_CheckinSendsPlateAndSnapshot(t *testing.T) {
	h := newGateHarness(t)
	h.plate.value = " 51a-12345 "
	h.picker.data = pngBytes
	h.api.checkin = func(_ context.Context, req apiclient.GuestCheckinRequest) (*apiclient.CheckinResult, error) {
		assert.Equal(t, "51a-12345", req.Plate)
		assert.NotEmpty(t, req.Image)
		return &apiclient.CheckinResult{Envelope: okEnvelope(), TicketCode: "123456"}, nil
	}

	assert.Equal(t, OutcomeSucceeded, h.gate.GuestCheckin(context.Background()))
}
