package portal

import (
	"context"
	"encoding/base64"
	"strings"

	"parkgate/internal/apiclient"
)

// GateAPI is the part of the API the gate page calls.
type GateAPI interface {
	ResidentFace(ctx context.Context) (*apiclient.FaceResult, error)
	BackupLogin(ctx context.Context, code string) (*apiclient.BackupResult, error)
	GuestCheckin(ctx context.Context, req apiclient.GuestCheckinRequest) (*apiclient.CheckinResult, error)
	GuestCheckout(ctx context.Context, ticketCode string) (*apiclient.CheckoutResult, error)
}

// Gate drives resident entry and guest ticketing.
type Gate struct {
	base
	view GateView
	api  GateAPI
}

func NewGate(view GateView, api GateAPI, opts Options) (*Gate, error) {
	if err := view.validate(); err != nil {
		return nil, err
	}
	if api == nil {
		return nil, missing("Gate", "API")
	}
	return &Gate{base: newBase(opts, "portal_gate"), view: view, api: api}, nil
}

// PreviewImage shows the selected file locally. Nothing is uploaded. It reports
// whether a preview was shown.
func (g *Gate) PreviewImage() bool {
	if g.view.Image == nil || g.view.Preview == nil {
		return false
	}
	data, ok := g.view.Image.Selected()
	if !ok {
		return false
	}
	src, ok := PreviewURL(data)
	if !ok {
		return false
	}
	g.view.Preview.ShowImage(src)
	return true
}

func (g *Gate) ResidentFace(ctx context.Context) Outcome {
	release, ok := g.latch.Acquire(ActionResidentFace, g.view.FaceButton)
	if !ok {
		return OutcomeBusy
	}
	defer release()

	g.view.Result.SetHTML(g.fragment("info", "Recognizing resident..."))
	res, err := g.api.ResidentFace(ctx)
	if err != nil {
		return g.failed(g.view.Result, ActionResidentFace, err)
	}
	if !res.Success {
		g.view.Result.SetHTML(g.fragment("face_fail", res))
		return OutcomeRejected
	}
	g.view.Result.SetHTML(g.fragment("face_ok", res))
	return OutcomeSucceeded
}

func (g *Gate) BackupLogin(ctx context.Context) Outcome {
	code := strings.TrimSpace(g.view.BackupCode.Value())
	if code == "" {
		g.view.Alert.Alert("Please enter the backup code")
		return OutcomeBlocked
	}
	release, ok := g.latch.Acquire(ActionBackupLogin, g.view.BackupButton)
	if !ok {
		return OutcomeBusy
	}
	defer release()

	g.view.Result.SetHTML(g.fragment("info", "Checking backup code..."))
	res, err := g.api.BackupLogin(ctx, code)
	if err != nil {
		return g.failed(g.view.Result, ActionBackupLogin, err)
	}
	if !res.Success {
		// The server message is not shown for backup codes.
		g.view.Result.SetHTML(g.fragment("danger", "Backup code is invalid or disabled."))
		return OutcomeRejected
	}
	g.view.Result.SetHTML(g.fragment("backup_ok", res))
	return OutcomeSucceeded
}

func (g *Gate) GuestCheckin(ctx context.Context) Outcome {
	release, ok := g.latch.Acquire(ActionGuestCheckin, g.view.CheckinButton)
	if !ok {
		return OutcomeBusy
	}
	defer release()

	var req apiclient.GuestCheckinRequest
	if g.view.Plate != nil {
		req.Plate = strings.TrimSpace(g.view.Plate.Value())
	}
	if g.view.Image != nil {
		if data, ok := g.view.Image.Selected(); ok {
			if _, isImage := PreviewURL(data); isImage {
				req.Image = base64.StdEncoding.EncodeToString(data)
			}
		}
	}

	g.view.Result.SetHTML(g.fragment("info", "Issuing a 6-digit ticket..."))
	res, err := g.api.GuestCheckin(ctx, req)
	if err != nil {
		return g.failed(g.view.Result, ActionGuestCheckin, err)
	}
	if !res.Success {
		g.view.Result.SetHTML(g.fragment("danger", "Could not issue a ticket."))
		return OutcomeRejected
	}
	g.view.Result.SetHTML(g.fragment("ticket", res))
	return OutcomeSucceeded
}

func (g *Gate) GuestCheckout(ctx context.Context) Outcome {
	ticket := strings.TrimSpace(g.view.TicketCode.Value())
	if ticket == "" {
		g.view.Alert.Alert("Please enter the ticket code")
		return OutcomeBlocked
	}
	release, ok := g.latch.Acquire(ActionGuestCheckout, g.view.CheckoutButton)
	if !ok {
		return OutcomeBusy
	}
	defer release()

	g.view.Result.SetHTML(g.fragment("info", "Calculating fee..."))
	res, err := g.api.GuestCheckout(ctx, ticket)
	if err != nil {
		return g.failed(g.view.Result, ActionGuestCheckout, err)
	}
	if !res.Success {
		g.view.Result.SetHTML(g.fragment("danger", "Ticket code is invalid or already used."))
		return OutcomeRejected
	}
	g.view.Result.SetHTML(g.fragment("checkout_ok", res))
	return OutcomeSucceeded
}
