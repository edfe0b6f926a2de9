// Package portal holds the gate, admin report and resident support controllers.
//
// A controller is mounted on a typed view: the handles it reads input from and
// renders results into. Each user action performs at most one API request and
// replaces the action's result region.
package portal

import (
	"errors"
	"fmt"
	"html/template"
)

// Region is a container whose content is replaced wholesale.
type Region interface {
	SetHTML(template.HTML)
}

// Field is a text input.
type Field interface {
	Value() string
	SetValue(string)
}

// Alerter shows a blocking notice for input that never reaches the network.
type Alerter interface {
	Alert(msg string)
}

// FilePicker exposes the file currently selected by the user.
type FilePicker interface {
	Selected() (data []byte, ok bool)
}

// ImageView displays a local image.
type ImageView interface {
	ShowImage(src template.URL)
}

// Control is a trigger that can be disabled while its action is in flight.
type Control interface {
	SetDisabled(bool)
}

// ErrMissingBinding is returned when a required view member is nil.
var ErrMissingBinding = errors.New("missing view binding")

func missing(view, member string) error {
	return fmt.Errorf("%w: %s.%s", ErrMissingBinding, view, member)
}

// GateView binds the gate page.
type GateView struct {
	Result     Region
	Alert      Alerter
	BackupCode Field
	TicketCode Field

	// Plate extends the guest check-in body when bound.
	Plate Field
	// Image and Preview enable the local image preview. A selected image is
	// also sent as the entry snapshot at guest check-in.
	Image   FilePicker
	Preview ImageView

	FaceButton     Control
	BackupButton   Control
	CheckinButton  Control
	CheckoutButton Control
}

func (v GateView) validate() error {
	switch {
	case v.Result == nil:
		return missing("GateView", "Result")
	case v.Alert == nil:
		return missing("GateView", "Alert")
	case v.BackupCode == nil:
		return missing("GateView", "BackupCode")
	case v.TicketCode == nil:
		return missing("GateView", "TicketCode")
	case v.Preview != nil && v.Image == nil:
		return missing("GateView", "Image")
	}
	return nil
}

// AdminView binds the daily report page.
type AdminView struct {
	Date    Field
	Summary Region
	Detail  Region
	Alert   Alerter

	SummaryButton Control
	DetailButton  Control
}

func (v AdminView) validate() error {
	switch {
	case v.Date == nil:
		return missing("AdminView", "Date")
	case v.Summary == nil:
		return missing("AdminView", "Summary")
	case v.Detail == nil:
		return missing("AdminView", "Detail")
	case v.Alert == nil:
		return missing("AdminView", "Alert")
	}
	return nil
}

// ResidentView binds the support request form.
type ResidentView struct {
	Content Field
	Result  Region
	Alert   Alerter

	SubmitButton Control
}

func (v ResidentView) validate() error {
	switch {
	case v.Content == nil:
		return missing("ResidentView", "Content")
	case v.Result == nil:
		return missing("ResidentView", "Result")
	case v.Alert == nil:
		return missing("ResidentView", "Alert")
	}
	return nil
}
