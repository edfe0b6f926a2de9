package portal

import (
	"context"
	"strings"

	"parkgate/internal/apiclient"
)

// SupportAPI submits support requests.
type SupportAPI interface {
	SubmitSupport(ctx context.Context, content string) (*apiclient.SupportResult, error)
}

// Resident drives the support request form.
type Resident struct {
	base
	view ResidentView
	api  SupportAPI
}

func NewResident(view ResidentView, api SupportAPI, opts Options) (*Resident, error) {
	if err := view.validate(); err != nil {
		return nil, err
	}
	if api == nil {
		return nil, missing("Resident", "API")
	}
	return &Resident{base: newBase(opts, "portal_resident"), view: view, api: api}, nil
}

// Submit sends the form content. The input is cleared only after the API accepts it.
func (r *Resident) Submit(ctx context.Context) Outcome {
	content := strings.TrimSpace(r.view.Content.Value())
	if content == "" {
		r.view.Alert.Alert("Please enter your request")
		return OutcomeBlocked
	}
	release, ok := r.latch.Acquire(ActionSupport, r.view.SubmitButton)
	if !ok {
		return OutcomeBusy
	}
	defer release()

	r.view.Result.SetHTML(r.fragment("muted", "Sending request..."))
	res, err := r.api.SubmitSupport(ctx, content)
	if err != nil {
		return r.failed(r.view.Result, ActionSupport, err)
	}
	if !res.Success {
		r.view.Result.SetHTML(r.fragment("danger", "Sending failed."))
		return OutcomeRejected
	}
	r.view.Result.SetHTML(r.fragment("success", "Request sent to the administrators."))
	r.view.Content.SetValue("")
	return OutcomeSucceeded
}
