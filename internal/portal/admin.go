package portal

import (
	"context"
	"strings"

	"parkgate/internal/apiclient"
)

// ReportAPI fetches the daily report.
type ReportAPI interface {
	DailyReport(ctx context.Context, date string, detail bool) (*apiclient.DailyReport, error)
}

// Admin drives the daily report page.
type Admin struct {
	base
	view AdminView
	api  ReportAPI
}

func NewAdmin(view AdminView, api ReportAPI, opts Options) (*Admin, error) {
	if err := view.validate(); err != nil {
		return nil, err
	}
	if api == nil {
		return nil, missing("Admin", "API")
	}
	return &Admin{base: newBase(opts, "portal_admin"), view: view, api: api}, nil
}

func (a *Admin) LoadSummary(ctx context.Context) Outcome { return a.Load(ctx, false) }

func (a *Admin) LoadDetail(ctx context.Context) Outcome { return a.Load(ctx, true) }

// Load fetches the report for the selected date. In detail mode the detail
// region is cleared up front and filled only when the response lists sessions.
func (a *Admin) Load(ctx context.Context, detail bool) Outcome {
	date := strings.TrimSpace(a.view.Date.Value())
	if date == "" {
		a.view.Alert.Alert("Please select a date")
		return OutcomeBlocked
	}
	trigger := a.view.SummaryButton
	if detail {
		trigger = a.view.DetailButton
	}
	release, ok := a.latch.Acquire(ActionDailyReport, trigger)
	if !ok {
		return OutcomeBusy
	}
	defer release()

	a.view.Summary.SetHTML(a.fragment("muted", "Loading report..."))
	if detail {
		a.view.Detail.SetHTML("")
	}

	rep, err := a.api.DailyReport(ctx, date, detail)
	if err != nil {
		return a.failed(a.view.Summary, ActionDailyReport, err)
	}
	if !rep.Success {
		a.view.Summary.SetHTML(a.fragment("danger", "Could not load the report."))
		return OutcomeRejected
	}

	a.view.Summary.SetHTML(a.fragment("report_summary", rep))
	if detail && rep.Sessions != nil {
		a.view.Detail.SetHTML(a.fragment("report_detail", rep.Sessions))
	}
	return OutcomeSucceeded
}
