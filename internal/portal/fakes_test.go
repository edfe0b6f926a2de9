package portal

import (
	"context"
	"html/template"
	"strings"
	"sync"

	"parkgate/internal/apiclient"
)

type fakeRegion struct {
	mu      sync.Mutex
	history []template.HTML
}

func (r *fakeRegion) SetHTML(h template.HTML) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, h)
}

func (r *fakeRegion) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return ""
	}
	return string(r.history[len(r.history)-1])
}

func (r *fakeRegion) Count(substr string) int {
	return strings.Count(r.Current(), substr)
}

type fakeField struct{ value string }

func (f *fakeField) Value() string     { return f.value }
func (f *fakeField) SetValue(v string) { f.value = v }

type fakeAlerter struct{ alerts []string }

func (a *fakeAlerter) Alert(msg string) { a.alerts = append(a.alerts, msg) }

type fakeControl struct {
	mu     sync.Mutex
	states []bool
}

func (c *fakeControl) SetDisabled(d bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states = append(c.states, d)
}

type fakePicker struct{ data []byte }

func (p *fakePicker) Selected() ([]byte, bool) { return p.data, len(p.data) > 0 }

type fakeImage struct{ src template.URL }

func (i *fakeImage) ShowImage(src template.URL) { i.src = src }

// fakeAPI implements every API interface; unset hooks panic when called.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	face     func(ctx context.Context) (*apiclient.FaceResult, error)
	backup   func(ctx context.Context, code string) (*apiclient.BackupResult, error)
	checkin  func(ctx context.Context, req apiclient.GuestCheckinRequest) (*apiclient.CheckinResult, error)
	checkout func(ctx context.Context, ticket string) (*apiclient.CheckoutResult, error)
	report   func(ctx context.Context, date string, detail bool) (*apiclient.DailyReport, error)
	support  func(ctx context.Context, content string) (*apiclient.SupportResult, error)
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeAPI) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) ResidentFace(ctx context.Context) (*apiclient.FaceResult, error) {
	f.record("face")
	return f.face(ctx)
}

func (f *fakeAPI) BackupLogin(ctx context.Context, code string) (*apiclient.BackupResult, error) {
	f.record("backup")
	return f.backup(ctx, code)
}

func (f *fakeAPI) GuestCheckin(ctx context.Context, req apiclient.GuestCheckinRequest) (*apiclient.CheckinResult, error) {
	f.record("checkin")
	return f.checkin(ctx, req)
}

func (f *fakeAPI) GuestCheckout(ctx context.Context, ticket string) (*apiclient.CheckoutResult, error) {
	f.record("checkout")
	return f.checkout(ctx, ticket)
}

func (f *fakeAPI) DailyReport(ctx context.Context, date string, detail bool) (*apiclient.DailyReport, error) {
	f.record("report")
	return f.report(ctx, date, detail)
}

func (f *fakeAPI) SubmitSupport(ctx context.Context, content string) (*apiclient.SupportResult, error) {
	f.record("support")
	return f.support(ctx, content)
}

func okEnvelope() apiclient.Envelope { return apiclient.Envelope{Success: true} }

func rejected(msg string) apiclient.Envelope { return apiclient.Envelope{Success: false, Message: msg} }
