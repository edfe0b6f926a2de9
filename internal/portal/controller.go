package portal

import (
	"html/template"

	"github.com/rs/zerolog"
)

// Action names used for latching and logging.
const (
	ActionResidentFace  = "resident-face"
	ActionBackupLogin   = "backup-login"
	ActionGuestCheckin  = "guest-checkin"
	ActionGuestCheckout = "guest-checkout"
	ActionDailyReport   = "daily-report"
	ActionSupport       = "support"
)

const msgAPIError = "API call error."

// Options are shared by all controllers. Nil members select defaults.
type Options struct {
	Renderer *Renderer
	Logger   *zerolog.Logger
	// Latch is shared when several controllers drive the same gate.
	Latch *Latch
}

type base struct {
	render *Renderer
	log    zerolog.Logger
	latch  *Latch
}

func newBase(opts Options, component string) base {
	b := base{render: opts.Renderer, latch: opts.Latch}
	if b.render == nil {
		b.render = DefaultRenderer()
	}
	if b.latch == nil {
		b.latch = NewLatch()
	}
	if opts.Logger != nil {
		b.log = opts.Logger.With().Str("component", component).Logger()
	} else {
		b.log = zerolog.Nop()
	}
	return b
}

// failed logs a transport error and renders the generic message into region.
func (b base) failed(region Region, action string, err error) Outcome {
	b.log.Error().Err(err).Str("event", "api_call_failed").Str("action", action).Msg("api call failed")
	region.SetHTML(b.render.Fragment("danger", msgAPIError))
	return OutcomeFailed
}

func (b base) fragment(name string, data any) template.HTML {
	return b.render.Fragment(name, data)
}
