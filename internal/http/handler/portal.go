package handler

import (
	"context"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"parkgate/internal/apiclient"
	"parkgate/internal/portal"
)

const msgBusy = "This action is already in progress"

// PortalAPI is everything the portal pages call on the JSON API.
type PortalAPI interface {
	portal.GateAPI
	portal.ReportAPI
	portal.SupportAPI
}

// Server-rendered implementations of the portal view handles. Each request
// builds a fresh set and the page is rendered from their final state.

type pageRegion struct{ html template.HTML }

func (r *pageRegion) SetHTML(h template.HTML) { r.html = h }

type formField struct{ value string }

func (f *formField) Value() string     { return f.value }
func (f *formField) SetValue(v string) { f.value = v }

type pageAlert struct{ msg string }

func (a *pageAlert) Alert(msg string) { a.msg = msg }

type uploadPicker struct{ data []byte }

func (p uploadPicker) Selected() ([]byte, bool) { return p.data, len(p.data) > 0 }

type pagePreview struct{ src template.URL }

func (p *pagePreview) ShowImage(src template.URL) { p.src = src }

// Portal serves the gate, report and support pages.
type Portal struct {
	api      PortalAPI
	renderer *portal.Renderer
	log      *zerolog.Logger
	// gateLatch is shared by every gate request since they drive one barrier.
	gateLatch *portal.Latch
}

func NewPortal(api PortalAPI, renderer *portal.Renderer, log *zerolog.Logger) *Portal {
	if renderer == nil {
		renderer = portal.DefaultRenderer()
	}
	return &Portal{api: api, renderer: renderer, log: log, gateLatch: portal.NewLatch()}
}

// Register mounts the pages on r, normally the /portal group.
func (p *Portal) Register(r fiber.Router) {
	r.Get("/gate", p.gatePage)
	r.Post("/gate/:action", p.gateAction)
	r.Get("/admin/report", p.reportPage)
	r.Post("/admin/report", p.reportPage)
	r.Get("/resident/support", p.supportPage)
	r.Post("/resident/support", p.supportPage)
}

func (p *Portal) options(latch *portal.Latch) portal.Options {
	return portal.Options{Renderer: p.renderer, Logger: p.log, Latch: latch}
}

func (p *Portal) page(c *fiber.Ctx, name string, page portal.Page) error {
	c.Type("html")
	return p.renderer.Page(c, name, page)
}

type gateForm struct {
	result  pageRegion
	alert   pageAlert
	backup  formField
	ticket  formField
	plate   formField
	preview pagePreview
}

// clientContext tags the request context with the browser's address so the API
// behind the portal throttles per visitor instead of per portal process.
func clientContext(c *fiber.Ctx) context.Context {
	return apiclient.WithClientIP(c.UserContext(), utils.CopyString(c.IP()))
}

func (p *Portal) gatePage(c *fiber.Ctx) error {
	return p.renderGate(c, &gateForm{})
}

func (p *Portal) gateAction(c *fiber.Ctx) error {
	f := &gateForm{
		backup: formField{utils.CopyString(c.FormValue("backup_code"))},
		ticket: formField{utils.CopyString(c.FormValue("ticket_code"))},
		plate:  formField{utils.CopyString(c.FormValue("plate"))},
	}
	image, err := formImage(c)
	if err != nil {
		f.alert.Alert("The selected image is too large or unreadable")
		return p.renderGate(c, f)
	}
	gate, err := portal.NewGate(portal.GateView{
		Result:     &f.result,
		Alert:      &f.alert,
		BackupCode: &f.backup,
		TicketCode: &f.ticket,
		Plate:      &f.plate,
		Image:      uploadPicker{image},
		Preview:    &f.preview,
	}, p.api, p.options(p.gateLatch))
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}

	ctx := clientContext(c)
	var out portal.Outcome
	switch c.Params("action") {
	case "face":
		out = gate.ResidentFace(ctx)
	case "backup-login":
		out = gate.BackupLogin(ctx)
	case "checkin":
		out = gate.GuestCheckin(ctx)
	case "checkout":
		out = gate.GuestCheckout(ctx)
	case "preview":
		if !gate.PreviewImage() {
			f.alert.Alert("Please select an image file")
		}
		return p.renderGate(c, f)
	default:
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "unknown gate action")
	}
	if out == portal.OutcomeBusy {
		f.alert.Alert(msgBusy)
	}
	return p.renderGate(c, f)
}

func (p *Portal) renderGate(c *fiber.Ctx, f *gateForm) error {
	return p.page(c, "gate", portal.Page{
		Title:   "Gate",
		Alert:   f.alert.msg,
		Regions: map[string]template.HTML{"result": f.result.html},
		Values: map[string]string{
			"backup_code": f.backup.value,
			"ticket_code": f.ticket.value,
			"plate":       f.plate.value,
		},
		Disabled: map[string]bool{
			"face":     p.gateLatch.InFlight(portal.ActionResidentFace),
			"backup":   p.gateLatch.InFlight(portal.ActionBackupLogin),
			"checkin":  p.gateLatch.InFlight(portal.ActionGuestCheckin),
			"checkout": p.gateLatch.InFlight(portal.ActionGuestCheckout),
		},
		Image: f.preview.src,
	})
}

func (p *Portal) reportPage(c *fiber.Ctx) error {
	var (
		date    = formField{utils.CopyString(c.FormValue("date", c.Query("date")))}
		summary pageRegion
		detail  pageRegion
		alert   pageAlert
	)
	if c.Method() == fiber.MethodPost {
		admin, err := portal.NewAdmin(portal.AdminView{
			Date:    &date,
			Summary: &summary,
			Detail:  &detail,
			Alert:   &alert,
		}, p.api, p.options(nil))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		admin.Load(clientContext(c), c.FormValue("mode") == "detail")
	}
	return p.page(c, "admin", portal.Page{
		Title:   "Daily report",
		Alert:   alert.msg,
		Regions: map[string]template.HTML{"summary": summary.html, "detail": detail.html},
		Values:  map[string]string{"date": date.value},
	})
}

func (p *Portal) supportPage(c *fiber.Ctx) error {
	var (
		content = formField{utils.CopyString(c.FormValue("content"))}
		result  pageRegion
		alert   pageAlert
	)
	if c.Method() == fiber.MethodPost {
		res, err := portal.NewResident(portal.ResidentView{
			Content: &content,
			Result:  &result,
			Alert:   &alert,
		}, p.api, p.options(nil))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		res.Submit(clientContext(c))
	}
	return p.page(c, "resident", portal.Page{
		Title:   "Support request",
		Alert:   alert.msg,
		Regions: map[string]template.HTML{"result": result.html},
		Values:  map[string]string{"content": content.value},
	})
}
