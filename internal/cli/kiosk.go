package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"parkgate/internal/portal"
)

const kioskHelp = `commands:
  face                    recognize the resident at the camera
  backup <code>           open with a backup code
  image <path>            select the entry snapshot (previewed locally)
  checkin [plate]         issue a guest ticket
  checkout <ticket>       settle a guest ticket
  report [date] [detail]  show the daily report
  support <message>       send a request to the administrators
  help | quit`

func newKioskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kiosk",
		Short: "Interactive gate terminal reading commands from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := a.opts.Stdin
			if in == nil {
				in = strings.NewReader("")
			}
			return a.kiosk(cmd, in)
		},
	}
}

func (a *app) kiosk(cmd *cobra.Command, in io.Reader) error {
	gate, form, err := a.newGate()
	if err != nil {
		return err
	}
	out := a.opts.Stdout
	fmt.Fprintf(out, "gatectl kiosk on %s, type help for commands\n", a.profile.APIURL)

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		name, rest, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		rest = strings.TrimSpace(rest)
		ctx := cmd.Context()

		switch strings.ToLower(name) {
		case "":
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, kioskHelp)
		case "face":
			a.settled(gate.ResidentFace(ctx))
		case "backup":
			form.backup.SetValue(rest)
			a.settled(gate.BackupLogin(ctx))
		case "image":
			form.image.Path = rest
			if !gate.PreviewImage() {
				form.image.Path = ""
				a.term.Alert("Please select an image file")
			}
		case "checkin":
			form.plate.SetValue(rest)
			a.settled(gate.GuestCheckin(ctx))
			form.image.Path = ""
		case "checkout":
			form.ticket.SetValue(rest)
			a.settled(gate.GuestCheckout(ctx))
		case "report":
			date, mode, _ := strings.Cut(rest, " ")
			a.settled(a.loadReport(cmd, date, strings.TrimSpace(mode) == "detail"))
		case "support":
			res, err := portal.NewResident(portal.ResidentView{
				Content: &Field{value: rest},
				Result:  a.term.Region(),
				Alert:   a.term,
			}, a.api, a.portalOptions())
			if err != nil {
				return err
			}
			a.settled(res.Submit(ctx))
		default:
			a.term.Alert(fmt.Sprintf("unknown command %q, type help", name))
		}
	}
}

func (a *app) settled(o portal.Outcome) {
	if o == portal.OutcomeBusy {
		a.term.Alert("This action is already in progress")
	}
}
