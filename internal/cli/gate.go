package cli

import (
	"context"

	"github.com/spf13/cobra"

	"parkgate/internal/portal"
)

// gateForm holds the text views of one gate controller.
type gateForm struct {
	result *TextRegion
	backup Field
	ticket Field
	plate  Field
	image  FileImage
}

func (a *app) newGate() (*portal.Gate, *gateForm, error) {
	f := &gateForm{result: a.term.Region()}
	g, err := portal.NewGate(portal.GateView{
		Result:     f.result,
		Alert:      a.term,
		BackupCode: &f.backup,
		TicketCode: &f.ticket,
		Plate:      &f.plate,
		Image:      &f.image,
		Preview:    a.term,
	}, a.api, a.portalOptions())
	return g, f, err
}

func newGateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Resident entry and guest tickets",
	}
	cmd.AddCommand(
		gateAction(a, "face", "Recognize the resident at the camera", cobra.NoArgs,
			func(ctx context.Context, g *portal.Gate, _ *gateForm, _ []string) portal.Outcome {
				return g.ResidentFace(ctx)
			}),
		gateAction(a, "backup <code>", "Open the gate with a backup code", cobra.MaximumNArgs(1),
			func(ctx context.Context, g *portal.Gate, f *gateForm, args []string) portal.Outcome {
				f.backup.SetValue(firstArg(args))
				return g.BackupLogin(ctx)
			}),
		gateAction(a, "checkout <ticket>", "Settle a guest ticket", cobra.MaximumNArgs(1),
			func(ctx context.Context, g *portal.Gate, f *gateForm, args []string) portal.Outcome {
				f.ticket.SetValue(firstArg(args))
				return g.GuestCheckout(ctx)
			}),
		newCheckinCmd(a),
		newPreviewCmd(a),
	)
	return cmd
}

type gateRun func(ctx context.Context, g *portal.Gate, f *gateForm, args []string) portal.Outcome

func gateAction(a *app, use, short string, args cobra.PositionalArgs, run gateRun) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, f, err := a.newGate()
			if err != nil {
				return err
			}
			return outcomeErr(run(cmd.Context(), g, f, args))
		},
	}
}

func newCheckinCmd(a *app) *cobra.Command {
	var plate, image string
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Issue a guest ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, f, err := a.newGate()
			if err != nil {
				return err
			}
			f.plate.SetValue(plate)
			f.image.Path = image
			return outcomeErr(g.GuestCheckin(cmd.Context()))
		},
	}
	cmd.Flags().StringVar(&plate, "plate", "", "licence plate")
	cmd.Flags().StringVar(&image, "image", "", "entry snapshot file")
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <image>",
		Short: "Check an image file locally without uploading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, f, err := a.newGate()
			if err != nil {
				return err
			}
			f.image.Path = args[0]
			if !g.PreviewImage() {
				a.term.Alert("Please select an image file")
				return outcomeErr(portal.OutcomeBlocked)
			}
			return nil
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
