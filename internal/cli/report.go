package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"parkgate/internal/portal"
)

func newReportCmd(a *app) *cobra.Command {
	var date string
	var detail bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the daily report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("date") {
				date = time.Now().Format("2006-01-02")
			}
			return outcomeErr(a.loadReport(cmd, strings.TrimSpace(date), detail))
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to report, YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&detail, "detail", false, "list guest sessions")
	return cmd
}

func (a *app) loadReport(cmd *cobra.Command, date string, detail bool) portal.Outcome {
	admin, err := portal.NewAdmin(portal.AdminView{
		Date:    &Field{value: date},
		Summary: a.term.Region(),
		Detail:  a.term.Region(),
		Alert:   a.term,
	}, a.api, a.portalOptions())
	if err != nil {
		a.term.Alert(err.Error())
		return portal.OutcomeFailed
	}
	return admin.Load(cmd.Context(), detail)
}

func newSupportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "support <message...>",
		Short: "Send a request to the administrators",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := portal.NewResident(portal.ResidentView{
				Content: &Field{value: strings.Join(args, " ")},
				Result:  a.term.Region(),
				Alert:   a.term,
			}, a.api, a.portalOptions())
			if err != nil {
				return err
			}
			return outcomeErr(res.Submit(cmd.Context()))
		},
	}
}
