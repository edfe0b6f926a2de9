// Package cli implements gatectl, a terminal front end that mounts the portal
// controllers on text views.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"parkgate/internal/apiclient"
	"parkgate/internal/config"
	"parkgate/internal/logx"
	"parkgate/internal/portal"
)

// ErrNotSucceeded is returned when an action settled other than succeeded. The
// outcome was already printed, so callers only need the exit status.
var ErrNotSucceeded = errors.New("action did not succeed")

func outcomeErr(o portal.Outcome) error {
	if o == portal.OutcomeSucceeded {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotSucceeded, o)
}

// API is the part of the parking API gatectl drives.
type API interface {
	portal.GateAPI
	portal.ReportAPI
	portal.SupportAPI
}

// Options wires gatectl to its streams. NewAPI defaults to the HTTP client.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Color  bool
	NewAPI func(p *config.Profile) API
}

type app struct {
	opts        Options
	profilePath string
	apiURL      string
	verbose     bool

	profile  *config.Profile
	api      API
	term     *Terminal
	renderer *portal.Renderer
	log      *zerolog.Logger
	latch    *portal.Latch
}

// Run executes gatectl with args.
func Run(args []string, opts Options) error {
	root := NewRootCmd(opts)
	root.SetArgs(args)
	return root.Execute()
}

// Main is the entry point used by cmd/gatectl.
func Main() int {
	err := Run(os.Args[1:], Options{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Color:  ColorEnabled(),
	})
	if err == nil {
		return 0
	}
	if !errors.Is(err, ErrNotSucceeded) {
		fmt.Fprintln(os.Stderr, "gatectl:", err)
	}
	return 1
}

func NewRootCmd(opts Options) *cobra.Command {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.NewAPI == nil {
		opts.NewAPI = func(p *config.Profile) API {
			return apiclient.New(p.APIURL, time.Duration(p.TimeoutSec)*time.Second)
		}
	}
	a := &app{opts: opts}

	cmd := &cobra.Command{
		Use:           "gatectl",
		Short:         "Parking gate terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)

	fs := cmd.PersistentFlags()
	fs.StringVarP(&a.profilePath, "profile", "p", "", "profile yaml path (searched when empty)")
	fs.StringVar(&a.apiURL, "api-url", "", "API base URL, overrides the profile")
	fs.BoolVarP(&a.verbose, "verbose", "v", false, "log API failures to stderr")

	cmd.AddCommand(
		newGateCmd(a),
		newReportCmd(a),
		newSupportCmd(a),
		newKioskCmd(a),
	)
	return cmd
}

func (a *app) setup() error {
	p, err := config.LoadProfile(a.profilePath)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if a.apiURL != "" {
		p.APIURL = strings.TrimSpace(a.apiURL)
	}
	renderer, err := portal.NewRenderer(p.Locale, p.Currency)
	if err != nil {
		return err
	}
	a.profile = p
	a.renderer = renderer
	a.api = a.opts.NewAPI(p)
	a.term = NewTerminal(a.opts.Stdout, a.opts.Color)
	a.latch = portal.NewLatch()
	if a.verbose {
		l := logx.Component(logx.New(a.opts.Stderr, time.Local), "gatectl")
		a.log = &l
	}
	return nil
}

func (a *app) portalOptions() portal.Options {
	return portal.Options{Renderer: a.renderer, Logger: a.log, Latch: a.latch}
}
