// Package cli is the aoe4analyze command line.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/domino14/aoe4analyze/config"
	"github.com/domino14/aoe4analyze/staticdata"
)

// Version is set at build time.
var Version = "0.1.0"

type styles struct {
	success lipgloss.Style
	failure lipgloss.Style
	hint    lipgloss.Style
	heading lipgloss.Style
	section lipgloss.Style
	title   lipgloss.Style
}

// newStyles picks the color profile of w, so output that is not a terminal
// stays plain.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")),
		hint:    r.NewStyle().Foreground(lipgloss.Color("8")),
		heading: r.NewStyle().Foreground(lipgloss.Color("4")),
		section: r.NewStyle().Foreground(lipgloss.Color("6")),
		title:   r.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
	}
}

// failure is what every command returns when it cannot finish. Execute
// prints it in red and exits with status 1.
type failure struct {
	action string
	err    error
}

func (f *failure) Error() string {
	return "Failed to " + f.action + ": " + f.err.Error()
}

func (f *failure) Unwrap() error { return f.err }

func fail(action string, err error) error {
	return &failure{action: action, err: err}
}

// app is the state shared by one invocation's commands.
type app struct {
	configPath string
	verbose    bool
	cfg        *config.Config
}

func (a *app) store() *staticdata.Store {
	return staticdata.NewStore(a.cfg)
}

func setupLogging(w io.Writer, debug bool) {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "aoe4analyze",
		Short:         "Analyze and inspect static Age of Empires IV data",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.DefaultConfig()
			if err := a.cfg.Load(a.configPath); err != nil {
				return fail("load configuration", err)
			}
			setupLogging(cmd.ErrOrStderr(), a.cfg.Debug || a.verbose)
			log.Debug().Interface("config", a.cfg).Msg("loaded-config")
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./aoe4analyze.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging and full reports")

	root.AddCommand(
		a.fetchDataCmd(),
		a.checkDataCmd(),
		a.upgradeParsingCmd(),
		a.countersCmd(),
		a.analyzeCmd(),
	)
	return root
}

// Run executes one command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, newStyles(stderr).failure.Render(err.Error()))
		return 1
	}
	return 0
}

// Execute runs the process's own command line.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}
