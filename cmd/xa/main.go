// Command xa scripts macOS applications from the shell.
//
// It resolves applications the way the xa package does (attaching to a
// running copy, otherwise launching it hidden) and exposes the typed
// adapters, raw Apple Events, keyboard synthesis and a permission report.
//
//	xa running
//	xa get Safari 'windows[0]' name
//	xa list Reminders reminders name --where 'completed == false'
//	xa doctor
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/tmc/xa"
	_ "github.com/tmc/xa/apps/all"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(&cli{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "xa: %v\n", err)
		os.Exit(1)
	}
}

// cli holds the state shared by every subcommand. Tests fill in sess
// before running a command; otherwise it is built from the configuration
// in PersistentPreRunE.
type cli struct {
	sess *xa.Session

	configPath string
	output     string
	debug      bool
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "xa",
		Short:         "Script macOS applications",
		Long:          "Control scriptable macOS applications through JavaScript for Automation, Apple Events and the accessibility layer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseFormat(c.output); err != nil {
				return err
			}
			return c.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.output, "output", "o", "table", "Output format: table, json or yaml")
	pf.StringVar(&c.configPath, "config", os.Getenv("XA_CONFIG"), "Configuration file (.yaml, .toml or .json)")
	pf.BoolVar(&c.debug, "debug", false, "Log every script to stderr")

	root.AddCommand(
		c.appsCmd(),
		c.runningCmd(),
		c.frontmostCmd(),
		c.launchCmd(),
		c.quitCmd(),
		c.lifecycleCmd("activate", "Bring an application to the front", (*xa.Application).Activate),
		c.lifecycleCmd("hide", "Hide an application", (*xa.Application).Hide),
		c.lifecycleCmd("unhide", "Show a hidden application", (*xa.Application).Unhide),
		c.windowsCmd(),
		c.getCmd(),
		c.setCmd(),
		c.listCmd(),
		c.runCmd(),
		c.eventCmd(),
		c.powerCmd(),
		c.keysCmd(),
		c.sdefCmd(),
		c.doctorCmd(),
		c.openCmd(),
		c.dialogCmd(),
		c.notifyCmd(),
		c.clipboardCmd(),
	)
	return root
}

func (c *cli) setup() error {
	if c.sess != nil {
		return nil
	}
	cfg, err := xa.LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	if c.debug {
		cfg.WithDebug()
	}
	c.sess = xa.NewSession(cfg)
	return nil
}

// application resolves name, launching the application hidden when needed.
func (c *cli) application(cmd *cobra.Command, name string) (*xa.Application, error) {
	return c.sess.Application(cmd.Context(), name)
}
