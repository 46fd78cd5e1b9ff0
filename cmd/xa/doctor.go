package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sys/execabs"

	"github.com/tmc/xa"
	"github.com/tmc/xa/internal/system"
	"github.com/tmc/xa/internal/tcc"
)

type check struct {
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status" yaml:"status"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

const (
	statusOK   = "ok"
	statusWarn = "warn"
	statusFail = "fail"
)

type report struct {
	Checks     []check     `json:"checks" yaml:"checks"`
	Automation []tcc.Entry `json:"automation,omitempty" yaml:"automation,omitempty"`
}

func (r report) result() result {
	rows := make([][]string, 0, len(r.Checks)+len(r.Automation))
	for _, c := range r.Checks {
		rows = append(rows, []string{c.Name, c.Status, c.Detail})
	}
	for _, e := range r.Automation {
		status := "denied"
		if e.Allowed {
			status = "allowed"
		}
		detail := e.Client
		if !e.LastModified.IsZero() {
			detail += " (" + e.LastModified.Local().Format(time.DateTime) + ")"
		}
		rows = append(rows, []string{"automation " + e.Target, status, detail})
	}
	return result{data: r, headers: []string{"CHECK", "STATUS", "DETAIL"}, rows: rows}
}

func (c *cli) doctorCmd() *cobra.Command {
	var (
		client string
		reset  bool
		open   bool
	)
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Report what xa needs to script applications",
		Long: `Check the macOS version, the osascript binary and Automation consent.

Automation consent is read from the TCC database, which needs Full Disk
Access. --client limits the report to one client; it defaults to the
terminal xa runs in. --reset forgets the client's Automation consent so
macOS asks again, and --open shows the Automation settings pane.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.sess.Config()
			logger := c.sess.Logger()

			if reset {
				if client == "" {
					return fmt.Errorf("--reset needs --client")
				}
				if err := tcc.ResetAutomation(ctx, logger, client); err != nil {
					return err
				}
			}
			if open {
				pane, err := tcc.PaneURL("automation")
				if err != nil {
					return err
				}
				if err := c.sess.OpenURL(ctx, pane); err != nil {
					return err
				}
			}

			var r report
			if v, err := system.Current(ctx); err != nil {
				r.Checks = append(r.Checks, check{"macos", statusWarn, err.Error()})
			} else {
				r.Checks = append(r.Checks, check{"macos", statusOK, v.String() + " " + v.ReleaseName()})
			}

			osascript := cfg.Osascript
			if osascript == "" {
				osascript = "osascript"
			}
			if path, err := execabs.LookPath(osascript); err != nil {
				r.Checks = append(r.Checks, check{"osascript", statusFail, err.Error()})
			} else {
				r.Checks = append(r.Checks, check{"osascript", statusOK, path})
			}

			r.Checks = append(r.Checks, check{"adapters", statusOK, fmt.Sprintf("%d registered", len(xa.Adapters()))})

			db, err := tcc.Open(cfg.TCCDatabase)
			if err != nil {
				r.Checks = append(r.Checks, check{"tcc", statusWarn, err.Error()})
				return c.print(cmd, r.result())
			}
			defer db.Close()
			r.Checks = append(r.Checks, check{"tcc", statusOK, "readable"})
			if reset {
				r.Checks = append(r.Checks, check{"reset", statusOK, "Automation consent of " + client + " reset"})
			}

			if r.Automation, err = db.AutomationEntries(ctx, client); err != nil {
				return err
			}
			if client != "" && len(r.Automation) == 0 {
				r.Checks = append(r.Checks, check{"automation", statusWarn, client + " has not been asked to control any application yet"})
			}
			return c.print(cmd, r.result())
		},
	}
	f := cmd.Flags()
	f.StringVar(&client, "client", os.Getenv("__CFBundleIdentifier"), "Bundle id or path of the client to report on")
	f.BoolVar(&reset, "reset", false, "Reset the client's Automation consent")
	f.BoolVar(&open, "open", false, "Open the Automation settings pane")
	return cmd
}
