package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmc/xa"
)

func (c *cli) appsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List applications with a typed adapter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapters := xa.Adapters()
			rows := make([][]string, len(adapters))
			for i, a := range adapters {
				rows[i] = []string{a.Name, a.BundleID, strings.Join(a.Aliases, ", "), a.Package}
			}
			return c.print(cmd, result{
				data:    adapters,
				headers: []string{"NAME", "BUNDLE ID", "ALIASES", "PACKAGE"},
				rows:    rows,
			})
		},
	}
}

func appInfoResult(infos []xa.AppInfo) result {
	rows := make([][]string, len(infos))
	for i, a := range infos {
		var state []string
		if a.Active {
			state = append(state, "active")
		}
		if a.Hidden {
			state = append(state, "hidden")
		}
		rows[i] = []string{a.Name, a.BundleID, strconv.Itoa(a.PID), strings.Join(state, ",")}
	}
	return result{
		data:    infos,
		headers: []string{"NAME", "BUNDLE ID", "PID", "STATE"},
		rows:    rows,
	}
}

func infos(apps []*xa.Application) []xa.AppInfo {
	out := make([]xa.AppInfo, len(apps))
	for i, a := range apps {
		out[i] = a.Info()
	}
	return out
}

func (c *cli) runningCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "running",
		Short: "List running applications",
		Long:  "List applications that own a window on screen, front to back. With --all, list every running application.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if all {
				list, err := c.sess.Workspace().RunningApplications(ctx)
				if err != nil {
					return err
				}
				return c.print(cmd, appInfoResult(list))
			}
			apps, err := c.sess.RunningApplications(ctx)
			if err != nil {
				return err
			}
			return c.print(cmd, appInfoResult(infos(apps)))
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include applications without windows")
	return cmd
}

func (c *cli) frontmostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frontmost",
		Short: "Show the frontmost application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.sess.CurrentApplication(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(cmd, appInfoResult([]xa.AppInfo{app.Info()}))
		},
	}
}

func (c *cli) launchCmd() *cobra.Command {
	var background bool
	cmd := &cobra.Command{
		Use:   "launch <app>",
		Short: "Launch an application",
		Long:  "Launch and activate an application, or attach to it when it is already running. With --background it stays hidden.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				app *xa.Application
				err error
			)
			if background {
				app, err = c.sess.Application(ctx, args[0])
			} else {
				app, err = c.sess.LaunchApplication(ctx, args[0])
			}
			if err != nil {
				return err
			}
			return c.print(cmd, appInfoResult([]xa.AppInfo{app.Info()}))
		},
	}
	cmd.Flags().BoolVarP(&background, "background", "b", false, "Launch hidden without activating")
	return cmd
}

// runningApp returns name only when it is already running, so commands
// that act on a running application never launch it.
func (c *cli) runningApp(ctx context.Context, name string) (*xa.Application, error) {
	list, err := c.sess.Workspace().RunningApplications(ctx)
	if err != nil {
		return nil, err
	}
	want := strings.TrimSuffix(name, ".app")
	var bundleID string
	if a, ok := xa.Lookup(name); ok {
		want, bundleID = a.Name, a.BundleID
	}
	for _, info := range list {
		base := strings.TrimSuffix(filepath.Base(info.Path), ".app")
		if strings.EqualFold(info.Name, want) || strings.EqualFold(info.BundleID, name) ||
			(bundleID != "" && strings.EqualFold(info.BundleID, bundleID)) ||
			(info.Path != "" && (info.Path == name || strings.EqualFold(base, want))) {
			return c.sess.Application(ctx, info.Name)
		}
	}
	return nil, fmt.Errorf("%s is not running", name)
}

func (c *cli) quitCmd() *cobra.Command {
	var (
		wait    bool
		force   bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "quit <app>",
		Short: "Quit a running application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := c.runningApp(ctx, args[0])
			if err != nil {
				return err
			}
			if force {
				err = app.Terminate(ctx)
			} else {
				err = app.Quit(ctx)
			}
			if err != nil {
				return err
			}
			if wait {
				wctx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()
				if err := app.WaitForExit(wctx); err != nil {
					return err
				}
			}
			return c.ok(cmd, "quit "+app.Name())
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&wait, "wait", "w", false, "Wait for the process to exit")
	f.BoolVarP(&force, "force", "f", false, "Terminate through the workspace instead of sending quit")
	f.DurationVar(&timeout, "timeout", 30*time.Second, "How long --wait waits")
	return cmd
}

func (c *cli) lifecycleCmd(verb, short string, fn func(*xa.Application, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <app>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := c.runningApp(ctx, args[0])
			if err != nil {
				return err
			}
			if err := fn(app, ctx); err != nil {
				return err
			}
			return c.ok(cmd, verb+" "+app.Name())
		},
	}
}

func (c *cli) windowsCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "windows [app]",
		Short: "List on-screen windows",
		Long:  "List windows from the window server, optionally only those of one running application. This works for applications that are not scriptable.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pid := 0
			if len(args) == 1 {
				app, err := c.runningApp(ctx, args[0])
				if err != nil {
					return err
				}
				pid = app.PID()
			}
			windows, err := c.sess.Workspace().Windows(ctx, !all)
			if err != nil {
				return err
			}
			var (
				out  []xa.WindowInfo
				rows [][]string
			)
			for _, w := range windows {
				if pid != 0 && w.OwnerPID != pid {
					continue
				}
				out = append(out, w)
				rows = append(rows, []string{
					strconv.Itoa(w.ID),
					w.OwnerName,
					strconv.Itoa(w.OwnerPID),
					w.Name,
					fmt.Sprintf("%gx%g+%g+%g", w.Width, w.Height, w.X, w.Y),
				})
			}
			if rows == nil {
				rows = [][]string{}
			}
			return c.print(cmd, result{
				data:    out,
				headers: []string{"ID", "APP", "PID", "NAME", "BOUNDS"},
				rows:    rows,
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include off-screen windows")
	return cmd
}
