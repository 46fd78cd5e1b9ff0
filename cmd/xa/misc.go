package main

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmc/xa/clipboard"
	"github.com/tmc/xa/dialog"
)

// openTarget turns a file path into a file URL and leaves URLs alone.
func openTarget(s string) (string, error) {
	if u, err := url.Parse(s); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return s, nil
	}
	abs, err := filepath.Abs(s)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: abs}).String(), nil
}

func (c *cli) openCmd() *cobra.Command {
	var app string
	cmd := &cobra.Command{
		Use:   "open <url|path>...",
		Short: "Open URLs or files",
		Long:  "Open URLs and files with their default handlers, or with --app in the named application.",
		Example: `  xa open https://example.com
  xa open --app TextEdit notes.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if app != "" {
				a, err := c.application(cmd, app)
				if err != nil {
					return err
				}
				paths := make([]string, len(args))
				for i, p := range args {
					if paths[i], err = filepath.Abs(p); err != nil {
						return err
					}
				}
				if err := a.Open(ctx, paths...); err != nil {
					return err
				}
				return c.ok(cmd, fmt.Sprintf("opened %d item(s) in %s", len(paths), a.Name()))
			}
			for _, arg := range args {
				target, err := openTarget(arg)
				if err != nil {
					return err
				}
				if err := c.sess.OpenURL(ctx, target); err != nil {
					return err
				}
			}
			return c.ok(cmd, fmt.Sprintf("opened %d item(s)", len(args)))
		},
	}
	cmd.Flags().StringVarP(&app, "app", "a", "", "Application to open the items with")
	return cmd
}

func (c *cli) dialogCmd() *cobra.Command {
	var (
		d       dialog.Dialog
		icon    string
		alert   bool
		kind    string
		detail  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "dialog <text>",
		Short: "Show a dialog and print the answer",
		Long:  "Show a dialog, or an alert with --alert, and print the button pressed and any text entered. Pressing the cancel button exits with an error.",
		Example: `  xa dialog 'Continue?' --button No --button Yes --default Yes
  xa dialog 'Your name' --input --answer Ada
  xa dialog 'Disk full' --alert --kind critical --detail 'Free some space'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				resp dialog.Response
				err  error
			)
			if alert {
				resp, err = dialog.ShowAlert(ctx, c.sess, dialog.Alert{
					Message:       args[0],
					Detail:        detail,
					Kind:          dialog.AlertKind(kind),
					Buttons:       d.Buttons,
					DefaultButton: d.DefaultButton,
					CancelButton:  d.CancelButton,
					GiveUpAfter:   timeout,
				})
			} else {
				d.Text = args[0]
				d.Icon = dialog.Icon(icon)
				d.GiveUpAfter = timeout
				resp, err = dialog.Show(ctx, c.sess, d)
			}
			if err != nil {
				return err
			}
			rows := [][]string{{"button", resp.Button}}
			if d.Input {
				rows = append(rows, []string{"text", resp.Text})
			}
			if resp.GaveUp {
				rows = append(rows, []string{"gave up", strconv.FormatBool(resp.GaveUp)})
			}
			r := result{data: resp, headers: []string{"FIELD", "VALUE"}, rows: rows}
			if !d.Input && !resp.GaveUp {
				r.rows, r.text = nil, resp.Button
			}
			return c.print(cmd, r)
		},
	}
	f := cmd.Flags()
	f.StringVar(&d.Title, "title", "", "Window title")
	f.StringArrayVar(&d.Buttons, "button", nil, "Button label (repeatable, up to three)")
	f.StringVar(&d.DefaultButton, "default", "", "Default button")
	f.StringVar(&d.CancelButton, "cancel", "", "Cancel button")
	f.StringVar(&icon, "icon", "", "Icon: stop, note or caution")
	f.BoolVar(&d.Input, "input", false, "Ask for text")
	f.StringVar(&d.Answer, "answer", "", "Initial text of the input field")
	f.BoolVar(&d.HiddenAnswer, "hidden", false, "Hide the typed text")
	f.DurationVar(&timeout, "timeout", 0, "Dismiss the dialog after this long")
	f.BoolVar(&alert, "alert", false, "Show an alert instead of a dialog")
	f.StringVar(&kind, "kind", "", "Alert kind: informational, warning or critical")
	f.StringVar(&detail, "detail", "", "Alert detail text")
	return cmd
}

func (c *cli) notifyCmd() *cobra.Command {
	var n dialog.Notification
	cmd := &cobra.Command{
		Use:   "notify <message>",
		Short: "Post a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n.Message = args[0]
			if err := dialog.Notify(cmd.Context(), c.sess, n); err != nil {
				return err
			}
			return c.ok(cmd, "posted")
		},
	}
	f := cmd.Flags()
	f.StringVar(&n.Title, "title", "", "Notification title")
	f.StringVar(&n.Subtitle, "subtitle", "", "Notification subtitle")
	f.StringVar(&n.Sound, "sound", "", "Sound name, such as Glass")
	return cmd
}

func (c *cli) clipboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipboard",
		Short: "Read and write the clipboard",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print the clipboard text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := clipboard.Get(cmd.Context(), c.sess)
			if err != nil {
				return err
			}
			return c.print(cmd, result{data: text, text: text})
		},
	}

	var files bool
	set := &cobra.Command{
		Use:   "set [text|-]",
		Short: "Replace the clipboard contents",
		Long:  "Replace the clipboard with text, with standard input when the argument is '-' or missing, or with file references when --files is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if files {
				if len(args) == 0 {
					return fmt.Errorf("--files needs at least one path")
				}
				paths := make([]string, len(args))
				for i, p := range args {
					abs, err := filepath.Abs(p)
					if err != nil {
						return err
					}
					paths[i] = abs
				}
				return clipboard.SetFiles(ctx, c.sess, paths...)
			}
			var text string
			if len(args) == 0 || args[0] == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = strings.TrimSuffix(string(b), "\n")
			} else {
				text = strings.Join(args, " ")
			}
			return clipboard.Set(ctx, c.sess, text)
		},
	}
	set.Flags().BoolVar(&files, "files", false, "Place file references instead of text")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clipboard.Clear(cmd.Context(), c.sess)
		},
	}

	info := &cobra.Command{
		Use:   "info",
		Short: "List the types on the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := clipboard.Info(cmd.Context(), c.sess)
			if err != nil {
				return err
			}
			rows := make([][]string, len(types))
			for i, t := range types {
				rows[i] = []string{t.Class, strconv.FormatInt(t.Size, 10)}
			}
			return c.print(cmd, result{data: types, headers: []string{"CLASS", "SIZE"}, rows: rows})
		},
	}

	cmd.AddCommand(get, set, clearCmd, info)
	return cmd
}
