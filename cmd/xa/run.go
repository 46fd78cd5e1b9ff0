package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmc/xa/aevent"
	"github.com/tmc/xa/keyboard"
)

func (c *cli) runCmd() *cobra.Command {
	var (
		lang string
		expr string
	)
	cmd := &cobra.Command{
		Use:   "run [file|-] [arg...]",
		Short: "Run a script",
		Long: `Run a JavaScript for Automation function body or an AppleScript program
read from a file, from standard input ('-') or from -e. A JXA body should end
in a return statement; its result is printed. Remaining arguments are
passed to the script.`,
		Example: `  xa run -e 'return Application("Finder").name();'
  xa run -l AppleScript -e 'tell application "Finder" to get name'
  echo 'return 1 + 1;' | xa run -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := expr
			if src == "" {
				if len(args) == 0 {
					return fmt.Errorf("no script: give a file, '-' or -e")
				}
				b, err := readSource(cmd.InOrStdin(), args[0])
				if err != nil {
					return err
				}
				src, args = string(b), args[1:]
			}
			ctx := cmd.Context()
			switch strings.ToLower(lang) {
			case "applescript", "as":
				out, err := c.sess.RunAppleScript(ctx, src, args...)
				if err != nil {
					return err
				}
				return c.print(cmd, result{data: out, text: out})
			case "javascript", "js", "jxa":
				v, err := c.sess.RunJXA(ctx, src, args...)
				if err != nil {
					return err
				}
				return c.print(cmd, result{data: v, text: v.String()})
			}
			return fmt.Errorf("unknown language %q (want JavaScript or AppleScript)", lang)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&lang, "language", "l", "JavaScript", "Script language: JavaScript or AppleScript")
	f.StringVarP(&expr, "expr", "e", "", "Script source")
	return cmd
}

func readSource(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

// eventValue reads an Apple Event parameter: integers, true and false keep
// their type, "file:" names a file and anything else is text.
func eventValue(s string) any {
	switch {
	case strings.HasPrefix(s, "file:"):
		return aevent.File(strings.TrimPrefix(s, "file:"))
	case s == "true" || s == "false":
		return s == "true"
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}

func (c *cli) eventCmd() *cobra.Command {
	var (
		bundle  string
		direct  string
		params  []string
		noReply bool
		timeout time.Duration
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "event <class> <id>",
		Short: "Send a raw Apple Event",
		Long: `Send an Apple Event to the application with the given bundle id. Class,
id and parameter keys are four-character codes or symbolic names such as
kCoreEventClass and kAEQuitApplication.`,
		Example: `  xa event aevt quit --bundle com.apple.TextEdit
  xa event kCoreEventClass kAEOpenDocuments --bundle com.apple.TextEdit --direct file:/tmp/a.txt
  xa event GURL GURL --bundle com.apple.Safari --direct https://example.com`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if bundle == "" {
				return fmt.Errorf("--bundle is required")
			}
			class, err := aevent.Parse(args[0])
			if err != nil {
				return err
			}
			id, err := aevent.Parse(args[1])
			if err != nil {
				return err
			}
			e := aevent.New(class, id, bundle).WithTimeout(timeout)
			if direct != "" {
				e.WithDirect(eventValue(direct))
			}
			for _, p := range params {
				k, v, ok := strings.Cut(p, "=")
				if !ok {
					return fmt.Errorf("parameter %q: want key=value", p)
				}
				key, err := aevent.Parse(k)
				if err != nil {
					return err
				}
				e.WithParam(key, eventValue(v))
			}
			if noReply {
				e.WithMode(aevent.NoReply)
			}
			if dryRun {
				src, err := e.Script()
				if err != nil {
					return err
				}
				return c.print(cmd, result{data: src, text: src})
			}
			out, err := aevent.Send(cmd.Context(), c.sess.Runner(), e)
			if err != nil {
				return err
			}
			return c.print(cmd, result{data: out, text: out})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&bundle, "bundle", "b", "", "Bundle id of the target application")
	f.StringVarP(&direct, "direct", "d", "", "Direct parameter")
	f.StringArrayVarP(&params, "param", "p", nil, "Keyword parameter as key=value (repeatable)")
	f.BoolVar(&noReply, "no-reply", false, "Do not wait for a reply")
	f.DurationVar(&timeout, "timeout", 0, "Reply timeout (default: the Apple Event Manager's)")
	f.BoolVar(&dryRun, "print", false, "Print the AppleScript instead of sending it")
	return cmd
}

func powerActions() []string {
	names := make([]string, 0, len(aevent.Power))
	for name := range aevent.Power {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *cli) powerCmd() *cobra.Command {
	actions := powerActions()
	return &cobra.Command{
		Use:       "power <action>",
		Short:     "Sleep, log out, restart or shut down",
		Long:      "Ask the login window to change the power state. Actions without -now show a confirmation dialog: " + strings.Join(actions, ", ") + ".",
		ValidArgs: actions,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := aevent.Power[args[0]](cmd.Context(), c.sess.Runner()); err != nil {
				return err
			}
			return c.ok(cmd, args[0])
		},
	}
}

func (c *cli) keysCmd() *cobra.Command {
	var (
		pid   int
		app   string
		text  string
		delay time.Duration
	)
	cmd := &cobra.Command{
		Use:   "keys [combo...]",
		Short: "Press key combinations or type text",
		Long: `Post keyboard events through the window server, to the frontmost
application or to one process. Combinations look like cmd+shift+s;
run 'xa keys --list' for key names. Posting needs Accessibility permission.`,
		Example: `  xa keys cmd+space
  xa keys --app TextEdit --type 'hello'
  xa keys --pid 123 cmd+s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list"); list {
				keys := keyboard.Keys()
				rows := make([][]string, len(keys))
				for i, k := range keys {
					code, _ := keyboard.KeyCode(k)
					rows[i] = []string{k, strconv.Itoa(int(code))}
				}
				return c.print(cmd, result{data: keys, headers: []string{"KEY", "CODE"}, rows: rows})
			}
			if len(args) == 0 && text == "" {
				return fmt.Errorf("nothing to press: give combinations or --type")
			}
			combos := make([]keyboard.Combo, len(args))
			for i, a := range args {
				k, err := keyboard.Parse(a)
				if err != nil {
					return err
				}
				combos[i] = k
			}
			ctx := cmd.Context()
			if app != "" {
				a, err := c.runningApp(ctx, app)
				if err != nil {
					return err
				}
				pid = a.PID()
			}
			kb := keyboard.New(c.sess.Logger()).ForPID(pid)
			kb.Delay = delay
			for _, k := range combos {
				if err := kb.Press(ctx, k); err != nil {
					return err
				}
			}
			if text != "" {
				return kb.Type(ctx, text)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&pid, "pid", 0, "Send to this process instead of the frontmost application")
	f.StringVar(&app, "app", "", "Send to this running application")
	f.StringVarP(&text, "type", "t", "", "Text to type after the combinations")
	f.DurationVar(&delay, "delay", 0, "Delay between keystrokes (default 30ms)")
	f.Bool("list", false, "List key names")
	return cmd
}
