package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmc/xa/internal/plist"
	"github.com/tmc/xa/sdef"
)

// appPath returns name when it already is a bundle path and asks the
// workspace to locate it otherwise.
func (c *cli) appPath(ctx context.Context, name string) (string, error) {
	if strings.HasSuffix(name, ".app") || strings.ContainsRune(name, filepath.Separator) {
		return name, nil
	}
	return c.sess.Workspace().LocateApplication(ctx, name)
}

// dictionary loads the scripting dictionary of app, or parses file when
// it is set.
func (c *cli) dictionary(ctx context.Context, app, file string) (*sdef.Dictionary, error) {
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return sdef.Parse(f)
	}
	if app == "" {
		return nil, fmt.Errorf("give an application or --file")
	}
	path, err := c.appPath(ctx, app)
	if err != nil {
		return nil, err
	}
	info, err := plist.ReadInfo(ctx, path)
	if err != nil {
		c.sess.Logger().Debug("xa: read Info.plist", "path", path, "error", err)
		return sdef.Load(ctx, path)
	}
	if info.ScriptingDefinition == "" && !info.AppleScriptEnabled {
		return nil, fmt.Errorf("%s is not scriptable: its Info.plist declares no scripting dictionary", path)
	}
	c.sess.Logger().Debug("xa: load sdef", "app", app, "path", path, "bundle", info.BundleID)
	d, err := sdef.Load(ctx, path)
	if err == nil {
		return d, nil
	}
	// The sdef tool is missing or failed; the bundle's own file lacks
	// resolved includes but is usually enough.
	file = info.ScriptingDefinitionPath(path)
	if file == "" {
		return nil, err
	}
	f, ferr := os.Open(file)
	if ferr != nil {
		return nil, err
	}
	defer f.Close()
	return sdef.Parse(f)
}

func (c *cli) sdefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sdef",
		Short: "Inspect scripting dictionaries",
	}
	cmd.AddCommand(c.sdefDumpCmd(), c.sdefGenCmd())
	return cmd
}

func (c *cli) sdefDumpCmd() *cobra.Command {
	var (
		file  string
		kind  string
		class string
	)
	cmd := &cobra.Command{
		Use:   "dump [app]",
		Short: "List the commands, classes or enumerations of an application",
		Example: `  xa sdef dump Safari
  xa sdef dump Notes --kind classes
  xa sdef dump Notes --class note`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var app string
			if len(args) == 1 {
				app = args[0]
			}
			d, err := c.dictionary(cmd.Context(), app, file)
			if err != nil {
				return err
			}
			if class != "" {
				return c.print(cmd, classResult(d, class))
			}
			switch kind {
			case "commands":
				return c.print(cmd, commandsResult(d))
			case "classes":
				return c.print(cmd, classesResult(d))
			case "enums", "enumerations":
				return c.print(cmd, enumsResult(d))
			}
			return fmt.Errorf("unknown kind %q (want commands, classes or enums)", kind)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "Read an sdef file instead of asking the application")
	f.StringVarP(&kind, "kind", "k", "commands", "What to list: commands, classes or enums")
	f.StringVarP(&class, "class", "c", "", "List the properties of one class, inherited ones included")
	return cmd
}

func commandsResult(d *sdef.Dictionary) result {
	cmds := d.Commands()
	rows := make([][]string, len(cmds))
	for i, cm := range cmds {
		var params []string
		if cm.DirectParameter != nil {
			params = append(params, "direct")
		}
		for _, p := range cm.Parameters {
			name := p.Name
			if p.IsOptional() {
				name = "[" + name + "]"
			}
			params = append(params, name)
		}
		rows[i] = []string{cm.Name, cm.Code, strings.Join(params, ", "), cm.Description}
	}
	return result{data: cmds, headers: []string{"COMMAND", "CODE", "PARAMETERS", "DESCRIPTION"}, rows: rows}
}

func classesResult(d *sdef.Dictionary) result {
	classes := d.Classes()
	rows := make([][]string, len(classes))
	for i, cl := range classes {
		elems := make([]string, len(cl.Elements))
		for j, e := range cl.Elements {
			elems[j] = e.Type
		}
		rows[i] = []string{cl.Name, cl.Code, cl.Inherits, strings.Join(elems, ", "), cl.Description}
	}
	return result{data: classes, headers: []string{"CLASS", "CODE", "INHERITS", "ELEMENTS", "DESCRIPTION"}, rows: rows}
}

func classResult(d *sdef.Dictionary, name string) result {
	props := d.AllProperties(name)
	rows := make([][]string, len(props))
	for i, p := range props {
		access := "rw"
		if p.ReadOnly() {
			access = "r"
		}
		rows[i] = []string{p.Name, p.Code, p.Type, access, p.Description}
	}
	return result{data: props, headers: []string{"PROPERTY", "CODE", "TYPE", "ACCESS", "DESCRIPTION"}, rows: rows}
}

func enumsResult(d *sdef.Dictionary) result {
	enums := d.Enumerations()
	rows := make([][]string, len(enums))
	for i, e := range enums {
		names := make([]string, len(e.Enumerators))
		for j, v := range e.Enumerators {
			names[j] = v.Name
		}
		rows[i] = []string{e.Name, e.Code, strings.Join(names, ", ")}
	}
	return result{data: enums, headers: []string{"ENUMERATION", "CODE", "VALUES"}, rows: rows}
}

func (c *cli) sdefGenCmd() *cobra.Command {
	var (
		file    string
		out     string
		pkg     string
		classes bool
	)
	cmd := &cobra.Command{
		Use:   "gen [app]",
		Short: "Generate Go constants for an application's enumerations",
		Example: `  xa sdef gen Notes --package notes -o apps/notes/enums.go
  xa sdef gen --file TextEdit.sdef --classes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var app string
			if len(args) == 1 {
				app = args[0]
			}
			d, err := c.dictionary(cmd.Context(), app, file)
			if err != nil {
				return err
			}
			opts := sdef.GenerateOptions{Package: pkg, App: app, Classes: classes}
			if opts.App == "" {
				opts.App = d.Title
			}
			if out == "" || out == "-" {
				return sdef.Generate(cmd.OutOrStdout(), d, opts)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := sdef.Generate(f, d, opts); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "Read an sdef file instead of asking the application")
	f.StringVarP(&out, "out", "O", "", "Output file (default stdout)")
	f.StringVarP(&pkg, "package", "p", "main", "Package clause of the generated file")
	f.BoolVar(&classes, "classes", false, "Also emit class codes")
	return cmd
}
