package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmc/xa"
	"github.com/tmc/xa/osa"
	"github.com/tmc/xa/predicate"
)

// specPath appends a path such as "windows[0]" or "documents.byName(\"x\")"
// to an application specifier.
func specPath(root, path string) string {
	path = strings.TrimSpace(path)
	switch {
	case path == "" || path == ".":
		return root
	case strings.HasPrefix(path, "[") || strings.HasPrefix(path, "."):
		return root + path
	}
	return root + "." + path
}

// object resolves app and returns the object at path below it.
func (c *cli) object(cmd *cobra.Command, appName, path string) (*xa.Object, error) {
	app, err := c.application(cmd, appName)
	if err != nil {
		return nil, err
	}
	spec, err := xa.ParseSpecifier(specPath(app.JS(), path))
	if err != nil {
		return nil, err
	}
	return c.sess.Object(spec), nil
}

// splitCollection splits "documents[0].paragraphs" into the parent path
// and the collection name.
func splitCollection(path string) (parent, name string, err error) {
	path = strings.TrimSpace(path)
	if i := strings.LastIndex(path, "."); i >= 0 {
		parent, name = path[:i], path[i+1:]
	} else {
		name = path
	}
	if err := osa.JSIdent(name); err != nil {
		return "", "", fmt.Errorf("collection %q must end in an element name: %w", path, err)
	}
	return parent, name, nil
}

// parseLiteral reads a command-line value as JSON when it is one, so that
// 3, true and ["a"] keep their types, and as text otherwise.
func parseLiteral(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

func (c *cli) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <app> <path> [property...]",
		Short: "Read properties of an object",
		Long: `Read properties of the object at path below the application. The path is
a JXA specifier suffix such as 'windows[0]' or 'documents.byName("x")';
use '.' for the application itself. With no property, every property is
read.`,
		Example: `  xa get Safari 'windows[0]' name
  xa get Finder . version name
  xa get Music currentTrack`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			obj, err := c.object(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			props := args[2:]
			if len(props) == 1 {
				v, err := obj.Get(ctx, props[0])
				if err != nil {
					return err
				}
				return c.print(cmd, result{data: v, text: v.String()})
			}
			values := map[string]xa.Value{}
			if len(props) == 0 {
				if values, err = obj.Properties(ctx); err != nil {
					return err
				}
				for k := range values {
					props = append(props, k)
				}
				sort.Strings(props)
			} else {
				for _, p := range props {
					v, err := obj.Get(ctx, p)
					if err != nil {
						return err
					}
					values[p] = v
				}
			}
			rows := make([][]string, len(props))
			for i, p := range props {
				rows[i] = []string{p, values[p].String()}
			}
			return c.print(cmd, result{data: values, headers: []string{"PROPERTY", "VALUE"}, rows: rows})
		},
	}
}

func (c *cli) setCmd() *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "set <app> <path> <property> <value>",
		Short: "Change a property of an object",
		Long:  "Change a property of the object at path. The value is read as JSON when it parses as JSON, so numbers and booleans keep their type; --string always sends text.",
		Example: `  xa set TextEdit 'documents[0]' text 'hello'
  xa set Safari 'windows[0]' visible false`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := c.object(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			var v any = args[3]
			if !text {
				v = parseLiteral(args[3])
			}
			if err := obj.Set(cmd.Context(), args[2], v); err != nil {
				return err
			}
			return c.ok(cmd, fmt.Sprintf("set %s of %s", args[2], obj))
		},
	}
	cmd.Flags().BoolVarP(&text, "string", "s", false, "Send the value as text")
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	var where string
	cmd := &cobra.Command{
		Use:   "list <app> <collection> <property>...",
		Short: "Read properties of every element of a collection",
		Long: `Read properties of every element of a collection in one script per
property. --where narrows the collection with a predicate the application
evaluates, e.g. 'completed == false' or 'name BEGINSWITH "Re"'.`,
		Example: `  xa list Safari windows name id
  xa list Reminders reminders name due_date --where 'completed == false'
  xa list Notes 'folders.byName("Notes").notes' name`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			parentPath, name, err := splitCollection(args[1])
			if err != nil {
				return err
			}
			parent, err := c.object(cmd, args[0], parentPath)
			if err != nil {
				return err
			}
			list := parent.Elements(name)
			if where != "" {
				p, err := predicate.Parse(where)
				if err != nil {
					return err
				}
				if list, err = list.Filter(p); err != nil {
					return err
				}
			}
			props := args[2:]
			columns := make([][]xa.Value, len(props))
			n := -1
			for i, p := range props {
				if columns[i], err = list.Property(ctx, p); err != nil {
					return err
				}
				if n < 0 || len(columns[i]) < n {
					n = len(columns[i])
				}
			}
			data := make([]map[string]xa.Value, n)
			rows := make([][]string, n)
			for j := 0; j < n; j++ {
				data[j] = map[string]xa.Value{}
				rows[j] = make([]string, len(props))
				for i, p := range props {
					data[j][p] = columns[i][j]
					rows[j][i] = columns[i][j].String()
				}
			}
			return c.print(cmd, result{data: data, headers: props, rows: rows})
		},
	}
	cmd.Flags().StringVarP(&where, "where", "w", "", "Predicate selecting elements")
	return cmd
}
