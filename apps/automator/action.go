package automator

import (
	"context"

	"github.com/tmc/xa"
)

// WarningLevel is how likely an action is to lose data.
type WarningLevel string

const (
	WarningNone         WarningLevel = "none"
	WarningReversible   WarningLevel = "reversible"
	WarningIrreversible WarningLevel = "irreversible"
)

// Action is an Automator action, either installed or placed in a
// workflow.
type Action struct {
	*xa.Object
}

func newAction(o *xa.Object) *Action { return &Action{Object: o} }

func (a *Action) ID(ctx context.Context) (string, error)       { return a.GetString(ctx, "id") }
func (a *Action) Name(ctx context.Context) (string, error)     { return a.GetString(ctx, "name") }
func (a *Action) BundleID(ctx context.Context) (string, error) { return a.GetString(ctx, "bundleId") }
func (a *Action) Comment(ctx context.Context) (string, error)  { return a.GetString(ctx, "comment") }
func (a *Action) Enabled(ctx context.Context) (bool, error)    { return a.GetBool(ctx, "enabled") }
func (a *Action) Index(ctx context.Context) (int, error)       { return a.GetInt(ctx, "index") }
func (a *Action) Path(ctx context.Context) (string, error)     { return a.GetString(ctx, "path") }
func (a *Action) Version(ctx context.Context) (string, error)  { return a.GetString(ctx, "version") }
func (a *Action) IconName(ctx context.Context) (string, error) { return a.GetString(ctx, "iconName") }
func (a *Action) IgnoresInput(ctx context.Context) (bool, error) {
	return a.GetBool(ctx, "ignoresInput")
}
func (a *Action) ShowWhenRun(ctx context.Context) (bool, error) {
	return a.GetBool(ctx, "showActionWhenRun")
}

func (a *Action) Category(ctx context.Context) ([]string, error)   { return a.strings(ctx, "category") }
func (a *Action) Keywords(ctx context.Context) ([]string, error)   { return a.strings(ctx, "keywords") }
func (a *Action) InputTypes(ctx context.Context) ([]string, error) { return a.strings(ctx, "inputTypes") }
func (a *Action) OutputTypes(ctx context.Context) ([]string, error) {
	return a.strings(ctx, "outputTypes")
}
func (a *Action) TargetApplications(ctx context.Context) ([]string, error) {
	return a.strings(ctx, "targetApplication")
}

func (a *Action) strings(ctx context.Context, name string) ([]string, error) {
	v, err := a.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(v.List()))
	for _, s := range v.List() {
		out = append(out, s.Str())
	}
	return out, nil
}

func (a *Action) ExecutionResult(ctx context.Context) (xa.Value, error) {
	return a.Get(ctx, "executionResult")
}
func (a *Action) ExecutionErrorMessage(ctx context.Context) (string, error) {
	return a.GetString(ctx, "executionErrorMessage")
}
func (a *Action) ExecutionErrorNumber(ctx context.Context) (int, error) {
	return a.GetInt(ctx, "executionErrorNumber")
}

func (a *Action) WarningLevel(ctx context.Context) (WarningLevel, error) {
	s, err := a.GetString(ctx, "warningLevel")
	return WarningLevel(s), err
}
func (a *Action) WarningMessage(ctx context.Context) (string, error) {
	return a.GetString(ctx, "warningMessage")
}
func (a *Action) WarningAction(ctx context.Context) (string, error) {
	return a.GetString(ctx, "warningAction")
}

func (a *Action) SetEnabled(ctx context.Context, v bool) error { return a.Set(ctx, "enabled", v) }
func (a *Action) SetComment(ctx context.Context, s string) error {
	return a.Set(ctx, "comment", s)
}
func (a *Action) SetShowWhenRun(ctx context.Context, v bool) error {
	return a.Set(ctx, "showActionWhenRun", v)
}

// ParentWorkflow returns the workflow holding the action.
func (a *Action) ParentWorkflow() *Workflow { return newWorkflow(a.Element("parentWorkflow")) }

func (a *Action) Settings() *xa.List[*Setting] { return xa.NewList(a.Object, "settings", newSetting) }
func (a *Action) RequiredResources() *xa.List[*Resource] {
	return xa.NewList(a.Object, "requiredResources", newResource)
}

// Setting is a named value an action is configured with.
type Setting struct {
	*xa.Object
}

func newSetting(o *xa.Object) *Setting { return &Setting{Object: o} }

func (s *Setting) Name(ctx context.Context) (string, error)           { return s.GetString(ctx, "name") }
func (s *Setting) Value(ctx context.Context) (xa.Value, error)        { return s.Get(ctx, "value") }
func (s *Setting) DefaultValue(ctx context.Context) (xa.Value, error) { return s.Get(ctx, "defaultValue") }

func (s *Setting) SetValue(ctx context.Context, value any) error { return s.Set(ctx, "value", value) }

// Resource is something an action needs in order to run, such as an
// application or a file.
type Resource struct {
	*xa.Object
}

func newResource(o *xa.Object) *Resource { return &Resource{Object: o} }

func (r *Resource) Name(ctx context.Context) (string, error)     { return r.GetString(ctx, "name") }
func (r *Resource) Kind(ctx context.Context) (string, error)     { return r.GetString(ctx, "kind") }
func (r *Resource) Resource(ctx context.Context) (string, error) { return r.GetString(ctx, "resource") }
func (r *Resource) Version(ctx context.Context) (int, error)     { return r.GetInt(ctx, "version") }
