// Package automator scripts Automator: workflows, their actions and
// variables, and running them.
package automator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/tmc/xa"
)

const (
	Name     = "Automator"
	BundleID = "com.apple.Automator"
)

func init() {
	xa.Register(xa.Adapter{Name: Name, BundleID: BundleID, Package: "github.com/tmc/xa/apps/automator"})
}

// Application is Automator.
type Application struct {
	*xa.Application
}

// Open returns Automator, launching it hidden when it is not running.
func Open(ctx context.Context, sess *xa.Session) (*Application, error) {
	app, err := sess.Application(ctx, Name)
	if err != nil {
		return nil, err
	}
	return New(app), nil
}

// New wraps an application resolved elsewhere.
func New(app *xa.Application) *Application {
	return &Application{Application: app}
}

func (a *Application) Workflows() *xa.List[*Workflow] {
	return xa.NewList(a.Object, "workflows", newWorkflow)
}
func (a *Application) Actions() *xa.List[*Action] {
	return xa.NewList(a.Object, "automatorActions", newAction)
}
func (a *Application) Variables() *xa.List[*Variable] {
	return xa.NewList(a.Object, "variables", newVariable)
}

// OpenWorkflow opens the workflow file at path and returns it.
func (a *Application) OpenWorkflow(ctx context.Context, path string) (*Workflow, error) {
	v, err := a.Invoke(ctx, "open", xa.Path(path), nil)
	if err != nil {
		return nil, err
	}
	if o := v.Object(); o != nil {
		return newWorkflow(o), nil
	}
	return a.Workflows().ByName(filepath.Base(path)), nil
}

// NewWorkflow creates an empty workflow document.
func (a *Application) NewWorkflow(ctx context.Context, name string) (*Workflow, error) {
	return a.Workflows().Push(ctx, "workflow", map[string]any{"name": name})
}

// Add inserts action into workflow at index. A negative index appends it.
func (a *Application) Add(ctx context.Context, action *Action, workflow *Workflow, index int) error {
	params := map[string]any{"to": workflow}
	if index >= 0 {
		params["atIndex"] = index
	}
	_, err := a.Invoke(ctx, "add", action, params)
	return err
}

// Workflow is an open workflow document.
type Workflow struct {
	*xa.Object
}

func newWorkflow(o *xa.Object) *Workflow { return &Workflow{Object: o} }

func (w *Workflow) Name(ctx context.Context) (string, error)   { return w.GetString(ctx, "name") }
func (w *Workflow) Path(ctx context.Context) (string, error)   { return w.GetString(ctx, "path") }
func (w *Workflow) Modified(ctx context.Context) (bool, error) { return w.GetBool(ctx, "modified") }
func (w *Workflow) ExecutionID(ctx context.Context) (string, error) {
	return w.GetString(ctx, "executionId")
}
func (w *Workflow) ExecutionResult(ctx context.Context) (xa.Value, error) {
	return w.Get(ctx, "executionResult")
}

func (w *Workflow) Actions() *xa.List[*Action] {
	return xa.NewList(w.Object, "automatorActions", newAction)
}
func (w *Workflow) Variables() *xa.List[*Variable] {
	return xa.NewList(w.Object, "variables", newVariable)
}

// CurrentAction returns the action running now.
func (w *Workflow) CurrentAction() *Action { return newAction(w.Element("currentAction")) }

// Execute runs the workflow and returns its result. A run that fails
// inside an action is reported as an *ExecutionError.
func (w *Workflow) Execute(ctx context.Context) (xa.Value, error) {
	body := "var w = " + w.JS() + ";\n" +
		"var r = w.execute();\n" +
		"return {result: r, number: w.executionErrorNumber(), message: w.executionErrorMessage()};"
	v, err := w.Eval(ctx, "execute workflow", body)
	if err != nil {
		return xa.Null, err
	}
	if n := v.Field("number").Int(); n != 0 {
		return xa.Null, &ExecutionError{Workflow: w.JS(), Number: int(n), Message: v.Field("message").Str()}
	}
	return v.Field("result"), nil
}

// Save saves the workflow to its file.
func (w *Workflow) Save(ctx context.Context) error {
	_, err := w.Invoke(ctx, "save", w.Object, nil)
	return err
}

// SaveAs saves the workflow to path as a workflow document.
func (w *Workflow) SaveAs(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("automator: save %s: empty path", w.JS())
	}
	_, err := w.Invoke(ctx, "save", w.Object, map[string]any{"as": "workflow", "in": xa.Path(path)})
	return err
}

// Close closes the workflow without saving it.
func (w *Workflow) Close(ctx context.Context) error {
	_, err := w.Invoke(ctx, "close", w.Object, map[string]any{"saving": "no"})
	return err
}

// ExecutionError reports an action failing while a workflow runs.
type ExecutionError struct {
	Workflow string
	Number   int
	Message  string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("automator: %s failed (%d): %s", e.Workflow, e.Number, e.Message)
}

// Variable is a workflow variable.
type Variable struct {
	*xa.Object
}

func newVariable(o *xa.Object) *Variable { return &Variable{Object: o} }

func (v *Variable) Name(ctx context.Context) (string, error)   { return v.GetString(ctx, "name") }
func (v *Variable) Settable(ctx context.Context) (bool, error) { return v.GetBool(ctx, "settable") }
func (v *Variable) Value(ctx context.Context) (xa.Value, error) {
	return v.Get(ctx, "value")
}

func (v *Variable) SetValue(ctx context.Context, value any) error { return v.Set(ctx, "value", value) }
