// Package xa controls macOS applications through Apple Events.
//
// xa wraps the scripting objects of other applications (windows, documents,
// tabs, reminders, notes, ...) in Go values. Programs are written as JavaScript
// for Automation and run through osascript; results come back as a tagged
// Value. Workspace operations such as finding, launching and hiding
// applications go through NSWorkspace and LaunchServices.
//
// # Basic Usage
//
// Ask for an application by name. A running application is attached to;
// otherwise it is launched hidden in the background:
//
//	safari, err := xa.Open(ctx, "Safari")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	names, err := safari.Windows().Strings(ctx, "name")
//
// # Sessions
//
// The package-level functions use a default Session configured from XA_
// environment variables. Build your own for more control:
//
//	cfg := xa.NewConfig().
//	    WithLaunchTimeout(30 * time.Second).
//	    WithDebug()
//	sess := xa.NewSession(cfg)
//	notes, err := sess.Application(ctx, "Notes")
//
// # Objects and Lists
//
// An Object is a lazily evaluated object specifier. Get and Set read and
// write properties by name; snake_case names are camel-cased. A List is an
// element collection: Property reads one property of every element in a
// single round trip, By finds an element by property value, and Filter
// narrows the collection with a predicate evaluated by the application:
//
//	p := predicate.New().AddBeginsWith("name", "Re").AddEqual("visible", true)
//	windows, err := safari.Windows().Filter(p)
//
// # Errors
//
// Failures are returned as *Error values carrying the operation, the OSA
// error number and a hint. Match the cause with errors.Is:
//
//	if errors.Is(err, xa.ErrNotAuthorized) {
//	    // grant Automation access in System Settings, or run "xa doctor"
//	}
//
// # Adapters
//
// Typed adapters for common applications live under apps/, e.g.
// github.com/tmc/xa/apps/safari. Import github.com/tmc/xa/apps/all to
// register all of them.
//
// # Environment Variables
//
//   - XA_DEBUG=1: log every script
//   - XA_OSASCRIPT: osascript binary
//   - XA_SCRIPT_TIMEOUT, XA_LAUNCH_TIMEOUT, XA_POLL_INTERVAL: durations
//   - XA_LAUNCH_VISIBLE=1: launch applications in the foreground
//   - XA_TCC_DB: path of the TCC database read by "xa doctor"
//   - XA_LOG_DEST, XA_LOG_JSON, XA_LOG_TIME, XA_LOG_LEVEL: log output
package xa
