// Package all registers every application adapter. Import it for its side
// effects when resolving applications by name:
//
//	import _ "github.com/tmc/xa/apps/all"
package all

import (
	_ "github.com/tmc/xa/apps/automator"
	_ "github.com/tmc/xa/apps/calendar"
	_ "github.com/tmc/xa/apps/chromium"
	_ "github.com/tmc/xa/apps/finder"
	_ "github.com/tmc/xa/apps/messages"
	_ "github.com/tmc/xa/apps/notes"
	_ "github.com/tmc/xa/apps/omniweb"
	_ "github.com/tmc/xa/apps/photos"
	_ "github.com/tmc/xa/apps/reminders"
	_ "github.com/tmc/xa/apps/safari"
	_ "github.com/tmc/xa/apps/systemevents"
	_ "github.com/tmc/xa/apps/terminal"
	_ "github.com/tmc/xa/apps/textedit"
)
