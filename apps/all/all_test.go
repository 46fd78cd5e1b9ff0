package all

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmc/xa"
)

func TestRegistered(t *testing.T) {
	for _, name := range []string{
		"Automator", "Calendar", "Google Chrome", "Brave Browser", "Finder", "Messages",
		"Notes", "OmniWeb", "Photos", "Reminders", "Safari", "System Events", "Terminal",
		"TextEdit", "com.apple.iCal", "com.omnigroup.OmniWeb5", "chrome", "systemevents",
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := xa.Lookup(name)
			assert.True(t, ok)
		})
	}
	assert.GreaterOrEqual(t, len(xa.Adapters()), 20)
}
