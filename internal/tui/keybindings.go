// Package tui: keyboard binding configuration.
package tui

// Keymap defines all keyboard shortcuts for the TUI.
type Keymap struct {
	Quit       string
	TabNext    string
	TabPrev    string
	NavUp      string
	NavDown    string
	StepBack   string
	StepFwd    string
	Play       string
	Plane      string
	NextTarget string
	PrevTarget string
	Reload     string
	Epoch      string
	Help       string
}

// defaultKeymap returns the default ephem TUI key bindings.
func defaultKeymap() Keymap {
	return Keymap{
		Quit:       "q",
		TabNext:    "tab",
		TabPrev:    "shift+tab",
		NavUp:      "up",
		NavDown:    "down",
		StepBack:   "left",
		StepFwd:    "right",
		Play:       " ",
		Plane:      "p",
		NextTarget: "n",
		PrevTarget: "N",
		Reload:     "r",
		Epoch:      "/",
		Help:       "?",
	}
}

// HelpText returns the keyboard shortcut reference displayed in the help modal.
func HelpText() string {
	return `
  NAVIGATION
  ──────────────────────────────────────
  Tab / Shift+Tab    Cycle panels
  ↑↓  /  j k        Scroll samples
  ←→  /  h l        Step along orbit

  PLAYBACK & VIEW
  ──────────────────────────────────────
  Space              Play / pause sweep
  p                  Cycle plot plane
  n / N              Next / prev target
  r                  Requery trajectory

  SEARCH & MISC
  ──────────────────────────────────────
  /                  Jump to epoch
  ?                  Toggle this help
  q                  Quit
  Ctrl+C             Force quit
`
}
