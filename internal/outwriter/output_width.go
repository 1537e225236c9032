package outwriter

import (
	"os"

	"github.com/branflake2267/docs-sub001/internal/contract"
	"golang.org/x/term"
)

// GetTerminalWidth returns the width used to wrap rendered text output.
func GetTerminalWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Keep prose readable on very wide or very narrow terminals
	return min(max(termWidth, 40), 120)
}
