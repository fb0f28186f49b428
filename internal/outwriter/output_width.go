package outwriter

import (
	"os"

	"github.com/huangsam/homebase/internal/contract"
	"golang.org/x/term"
)

// getMaxReasonWidth calculates the maximum width of the AnomalyReason column
// based on terminal width.
func getMaxReasonWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Date, seven metrics, DayType and IsAnomaly with borders/padding
	const baseWidth = 150

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 60 {
		return 60
	}
	return available
}
