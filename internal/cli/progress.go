package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// extractProgress renders a progress bar for multi-file extraction runs.
// Single-file runs and quiet mode render nothing so stdout stays clean JSON.
type extractProgress struct {
	bar *progressbar.ProgressBar
}

func newExtractProgress(quiet bool, totalFiles int) *extractProgress {
	if quiet || totalFiles < 2 {
		return &extractProgress{}
	}
	bar := progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Extracting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
	return &extractProgress{bar: bar}
}

func (p *extractProgress) step() {
	if p.bar != nil {
		p.bar.Add(1)
	}
}

func (p *extractProgress) finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
