// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write live output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayProgress].
//
//   - Print* functions write fixed informational blocks to an [io.Writer].
//     Examples: [PrintExecutionConfig], [PrintExecutionMode].
//
//   - Generate* functions emit scripts or other derived artifacts.
//     Examples: [GenerateCompletion].

package cli

import (
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/bench"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/format"
)

// DisplayProgress renders a spinner with an aggregated progress bar and
// ETA while policy runs execute. It consumes updates until progressChan
// closes and signals wg when display is complete, so callers can safely
// print results afterwards without racing the spinner's terminal writes.
//
// Parameters:
//   - wg: Signaled via Done when the display loop has finished.
//   - progressChan: Channel receiving updates from the runner.
//   - numRuns: The number of policy runs being tracked.
//   - out: The writer for progress output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan bench.ProgressUpdate, numRuns int, out io.Writer) {
	defer wg.Done()

	aggregator := bench.NewProgressAggregator(numRuns)
	if aggregator == nil {
		bench.DrainChannel(progressChan)
		return
	}

	sp := newSpinner(spinner.WithWriter(out))
	sp.UpdateSuffix(" " + format.FormatProgressBarWithETA(0, 0, progressBarWidth))
	sp.Start()
	defer sp.Stop()

	// The ticker refreshes the ETA between updates; a long-running trial
	// sends nothing until it completes.
	ticker := time.NewTicker(spinnerRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				return
			}
			agg := aggregator.Update(update)
			sp.UpdateSuffix(" " + format.FormatProgressBarWithETA(agg.AverageProgress, agg.ETA, progressBarWidth))
		case <-ticker.C:
			sp.UpdateSuffix(" " + format.FormatProgressBarWithETA(aggregator.CalculateAverage(), aggregator.GetETA(), progressBarWidth))
		}
	}
}
