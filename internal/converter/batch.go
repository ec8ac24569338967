package converter

import (
	"sync"
	"time"

	"github.com/ginjaninja78/roof-adjustment-engine/pkg/utils"
)

// =============================================================================
// BATCH PROCESSING
// =============================================================================

// Batch runs one Converter per file with at most concurrency running at
// once, and summarises the outcome. When stopOnError is set no new file is
// started after the first failure; files already running finish.
//
// PARAMETERS:
//   - files: The claim files, in the order they should be started.
//   - newConverter: Builds the Converter for a file.
//   - concurrency: The worker limit. Values below 1 mean 1.
//   - stopOnError: Stop starting files after a failure.
//
// RETURNS:
//   - The batch summary, with processed files in input order.
func Batch(files []string, newConverter func(path string) *Converter, concurrency int, stopOnError bool) utils.BatchSummary {
	if concurrency < 1 {
		concurrency = 1
	}

	summary := utils.BatchSummary{StartTime: time.Now(), TotalFiles: len(files)}
	results := make([]*Result, len(files))

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed bool
	)
	sem := make(chan struct{}, concurrency)

	for i, file := range files {
		sem <- struct{}{}

		mu.Lock()
		stop := stopOnError && failed
		mu.Unlock()
		if stop {
			<-sem
			break
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			r := newConverter(path).Run()
			results[i] = &r

			if !r.Success {
				mu.Lock()
				failed = true
				mu.Unlock()
			}
		}(i, file)
	}
	wg.Wait()

	for _, r := range results {
		if r == nil {
			continue
		}
		if !r.Success {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    r.FilePath,
				ErrorMessage: r.Error.Error(),
			})
			continue
		}

		summary.SuccessfulFiles++
		summary.TotalAdjustments += r.Stats.Adjustments
		summary.TotalAdditions += r.Stats.Additions
		summary.TotalWarnings += r.Stats.Warnings
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   r.FilePath,
			OutputFile:  r.OutputFile,
			ArchivePath: r.ArchivePath,
			RunID:       r.Stats.RunID,
			Adjustments: r.Stats.Adjustments,
			Additions:   r.Stats.Additions,
			Warnings:    r.Stats.Warnings,
			ProcessTime: r.Stats.ProcessingTime,
		})
	}

	summary.EndTime = time.Now()
	return summary
}
