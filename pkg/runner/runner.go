package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/brackettree/pkg/tokenfile"
)

// job is one discovered file and its position in the result.
type job struct {
	index int
	path  string
}

// indexedOutcome carries a worker's outcome back to its slot.
type indexedOutcome struct {
	index   int
	outcome FileOutcome
}

// Run discovers token files under opts.Paths, then loads and assembles them
// on a worker pool. Outcomes keep discovery order regardless of which
// worker finishes first.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan job)
	outCh := make(chan indexedOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for i, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- job{index: i, path: path}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make([]*FileOutcome, len(files))
	for out := range outCh {
		outcome := out.outcome
		outcomes[out.index] = &outcome
	}

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker loads files from workCh and sends outcomes to outCh.
func worker(ctx context.Context, workCh <-chan job, outCh chan<- indexedOutcome, opts Options) {
	for work := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := load(ctx, work.path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- indexedOutcome{index: work.index, outcome: outcome}:
		}
	}
}

func load(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	doc, err := tokenfile.Load(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	asm, err := doc.Assemble(opts.Assemble)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Document = doc
	outcome.Assembly = asm
	return outcome
}
