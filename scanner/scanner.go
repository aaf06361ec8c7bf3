// Package scanner walks a project tree and applies signature categories to
// every supported file.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/ark-forge/mcp-eu-ai-act/depgraph"
	"github.com/ark-forge/mcp-eu-ai-act/detect"
	"github.com/ark-forge/mcp-eu-ai-act/logger"
	"github.com/ark-forge/mcp-eu-ai-act/signatures"
	"github.com/ark-forge/mcp-eu-ai-act/tracing"
	"github.com/ark-forge/mcp-eu-ai-act/utils"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"
)

// RootNotFoundError is returned when the scan root does not exist.
type RootNotFoundError struct {
	Path string
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("%s does not exist", e.Path)
}

type Options struct {
	// FollowImports builds the import graph and propagates detections.
	FollowImports   bool
	Concurrency     int
	MaxFileSize     int64
	MaxFiles        int
	MaxIOPerSecond  int
	ShowProgress    bool
	IncludePatterns []string
	ExcludePatterns []string
}

// Result is the outcome of one scan. Index and Files include propagated
// files when FollowImports was set; Propagated lists them separately.
type Result struct {
	Root         string
	FilesScanned int
	Index        *detect.Index
	Files        *detect.FileMap
	Graph        *depgraph.Graph
	Propagated   []depgraph.Propagation
}

// Scanner is safe for concurrent use; each Scan owns its indices.
type Scanner struct {
	matcher *categoryMatcher
	opts    Options
}

func New(categories []*signatures.Category, opts Options) *Scanner {
	return &Scanner{matcher: newCategoryMatcher(categories), opts: opts}
}

func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	ctx, endTask := tracing.StartTask(ctx, "scan")
	defer endTask()

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &RootNotFoundError{Path: root}
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	records, err := s.collect(ctx, root)
	if err != nil {
		return nil, err
	}
	results, err := s.process(ctx, records)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Root:         root,
		FilesScanned: len(records),
		Index:        detect.NewIndex(),
		Files:        detect.NewFileMap(),
	}
	for i, rec := range records {
		for _, c := range results[i].categories {
			res.Index.Add(c, rec.Rel)
			res.Files.Add(rec.Rel, c)
		}
	}

	if s.opts.FollowImports {
		endRegion := tracing.StartRegion(ctx, "propagate")
		files := make([]string, len(records))
		refs := make(map[string][]depgraph.Reference)
		for i, rec := range records {
			files[i] = rec.Rel
			if len(results[i].refs) > 0 {
				refs[rec.Rel] = results[i].refs
			}
		}
		res.Graph = depgraph.Build(files, refs)
		res.Propagated = depgraph.Propagate(res.Graph, res.Index)
		depgraph.Merge(res.Index, res.Files, res.Propagated)
		endRegion()
		logger.Debugf("Import graph: %d files, %d edges, %d propagated", len(files), res.Graph.EdgeCount(), len(res.Propagated))
	}
	return res, nil
}

func (s *Scanner) collect(ctx context.Context, root string) ([]FileRecord, error) {
	matcher := utils.NewPatternMatcher(s.opts.IncludePatterns, s.opts.ExcludePatterns)
	var records []FileRecord
	err := Walk(ctx, root, matcher, func(rec FileRecord) error {
		if s.opts.MaxFiles > 0 && len(records) >= s.opts.MaxFiles {
			return errStopWalk
		}
		records = append(records, rec)
		return nil
	})
	if errors.Is(err, errStopWalk) {
		logger.Warnf("File limit of %d reached, remaining files under %s are not scanned", s.opts.MaxFiles, root)
		err = nil
	}
	return records, err
}

// process reads and matches records with a worker pool. Each worker writes
// only its own slots of the result slice; merging happens afterwards in walk
// order.
func (s *Scanner) process(ctx context.Context, records []FileRecord) ([]fileResult, error) {
	results := make([]fileResult, len(records))
	if len(records) == 0 {
		return results, nil
	}

	workers := s.opts.Concurrency
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(records) {
		workers = len(records)
	}

	var ioLimiter *rate.Limiter
	if s.opts.MaxIOPerSecond > 0 {
		ioLimiter = rate.NewLimiter(rate.Limit(s.opts.MaxIOPerSecond), s.opts.MaxIOPerSecond)
	}

	var bar *progressbar.ProgressBar
	if s.opts.ShowProgress {
		bar = progressbar.NewOptions(len(records),
			progressbar.OptionSetDescription("Scanning files"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionSetVisibility(progressVisible()),
			progressbar.OptionFullWidth(),
		)
	}

	tasks := make(chan int, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				results[i] = s.processFile(ctx, records[i])
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}()
	}

	var dispatchErr error
	for i := range records {
		if ioLimiter != nil {
			if err := ioLimiter.Wait(ctx); err != nil {
				dispatchErr = err
				break
			}
		}
		select {
		case <-ctx.Done():
			dispatchErr = ctx.Err()
		case tasks <- i:
		}
		if dispatchErr != nil {
			break
		}
	}
	close(tasks)
	wg.Wait()
	if bar != nil {
		_ = bar.Finish()
	}
	if dispatchErr != nil {
		return nil, dispatchErr
	}
	return results, nil
}

// processFile never fails: read errors are logged and the file is treated
// as having no detections.
func (s *Scanner) processFile(ctx context.Context, rec FileRecord) fileResult {
	defer tracing.StartRegion(ctx, "process_file")()

	content, err := readFileContent(rec.Path, s.opts.MaxFileSize)
	if err != nil {
		logger.Warnf("Failed to read %s: %v", rec.Path, err)
		return fileResult{}
	}
	if content == nil {
		logger.Debugf("Skipping content of %s: larger than size limit", rec.Path)
		return fileResult{}
	}
	if looksBinary(content) {
		logger.Debugf("Skipping content of %s: binary data", rec.Path)
		return fileResult{}
	}

	text := decodeText(content)
	res := fileResult{categories: s.matcher.match(text)}
	if s.opts.FollowImports {
		res.refs = depgraph.ExtractReferences(rec.Rel, text)
	}
	return res
}

func progressVisible() bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv("AIACT_DISABLE_PROGRESS")))
	return value != "1" && value != "true" && value != "yes" && value != "on"
}
