package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"prim/internal/diff"
	"prim/internal/fmtcache"
	"prim/internal/format"
	"prim/internal/lexer"
	"prim/internal/observ"
	"prim/internal/source"
	"prim/internal/trace"
	"prim/internal/version"
)

// FormatRequest configures a formatting run.
type FormatRequest struct {
	Paths []string
	// Check leaves files untouched; Changed reports pending changes.
	Check bool
	// Stdout returns formatted content in the results without writing.
	Stdout bool
	// Diff computes a line diff for every changed file.
	Diff bool
	// Jobs bounds parallel workers; <= 0 means GOMAXPROCS.
	Jobs int

	Options OptionSource
	// Cache, when set, skips inputs already known to be formatted.
	Cache    *fmtcache.Cache
	Progress ProgressSink
	Timer    *observ.Timer
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path    string
	Changed bool
	// Cached is set when the cache proved the input already formatted.
	Cached  bool
	Output  []byte
	Diff    diff.Result
	Options format.Options
	Err     error
}

// FormatPaths formats the files under req.Paths concurrently. Results are
// in CollectFiles order. Per-file failures land in FormatResult.Err and do
// not stop sibling files; the returned error covers collection, option
// resolution and cancellation.
func FormatPaths(ctx context.Context, req FormatRequest) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "format")
	defer span.End("")

	collect := req.Timer.Begin("collect")
	files, err := CollectFiles(ctx, req.Paths)
	req.Timer.End(collect, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		trace.Error(trace.FromContext(ctx), "collect", err, span.ID())
		return nil, err
	}
	emit(req.Progress, Event{Stage: StageCollect, Status: StatusDone})

	res, err := newResolver(req.Options)
	if err != nil {
		return nil, err
	}
	return formatFiles(ctx, files, req, res)
}

func formatFiles(ctx context.Context, files []string, req FormatRequest, res *resolver) ([]FormatResult, error) {
	for _, path := range files {
		emit(req.Progress, Event{File: path, Stage: StageRead, Status: StatusQueued})
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// each goroutine owns results[i]
	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatFile(gctx, path, req, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatFile(ctx context.Context, path string, req FormatRequest, res *resolver) (result FormatResult) {
	start := time.Now()
	ctx, span := trace.Start(ctx, trace.ScopeFile, path)
	result.Path = path
	defer func() {
		status := StatusUnchanged
		detail := "unchanged"
		switch {
		case result.Err != nil:
			status, detail = StatusError, result.Err.Error()
			trace.Error(trace.FromContext(ctx), "format", result.Err, span.ID())
		case result.Changed:
			status, detail = StatusDone, "changed"
		}
		span.End(detail)
		emit(req.Progress, Event{File: path, Stage: StageWrite, Status: status, Err: result.Err, Elapsed: time.Since(start)})
	}()

	emit(req.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	raw, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	opts, _, err := res.options(path)
	if err != nil {
		result.Err = err
		return result
	}
	result.Options = opts

	out, cached, err := formatBytes(ctx, path, raw, opts, req)
	if err != nil {
		result.Err = err
		return result
	}
	result.Cached = cached
	result.Changed = !bytes.Equal(raw, out)
	if req.Stdout {
		result.Output = out
	}
	if req.Diff && result.Changed {
		result.Diff = diff.Compute(string(raw), string(out), diff.DefaultContext)
	}

	if result.Changed && !req.Check && !req.Stdout {
		emit(req.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		begin := time.Now()
		if err := writeFile(path, out); err != nil {
			result.Err = err
			return result
		}
		req.Timer.Add("write", time.Since(begin))
	}
	// out is what the file now holds unless a check/stdout run left it stale
	if !result.Changed || (!req.Check && !req.Stdout) {
		remember(req.Cache, path, out, opts)
	}
	return result
}

// formatBytes decodes raw and runs the lexer and printer over it. A cache
// hit returns raw unchanged.
func formatBytes(ctx context.Context, path string, raw []byte, opts format.Options, req FormatRequest) ([]byte, bool, error) {
	if req.Cache != nil {
		if key, err := fmtcache.Key(raw, opts, version.Version); err == nil && req.Cache.Has(key) {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache", "hit", trace.ParentSpan(ctx))
			return raw, true, nil
		}
	}

	content, flags, err := source.Decode(raw)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.Add(path, content, flags))

	emit(req.Progress, Event{File: path, Stage: StageLex, Status: StatusWorking})
	_, lexSpan := trace.Start(ctx, trace.ScopePass, "lex")
	begin := time.Now()
	tokens := lexer.TokenizeFile(file)
	req.Timer.Add("lex", time.Since(begin))
	lexSpan.WithExtra("tokens", fmt.Sprint(len(tokens))).End("")

	emit(req.Progress, Event{File: path, Stage: StagePrint, Status: StatusWorking})
	_, printSpan := trace.Start(ctx, trace.ScopePass, "print")
	begin = time.Now()
	out := format.Print(tokens, opts)
	req.Timer.Add("print", time.Since(begin))
	printSpan.End("")

	return []byte(out), false, nil
}

func remember(c *fmtcache.Cache, path string, out []byte, opts format.Options) {
	if c == nil {
		return
	}
	key, err := fmtcache.Key(out, opts, version.Version)
	if err != nil {
		return
	}
	_ = c.Put(key, &fmtcache.Entry{Path: path, Size: len(out), Version: version.Version})
}

func writeFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, content, mode.Perm())
}

// FormatSource formats in-memory content (stdin). name selects config
// overrides and appears in diagnostics; it need not exist on disk.
func FormatSource(ctx context.Context, name string, content []byte, req FormatRequest) FormatResult {
	result := FormatResult{Path: name}
	res, err := newResolver(req.Options)
	if err != nil {
		result.Err = err
		return result
	}
	opts, _, err := res.options(name)
	if err != nil {
		result.Err = err
		return result
	}
	result.Options = opts

	req.Cache = nil
	out, _, err := formatBytes(ctx, name, content, opts, req)
	if err != nil {
		result.Err = err
		return result
	}
	result.Output = out
	result.Changed = !bytes.Equal(content, out)
	if req.Diff && result.Changed {
		result.Diff = diff.Compute(string(content), string(out), diff.DefaultContext)
	}
	return result
}
