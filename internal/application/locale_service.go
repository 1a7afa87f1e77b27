package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"localesync/internal/domain"
	"localesync/internal/domain/entities"
	"localesync/internal/ports/input"
	"localesync/internal/ports/output"
)

var _ input.LocaleUseCase = (*LocaleService)(nil)

type LocaleService struct {
	store     output.DocumentStore
	overrides output.OverrideSource
	verifier  output.LookupVerifier
	reporter  output.Reporter
	logger    *zap.Logger
	workers   int
}

// NewLocaleService wires the output ports. overrides, verifier and reporter
// may be nil; workers below 1 means one locale at a time.
func NewLocaleService(
	store output.DocumentStore,
	overrides output.OverrideSource,
	verifier output.LookupVerifier,
	reporter output.Reporter,
	logger *zap.Logger,
	workers int,
) *LocaleService {
	if overrides == nil {
		overrides = noOverrides{}
	}
	if reporter == nil {
		reporter = nopReporter{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}
	return &LocaleService{
		store:     store,
		overrides: overrides,
		verifier:  verifier,
		reporter:  reporter,
		logger:    logger,
		workers:   workers,
	}
}

// Scaffold regenerates every target document from the reference and the
// target's override batch. Existing working documents are ignored.
func (s *LocaleService) Scaffold(ctx context.Context, reference string, targets []entities.Locale) (*output.RunSummary, error) {
	return s.run(ctx, reference, targets, func(ctx context.Context, ref *entities.Node, loc entities.Locale) (output.LocaleResult, error) {
		overrides, err := s.overrides.Overrides(ctx, loc.Code)
		if err != nil {
			return output.LocaleResult{}, fmt.Errorf("load overrides: %w", err)
		}
		doc := Propagate(ref, overrides)
		if err := s.store.Save(ctx, loc.Code, doc); err != nil {
			return output.LocaleResult{}, fmt.Errorf("save: %w", err)
		}
		return tally(loc, ref, doc, nil, overrides), nil
	})
}

// Sync rebuilds every target document from the reference while keeping the
// translations already present in it. New overrides take precedence.
func (s *LocaleService) Sync(ctx context.Context, reference string, targets []entities.Locale) (*output.RunSummary, error) {
	return s.run(ctx, reference, targets, func(ctx context.Context, ref *entities.Node, loc entities.Locale) (output.LocaleResult, error) {
		existing, err := s.store.Load(ctx, loc.Code)
		if err != nil && !errors.Is(err, domain.ErrWorkingDocNotFound) {
			return output.LocaleResult{}, fmt.Errorf("load working document: %w", err)
		}
		overrides, err := s.overrides.Overrides(ctx, loc.Code)
		if err != nil {
			return output.LocaleResult{}, fmt.Errorf("load overrides: %w", err)
		}
		doc := Merge(ref, existing, overrides)
		if err := s.store.Save(ctx, loc.Code, doc); err != nil {
			return output.LocaleResult{}, fmt.Errorf("save: %w", err)
		}
		return tally(loc, ref, doc, existing, overrides), nil
	})
}

// Check measures every target document against the reference without
// writing anything.
func (s *LocaleService) Check(ctx context.Context, reference string, targets []entities.Locale) ([]entities.Coverage, error) {
	ref, err := s.loadReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	coverages := make([]*entities.Coverage, len(targets))
	failed := s.forEach(ctx, targets, func(ctx context.Context, i int, loc entities.Locale) error {
		working, err := s.store.Load(ctx, loc.Code)
		if err != nil && !errors.Is(err, domain.ErrWorkingDocNotFound) {
			return fmt.Errorf("load working document: %w", err)
		}
		c := Measure(ref, working)
		c.Locale = loc
		if s.verifier != nil && working != nil {
			if c.Unresolved, err = s.verifier.Unresolved(loc.Code, working, textPaths(ref)); err != nil {
				return fmt.Errorf("verify lookups: %w", err)
			}
		}
		coverages[i] = &c
		s.reporter.Coverage(c)
		return nil
	})

	out := make([]entities.Coverage, 0, len(targets))
	for _, c := range coverages {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out, combine(targets, failed)
}

// ImportOverrides stores batch as the override batch for code.
func (s *LocaleService) ImportOverrides(ctx context.Context, code string, batch *entities.Node) (int, error) {
	repo, ok := s.overrides.(output.OverrideRepository)
	if !ok {
		return 0, domain.ErrImportUnsupported
	}
	n, err := repo.Import(ctx, code, batch)
	if err != nil {
		return n, fmt.Errorf("import overrides for %s: %w", code, err)
	}
	s.logger.Info("overrides imported", zap.String("locale", code), zap.Int("rows", n))
	return n, nil
}

type localeStep func(ctx context.Context, ref *entities.Node, loc entities.Locale) (output.LocaleResult, error)

func (s *LocaleService) run(ctx context.Context, reference string, targets []entities.Locale, step localeStep) (*output.RunSummary, error) {
	ref, err := s.loadReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	s.logger.Info("reference loaded",
		zap.String("locale", reference),
		zap.Int("leaves", ref.LeafCount()),
		zap.Int("targets", len(targets)),
	)

	results := make([]*output.LocaleResult, len(targets))
	failed := s.forEach(ctx, targets, func(ctx context.Context, i int, loc entities.Locale) error {
		res, err := step(ctx, ref, loc)
		if err != nil {
			return err
		}
		results[i] = &res
		s.reporter.LocaleDone(res)
		s.logger.Debug("locale written",
			zap.String("locale", loc.Code),
			zap.Int("leaves", res.Leaves),
			zap.Int("overridden", res.Overridden),
			zap.Int("kept", res.Kept),
			zap.Int("dropped", res.Dropped),
		)
		return nil
	})

	summary := output.RunSummary{Reference: reference, Failed: failed}
	for _, r := range results {
		if r != nil {
			summary.Results = append(summary.Results, *r)
		}
	}
	s.reporter.Finished(summary)
	return &summary, combine(targets, failed)
}

func (s *LocaleService) loadReference(ctx context.Context, reference string) (*entities.Node, error) {
	ref, err := s.store.Load(ctx, reference)
	if errors.Is(err, domain.ErrWorkingDocNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrReferenceNotFound, reference)
	}
	if err != nil {
		return nil, fmt.Errorf("load reference %s: %w", reference, err)
	}
	return ref, nil
}

// forEach runs fn for every target with at most s.workers in flight. A
// failing locale never stops the others; failures are returned by code.
func (s *LocaleService) forEach(ctx context.Context, targets []entities.Locale, fn func(ctx context.Context, i int, loc entities.Locale) error) map[string]error {
	var (
		mu     sync.Mutex
		failed = map[string]error{}
	)
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, loc := range targets {
		g.Go(func() error {
			err := ctx.Err()
			if err == nil {
				s.reporter.LocaleStarted(loc)
				err = fn(ctx, i, loc)
			}
			if err != nil {
				mu.Lock()
				failed[loc.Code] = err
				mu.Unlock()
				s.reporter.LocaleFailed(loc, err)
				s.logger.Error("locale failed", zap.String("locale", loc.Code), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
	return failed
}

func combine(targets []entities.Locale, failed map[string]error) error {
	if len(failed) == 0 {
		return nil
	}
	var err error
	for _, loc := range targets {
		if e, ok := failed[loc.Code]; ok {
			err = multierr.Append(err, fmt.Errorf("%s: %w", loc.Code, e))
		}
	}
	return fmt.Errorf("%d of %d locales failed: %w", len(failed), len(targets), err)
}

// tally counts where each leaf of doc came from. An existing leaf that still
// holds the reference text is not counted as kept.
func tally(loc entities.Locale, ref, doc, existing, overrides *entities.Node) output.LocaleResult {
	res := output.LocaleResult{Locale: loc}
	for _, p := range doc.Paths() {
		res.Leaves++
		v, _ := doc.Lookup(p)
		if o, ok := overrides.Lookup(p); ok && entities.Equal(o, v) {
			res.Overridden++
			continue
		}
		e, ok := existing.Lookup(p)
		if !ok || !entities.Equal(e, v) {
			continue
		}
		leaf, isLeaf := e.(entities.Leaf)
		if !isLeaf || leaf == "" {
			continue
		}
		if r, ok := ref.Lookup(p); ok && entities.Equal(r, leaf) {
			continue
		}
		res.Kept++
	}
	for _, p := range existing.Paths() {
		if _, ok := doc.Lookup(p); !ok {
			res.Dropped++
		}
	}
	return res
}

func textPaths(doc *entities.Node) []entities.Path {
	var paths []entities.Path
	doc.Walk(func(p entities.Path, v entities.Tree) {
		if _, ok := v.(entities.Leaf); ok {
			paths = append(paths, p)
		}
	})
	return paths
}

type noOverrides struct{}

func (noOverrides) Overrides(context.Context, string) (*entities.Node, error) {
	return entities.NewNode(), nil
}

type nopReporter struct{}

func (nopReporter) LocaleStarted(entities.Locale) {}
func (nopReporter) LocaleDone(output.LocaleResult) {}
func (nopReporter) LocaleFailed(entities.Locale, error) {}
func (nopReporter) Coverage(entities.Coverage) {}
func (nopReporter) Finished(output.RunSummary) {}
