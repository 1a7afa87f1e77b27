package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"localesync/internal/adapters/console"
	"localesync/internal/application"
	"localesync/internal/config"
	"localesync/internal/infrastructure/catalog"
	"localesync/internal/infrastructure/database"
	"localesync/internal/infrastructure/i18n"
	"localesync/internal/infrastructure/jsonfile"
	"localesync/internal/ports/output"
)

// app holds the flag values and the collaborators shared by all commands.
type app struct {
	cfg    *config.Config
	out    io.Writer
	logger *zap.Logger

	localesDir   string
	reference    string
	catalogFile  string
	overridesDir string
	workers      int
	verbose      bool
}

// NewRootCommand builds the localesync command tree. Flags default to cfg.
func NewRootCommand(cfg *config.Config, out io.Writer) *cobra.Command {
	a := &app{cfg: cfg, out: out, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "localesync",
		Short: "Propagate a reference locale's structure into target locale files",
		Long: `localesync keeps per-locale JSON translation files structurally identical
to a reference locale. Every key of the reference exists in every target file;
where no translation is available the reference text is used.

It does not translate anything.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.CheckReference(a.reference); err != nil {
				return fmt.Errorf("--reference %w", err)
			}
			zc := zap.NewProductionConfig()
			zc.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
			if a.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.localesDir, "locales-dir", cfg.LocalesDir, "directory holding <code>.json locale files")
	pf.StringVar(&a.reference, "reference", cfg.ReferenceLocale, "reference locale code")
	pf.StringVar(&a.catalogFile, "catalog", cfg.CatalogFile, "TOML catalog of target locales (default: built-in catalog)")
	pf.StringVar(&a.overridesDir, "overrides-dir", cfg.OverridesDir, "directory holding <code>.json override batches")
	pf.IntVar(&a.workers, "workers", cfg.Workers, "locales processed concurrently")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging and full coverage listings")

	root.AddCommand(
		newScaffoldCommand(a),
		newSyncCommand(a),
		newCheckCommand(a),
		newLocalesCommand(a),
		newOverridesCommand(a),
	)
	return root
}

// Execute runs the command tree with the process arguments.
func Execute(ctx context.Context, cfg *config.Config, out io.Writer) error {
	return NewRootCommand(cfg, out).ExecuteContext(ctx)
}

func (a *app) catalog() (*catalog.Catalog, error) {
	return catalog.Load(a.catalogFile, a.reference)
}

// service wires the output adapters into a LocaleService. The returned
// function releases whatever the override source holds open.
func (a *app) service(ctx context.Context, lookups bool) (*application.LocaleService, func(), error) {
	overrides, closeFn, err := a.overrideSource(ctx)
	if err != nil {
		return nil, nil, err
	}
	var verifier output.LookupVerifier
	if lookups {
		verifier = i18n.NewVerifier(a.logger)
	}
	svc := application.NewLocaleService(
		jsonfile.NewStore(a.localesDir),
		overrides,
		verifier,
		console.NewReporter(a.out, a.verbose),
		a.logger,
		a.workers,
	)
	return svc, closeFn, nil
}

// overrideSource prefers PostgreSQL when DATABASE_URL is set, then an
// overrides directory, then no overrides at all.
func (a *app) overrideSource(ctx context.Context) (output.OverrideSource, func(), error) {
	if a.cfg.DatabaseURL != "" {
		if err := database.RunMigrations(a.cfg.DatabaseURL, a.cfg.MigrationsPath, a.logger); err != nil {
			return nil, nil, err
		}
		pool, err := database.NewPool(ctx, a.cfg.DatabaseURL, a.logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return database.NewOverrideRepository(pool), pool.Close, nil
	}
	if a.overridesDir != "" {
		return jsonfile.NewOverrideDir(a.overridesDir), func() {}, nil
	}
	return nil, func() {}, nil
}
