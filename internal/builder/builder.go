package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"tlkify/internal/config"
	"tlkify/internal/dataset"
	"tlkify/internal/fileutil"
	"tlkify/internal/logging"
	"tlkify/internal/pipeline"
	"tlkify/internal/services"
	"tlkify/internal/services/nwnerf"
	"tlkify/internal/services/nwntlk"
	"tlkify/internal/tlk"
	"tlkify/internal/twoda"
)

const lockFileName = ".tlkify.lock"

// Summary reports what a completed build produced.
type Summary struct {
	RunID        string
	Categories   []string
	EntriesAdded int
	TotalEntries int
	Warnings     int
	TLKPaths     []string
	HAKPaths     []string
	Duration     time.Duration
}

// Option configures the builder.
type Option func(*Builder)

// WithTLKClient overrides the TLK converter client.
func WithTLKClient(client nwntlk.Client) Option {
	return func(b *Builder) {
		if client != nil {
			b.tlkClient = client
		}
	}
}

// WithERFClient overrides the HAK packer client.
func WithERFClient(client nwnerf.Client) Option {
	return func(b *Builder) {
		if client != nil {
			b.erfClient = client
		}
	}
}

// WithCounter attaches a log counter so the summary can report warnings.
func WithCounter(counter *logging.Counter) Option {
	return func(b *Builder) {
		b.counter = counter
	}
}

// Builder runs the full localization build: merge labels into category
// tables, serialize the string table, and pack the artifacts.
type Builder struct {
	cfg       *config.Config
	logger    *slog.Logger
	tlkClient nwntlk.Client
	erfClient nwnerf.Client
	counter   *logging.Counter
}

// New constructs a builder over the given configuration.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Builder{
		cfg:       cfg,
		logger:    logger,
		tlkClient: nwntlk.NewCLI(nwntlk.WithBinary(cfg.Tools.NwnTlk)),
		erfClient: nwnerf.NewCLI(nwnerf.WithBinary(cfg.Tools.NwnErf)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run executes the build. Artifacts only land in the output directories
// after every category merged successfully.
func (b *Builder) Run(ctx context.Context) (*Summary, error) {
	started := time.Now()
	runID := uuid.NewString()
	logger := b.logger.With("run_id", runID)

	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := b.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "build", "prepare", "create output directories", err)
	}

	lock := flock.New(filepath.Join(b.cfg.PrimaryOutputDir(), lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "build", "lock", "acquire build lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "build", "lock", "another build is already running", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	workDir, err := os.MkdirTemp("", "tlkify-")
	if err != nil {
		return nil, fmt.Errorf("create working directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	hakDir := filepath.Join(workDir, "hak")
	if err := os.MkdirAll(hakDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}

	table, err := b.seedTable(ctx, workDir)
	if err != nil {
		return nil, err
	}
	seeded := table.Len()
	logger.Info("string table seeded", "entries", seeded, "language", table.Language())

	tables, categories, err := b.mergeCategories(table, logger)
	if err != nil {
		return nil, err
	}
	if err := b.loadBaseTables(tables, logger); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := twoda.Write(tables[name], filepath.Join(hakDir, name+".2da")); err != nil {
			return nil, err
		}
	}

	tlkPath := filepath.Join(workDir, b.cfg.Output.TLKName)
	documentPath := tlkPath + ".json"
	if err := table.Save(documentPath); err != nil {
		return nil, err
	}
	if err := b.tlkClient.Encode(ctx, documentPath, tlkPath); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "build", "encode_tlk", "", err)
	}

	hakPath := filepath.Join(workDir, b.cfg.Output.HAKName)
	if err := b.erfClient.Pack(ctx, hakDir, hakPath); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "build", "pack_hak", "", err)
	}

	summary := &Summary{
		RunID:        runID,
		Categories:   categories,
		EntriesAdded: table.Len() - seeded,
		TotalEntries: table.Len(),
	}
	if err := b.publish(tlkPath, hakPath, summary, logger); err != nil {
		return nil, err
	}

	if b.counter != nil {
		summary.Warnings = b.counter.Warnings()
	}
	summary.Duration = time.Since(started)
	logger.Info("build complete",
		"categories", len(summary.Categories),
		"entries_added", summary.EntriesAdded,
		"duration", summary.Duration)
	return summary, nil
}

// seedTable prepares the string table, optionally hydrating it from a prior
// .tlk or .json reference.
func (b *Builder) seedTable(ctx context.Context, workDir string) (*tlk.Table, error) {
	reference := strings.TrimSpace(b.cfg.TLK.Reference)
	if reference == "" {
		return tlk.New(b.cfg.TLK.Language), nil
	}

	switch strings.ToLower(filepath.Ext(reference)) {
	case ".json":
		return tlk.Load(reference)
	case ".tlk":
		documentPath := filepath.Join(workDir, "reference.json")
		if err := b.tlkClient.Decode(ctx, reference, documentPath); err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "build", "decode_reference", reference, err)
		}
		return tlk.Load(documentPath)
	default:
		return nil, services.Wrap(services.ErrConfiguration, "build", "seed",
			fmt.Sprintf("reference %q must end in .tlk or .json", reference), nil)
	}
}

// mergeCategories folds the merge pipeline over every override 2DA in
// sorted order and returns the updated tables keyed by category name.
func (b *Builder) mergeCategories(table *tlk.Table, logger *slog.Logger) (map[string]*dataset.Table, []string, error) {
	matches, err := filepath.Glob(filepath.Join(b.cfg.Paths.OverrideTablesDir, "*.2da"))
	if err != nil {
		return nil, nil, fmt.Errorf("list override tables: %w", err)
	}
	sort.Strings(matches)

	merger := pipeline.NewMerger(table, b.cfg.Paths.OverrideTablesDir, b.cfg.Paths.LabelsDir, b.cfg.TLK.SpellOffset, logger)

	tables := make(map[string]*dataset.Table, len(matches))
	categories := make([]string, 0, len(matches))
	for _, match := range matches {
		name := strings.TrimSuffix(filepath.Base(match), ".2da")
		merged, err := merger.MergeCategory(name)
		if err != nil {
			return nil, nil, err
		}
		tables[name] = merged
		categories = append(categories, name)
		logger.Debug("category merged", "category", name, "rows", merged.NumRows())
	}
	return tables, categories, nil
}

// loadBaseTables reads the passthrough tables without index validation.
// On a name collision the base table wins.
func (b *Builder) loadBaseTables(tables map[string]*dataset.Table, logger *slog.Logger) error {
	dir := strings.TrimSpace(b.cfg.Paths.BaseTablesDir)
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.2da"))
	if err != nil {
		return fmt.Errorf("list base tables: %w", err)
	}
	sort.Strings(matches)

	for _, match := range matches {
		name := strings.TrimSuffix(filepath.Base(match), ".2da")
		base, err := twoda.Read(match, false, logger)
		if err != nil {
			return err
		}
		if _, clash := tables[name]; clash {
			logger.Warn("base table shadows merged category", "category", name)
		}
		tables[name] = base
	}
	return nil
}

// publish copies the artifacts from the working directory into every output
// directory and records the final paths in the summary.
func (b *Builder) publish(tlkPath, hakPath string, summary *Summary, logger *slog.Logger) error {
	for _, dir := range b.cfg.Paths.OutputDirs {
		tlkTarget := filepath.Join(dir, "tlk", b.cfg.Output.TLKName)
		hakTarget := filepath.Join(dir, "hak", b.cfg.Output.HAKName)

		if !fileutil.SameFile(tlkPath, tlkTarget) {
			if err := fileutil.CopyFileVerified(tlkPath, tlkTarget); err != nil {
				return fmt.Errorf("publish %s: %w", tlkTarget, err)
			}
		}
		if !fileutil.SameFile(hakPath, hakTarget) {
			if err := fileutil.CopyFileVerified(hakPath, hakTarget); err != nil {
				return fmt.Errorf("publish %s: %w", hakTarget, err)
			}
		}

		summary.TLKPaths = append(summary.TLKPaths, tlkTarget)
		summary.HAKPaths = append(summary.HAKPaths, hakTarget)
		logger.Debug("artifacts published", "dir", dir)
	}
	return nil
}
