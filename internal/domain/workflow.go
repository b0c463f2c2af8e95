package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"gitsync.dev/pkg/gitsync/internal/adapter"
	"gitsync.dev/pkg/gitsync/internal/controller"
	m "gitsync.dev/pkg/gitsync/internal/model"
)

// DefaultManifestName is the manifest file looked up at the repository root.
const DefaultManifestName = ".gitsync"

// StatusArgs contains the arguments of a status scan.
type StatusArgs struct {
	// Start is the directory the repository root search begins from.
	Start m.Path
	// Manifest is the manifest file name relative to the repository root.
	Manifest string
	// Overrides maps repository names to explicit locations.
	Overrides map[string]string
	// Parallel bounds concurrent hashing within a block.
	Parallel int
	// Report, when set, is where the report is saved.
	Report m.Path
	// Display configures the renderer.
	Display []controller.DisplayOption
}

// ViewArgs contains the arguments for re-displaying a saved report.
type ViewArgs struct {
	Report  m.Path
	Display []controller.DisplayOption
}

// Workflow runs the gitsync commands.
type Workflow interface {
	Status(ctx context.Context, args StatusArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
	}
}

// Status scans every mapping of the manifest and displays the result. Block
// failures do not stop the scan but are returned once everything is shown.
func (w *workflow) Status(ctx context.Context, args StatusArgs) error {
	report, err := w.Scan(ctx, args)
	if err != nil && !errors.Is(err, ErrSourceRootMissing) {
		return err
	}

	if displayErr := w.DisplayReport(ctx, report, args.Display...); displayErr != nil {
		slog.Error("failed to display report", "error", displayErr)
		return fmt.Errorf("display: %w", displayErr)
	}

	if args.Report != "" {
		if saveErr := w.SaveReport(args.Report, report); saveErr != nil {
			return fmt.Errorf("save report: %w", saveErr)
		}

		slog.Info("report saved", "path", args.Report)
	}

	return err
}

// Scan builds the report without displaying it. The returned error joins
// every BlockError; the report is still complete for the other blocks.
func (w *workflow) Scan(ctx context.Context, args StatusArgs) (m.Report, error) {
	start := args.Start
	if start == "" {
		start = "."
	}

	root, err := w.FindRepoRoot(start)
	if err != nil {
		return m.Report{}, err
	}

	manifestName := args.Manifest
	if manifestName == "" {
		manifestName = DefaultManifestName
	}

	manifestPath := m.Path(filepath.Join(string(root), manifestName))

	blocks, err := w.loadManifest(manifestPath)
	if err != nil {
		return m.Report{}, err
	}

	cfg := NewConfig(root, args.Overrides)
	resolver := NewResolver(cfg)
	engine := NewEngine(cfg, w.SourceFSAdapter, args.Parallel)

	slog.Info("scanning manifest", "manifest", manifestPath, "repos", len(blocks))

	report := m.Report{
		RepoRoot: cfg.RepoRoot,
		Manifest: manifestPath,
		Repos:    make([]m.RepoReport, 0, len(blocks)),
	}

	var blockErrs []error

	for _, repo := range resolver.ResolveAll(blocks) {
		entries, evalErr := engine.Evaluate(ctx, repo)

		var blockErr *BlockError
		if errors.As(evalErr, &blockErr) {
			slog.Error("source repository missing", "name", repo.Name, "path", repo.Root)
			report.Repos = append(report.Repos, m.RepoReport{Name: repo.Name, Root: repo.Root, Error: blockErr.Error()})
			blockErrs = append(blockErrs, blockErr)

			continue
		}

		if evalErr != nil {
			return m.Report{}, fmt.Errorf("SourceRepo %s: %w", repo.Name, evalErr)
		}

		report.Repos = append(report.Repos, m.RepoReport{Name: repo.Name, Root: repo.Root, Entries: entries})
	}

	return report, errors.Join(blockErrs...)
}

// View loads a saved report and displays it.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(args.Report)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	return w.DisplayReport(ctx, report, args.Display...)
}

func (w *workflow) loadManifest(path m.Path) ([]m.Block, error) {
	isFile, err := w.IsFile(path)
	if err != nil {
		return nil, fmt.Errorf("stat manifest: %w", err)
	}

	if !isFile {
		return nil, fmt.Errorf("%w: gitsync file '%s' does not exist", ErrManifestNotFound, path)
	}

	f, err := w.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	blocks, err := ParseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("error in %s file: %w", filepath.Base(string(path)), err)
	}

	return blocks, nil
}
