package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitsync.dev/pkg/gitsync/internal/adapter"
	controllermocks "gitsync.dev/pkg/gitsync/internal/controller/mocks"
	m "gitsync.dev/pkg/gitsync/internal/model"
)

const scenarioManifest = `SourceRepo lib
    Sync a.txt a.txt
    Sync "b c.txt" "b c.txt"
`

type workflowFixture struct {
	fs    afero.Fs
	ui    *controllermocks.MockUI
	store *adapter.FileReportStore
	wf    Workflow
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work/app/.git", 0o755))
	require.NoError(t, fs.MkdirAll("/work/app/src", 0o755))
	require.NoError(t, fs.MkdirAll("/work/lib", 0o755))

	ui := controllermocks.NewMockUI(t)
	store := adapter.NewFileReportStore(fs)

	return &workflowFixture{
		fs:    fs,
		ui:    ui,
		store: store,
		wf:    NewWorkflow(adapter.NewSourceFSAdapter(fs), store, ui),
	}
}

func (f *workflowFixture) write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(f.fs, path, []byte(content), 0o644))
}

func (f *workflowFixture) captureReport() *m.Report {
	captured := &m.Report{}
	f.ui.On("DisplayReport", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			*captured = args.Get(1).(m.Report)
		}).
		Return(nil).
		Once()

	return captured
}

func TestWorkflow_Status_InSyncAndMissingLocally(t *testing.T) {
	f := newWorkflowFixture(t)
	f.write(t, "/work/app/.gitsync", scenarioManifest)
	f.write(t, "/work/lib/a.txt", "hello")
	f.write(t, "/work/app/a.txt", "hello")
	f.write(t, "/work/lib/b c.txt", "x")

	report := f.captureReport()

	err := f.wf.Status(context.Background(), StatusArgs{Start: "/work/app/src"})
	require.NoError(t, err)

	assert.Equal(t, m.Path("/work/app"), report.RepoRoot)
	assert.Equal(t, m.Path("/work/app/.gitsync"), report.Manifest)
	require.Len(t, report.Repos, 1)

	repo := report.Repos[0]
	assert.Equal(t, "lib", repo.Name)
	assert.Equal(t, m.Path("/work/lib"), repo.Root)
	require.Len(t, repo.Entries, 2)
	assert.Equal(t, m.InSync, repo.Entries[0].Status)
	assert.Equal(t, m.MissingLocally, repo.Entries[1].Status)
	assert.Equal(t, m.Path("/work/app/b c.txt"), repo.Entries[1].DestinationPath)
}

func TestWorkflow_Status_MissingSourceRepoContinues(t *testing.T) {
	f := newWorkflowFixture(t)
	f.write(t, "/work/app/.gitsync", "SourceRepo nope\nSync a a\nSourceRepo lib\nSync a.txt a.txt\n")
	f.write(t, "/work/lib/a.txt", "hello")
	f.write(t, "/work/app/a.txt", "hello")

	report := f.captureReport()

	err := f.wf.Status(context.Background(), StatusArgs{Start: "/work/app"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceRootMissing)
	assert.Contains(t, err.Error(), "SourceRepo nope does not exist at '/work/nope'")

	require.Len(t, report.Repos, 2)
	assert.True(t, report.Repos[0].Failed())
	assert.Empty(t, report.Repos[0].Entries)
	assert.False(t, report.Repos[1].Failed())
	assert.Equal(t, m.InSync, report.Repos[1].Entries[0].Status)
	assert.Equal(t, 1, report.FailedRepos())
}

func TestWorkflow_Status_UsesOverrides(t *testing.T) {
	f := newWorkflowFixture(t)
	require.NoError(t, f.fs.MkdirAll("/elsewhere/lib", 0o755))
	f.write(t, "/work/app/.gitsync", "SourceRepo lib\nSync a.txt a.txt\n")
	f.write(t, "/elsewhere/lib/a.txt", "hello")
	f.write(t, "/work/app/a.txt", "bye")

	report := f.captureReport()

	err := f.wf.Status(context.Background(), StatusArgs{
		Start:     "/work/app",
		Overrides: map[string]string{"lib": "/elsewhere/lib"},
	})
	require.NoError(t, err)
	assert.Equal(t, m.Path("/elsewhere/lib"), report.Repos[0].Root)
	assert.Equal(t, m.Modified, report.Repos[0].Entries[0].Status)
}

func TestWorkflow_Status_CustomManifestName(t *testing.T) {
	f := newWorkflowFixture(t)
	f.write(t, "/work/app/sync.manifest", "SourceRepo lib\n")

	report := f.captureReport()

	err := f.wf.Status(context.Background(), StatusArgs{Start: "/work/app", Manifest: "sync.manifest"})
	require.NoError(t, err)
	assert.Equal(t, m.Path("/work/app/sync.manifest"), report.Manifest)
	require.Len(t, report.Repos, 1)
	assert.Empty(t, report.Repos[0].Entries)
}

func TestWorkflow_Status_ManifestNotFound(t *testing.T) {
	f := newWorkflowFixture(t)

	err := f.wf.Status(context.Background(), StatusArgs{Start: "/work/app"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrManifestNotFound)
	assert.Contains(t, err.Error(), "gitsync file '/work/app/.gitsync' does not exist")
	f.ui.AssertNotCalled(t, "DisplayReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_Status_ParseErrorCarriesLine(t *testing.T) {
	f := newWorkflowFixture(t)
	f.write(t, "/work/app/.gitsync", "SourceRepo lib\nSync onlyone\n")

	err := f.wf.Status(context.Background(), StatusArgs{Start: "/work/app"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidManifest)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 2, parseErr.Line)
	assert.Equal(t, "error in .gitsync file: line 2: expected Sync directive to have 2 arguments but got 1", err.Error())
}

func TestWorkflow_Status_RepoRootNotFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/nowhere/deep", 0o755))

	ui := controllermocks.NewMockUI(t)
	wf := NewWorkflow(adapter.NewSourceFSAdapter(fs), adapter.NewFileReportStore(fs), ui)

	err := wf.Status(context.Background(), StatusArgs{Start: "/nowhere/deep"})
	assert.ErrorIs(t, err, ErrRepoRootNotFound)
}

func TestWorkflow_Status_SavesReport(t *testing.T) {
	f := newWorkflowFixture(t)
	f.write(t, "/work/app/.gitsync", scenarioManifest)
	f.write(t, "/work/lib/a.txt", "hello")

	f.captureReport()

	err := f.wf.Status(context.Background(), StatusArgs{Start: "/work/app", Report: "/tmp/status.json"})
	require.NoError(t, err)

	saved, err := f.store.LoadReport("/tmp/status.json")
	require.NoError(t, err)
	require.Len(t, saved.Repos, 1)
	assert.Equal(t, m.MissingLocally, saved.Repos[0].Entries[0].Status)
	assert.Equal(t, m.MissingBoth, saved.Repos[0].Entries[1].Status)
}

func TestWorkflow_Status_SavesReportEvenWhenBlocksFail(t *testing.T) {
	f := newWorkflowFixture(t)
	f.write(t, "/work/app/.gitsync", "SourceRepo nope\n")

	f.captureReport()

	err := f.wf.Status(context.Background(), StatusArgs{Start: "/work/app", Report: "/tmp/status.yaml"})
	assert.ErrorIs(t, err, ErrSourceRootMissing)

	saved, loadErr := f.store.LoadReport("/tmp/status.yaml")
	require.NoError(t, loadErr)
	require.Len(t, saved.Repos, 1)
	assert.True(t, saved.Repos[0].Failed())
}

func TestWorkflow_Status_DisplayError(t *testing.T) {
	f := newWorkflowFixture(t)
	f.write(t, "/work/app/.gitsync", "SourceRepo lib\n")
	f.ui.On("DisplayReport", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broken pipe"))

	err := f.wf.Status(context.Background(), StatusArgs{Start: "/work/app"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestWorkflow_View(t *testing.T) {
	f := newWorkflowFixture(t)

	stored := m.Report{
		RepoRoot: "/work/app",
		Repos: []m.RepoReport{{
			Name:    "lib",
			Entries: []m.Entry{{Mapping: m.Mapping{Source: "a", Destination: "a"}, Status: m.Modified}},
		}},
	}
	require.NoError(t, f.store.SaveReport("/tmp/r.json", stored))

	report := f.captureReport()

	require.NoError(t, f.wf.View(context.Background(), ViewArgs{Report: "/tmp/r.json"}))
	assert.Equal(t, stored.RepoRoot, report.RepoRoot)
	assert.Equal(t, m.Modified, report.Repos[0].Entries[0].Status)
}

func TestWorkflow_View_MissingReport(t *testing.T) {
	f := newWorkflowFixture(t)

	err := f.wf.View(context.Background(), ViewArgs{Report: "/tmp/none.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load report")
}
