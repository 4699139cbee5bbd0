package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/qrsheet/pkg/errors"
	"github.com/matzehuels/qrsheet/pkg/session"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	ws, err := session.NewWorkspace(t.TempDir(), session.NewMemoryRegistry())
	require.NoError(t, err)
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
	return NewRunner(ws, nil, nil, logger)
}

func sessionDirs(t *testing.T, r *Runner) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(r.Workspace.Root)
	require.NoError(t, err)
	return entries
}

func TestExecuteBoth(t *testing.T) {
	r := newTestRunner(t)
	codes := []string{"ABC-123", "ABC/123", " 42 ", "", "https://example.com/products/12345"}

	res, err := r.Execute(context.Background(), codes, Options{Output: OutputBoth, IncludeText: true})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Stats.TotalCodes)
	assert.Equal(t, 3, res.Stats.MicroCount)
	assert.Equal(t, 1, res.Stats.StandardCount)
	assert.Equal(t, 176, res.Stats.PerPage)
	assert.Equal(t, 1, res.Stats.TotalPages)
	require.NotNil(t, res.Layout)

	assert.FileExists(t, res.Artifacts[ArtifactPDF])
	assert.FileExists(t, res.Artifacts[ArtifactZIP])
	for i, s := range res.Symbols {
		assert.Equal(t, filepath.Join(res.Dir, SymbolDir, fmt.Sprintf("qr_%d.png", i)), s.Path)
		assert.FileExists(t, s.Path)
	}

	zr, err := zip.OpenReader(res.Artifacts[ArtifactZIP])
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"ABC_123.png", "ABC_123_2.png", "42.png", "https___example_com_products_12345.png"}, names)
	assert.Equal(t, names, res.ArchiveNames)

	opened, err := r.Workspace.Open(context.Background(), res.SessionID, 0)
	require.NoError(t, err)
	assert.Equal(t, res.Dir, opened.Dir)
}

func TestExecuteZIPOnlySkipsLayout(t *testing.T) {
	r := newTestRunner(t)

	// a symbol too large for the page only matters for the PDF
	res, err := r.Execute(context.Background(), []string{"1", "2"}, Options{Size: 900, Output: OutputZIP})
	require.NoError(t, err)
	assert.Nil(t, res.Layout)
	assert.Zero(t, res.Stats.TotalPages)
	assert.NotContains(t, res.Artifacts, ArtifactPDF)
	assert.FileExists(t, res.Artifacts[ArtifactZIP])
}

func TestExecuteLayoutFailureLeavesNothing(t *testing.T) {
	r := newTestRunner(t)

	_, err := r.Execute(context.Background(), []string{"1"}, Options{Size: 900})
	assert.True(t, errors.Is(err, errors.ErrCodeSymbolTooLarge))
	assert.Empty(t, sessionDirs(t, r))

	_, err = r.Execute(context.Background(), []string{"1"}, Options{PageMargin: 400})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidMargin))
	assert.Empty(t, sessionDirs(t, r))
}

func TestExecuteValidationErrors(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	_, err := r.Execute(ctx, nil, Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeEmptySource))

	_, err = r.Execute(ctx, []string{"1"}, Options{Output: "svg"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	assert.Empty(t, sessionDirs(t, r))
}

func TestExecuteCanceledDiscardsSession(t *testing.T) {
	r := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Execute(ctx, []string{"1", "2", "3"}, Options{})
	require.Error(t, err)
	assert.Empty(t, sessionDirs(t, r))

	list, err := r.Workspace.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSingle(t *testing.T) {
	r := newTestRunner(t)

	res, err := r.Single(context.Background(), "https://example.com", Options{Size: 100, ErrorLevel: "m"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(res.Dir, FileSingle), res.Artifacts[ArtifactPNG])
	assert.FileExists(t, res.Artifacts[ArtifactPNG])
	require.Len(t, res.Symbols, 1)
	assert.Equal(t, 4, res.Symbols[0].Scale)

	_, err = r.Single(context.Background(), "", Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeEmptySource))
}
