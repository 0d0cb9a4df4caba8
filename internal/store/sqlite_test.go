package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope/codescope/internal/extract"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUpsertRepoIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.UpsertRepo(ctx, "/repo/a")
	require.NoError(t, err)
	second, err := s.UpsertRepo(ctx, "/repo/a")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	other, err := s.UpsertRepo(ctx, "/repo/b")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestGetRepoNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetRepo(context.Background(), "/nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertFileKeepsIDStable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	repo, err := s.UpsertRepo(ctx, "/repo")
	require.NoError(t, err)

	id1, err := s.UpsertFile(ctx, repo.ID, "main.go", 1000, 10)
	require.NoError(t, err)

	id2, err := s.UpsertFile(ctx, repo.ID, "main.go", 2000, 20)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	files, err := s.GetIndexedFiles(ctx, repo.ID)
	require.NoError(t, err)
	require.Contains(t, files, "main.go")
	assert.Equal(t, int64(2000), files["main.go"].Mtime)
	assert.Equal(t, int64(20), files["main.go"].Size)
}

func TestReplaceFileIndexSwapsRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	repo, err := s.UpsertRepo(ctx, "/repo")
	require.NoError(t, err)
	fileID, err := s.UpsertFile(ctx, repo.ID, "main.go", 1000, 10)
	require.NoError(t, err)

	err = s.ReplaceFileIndex(ctx, fileID,
		[]*extract.Symbol{
			{Name: "Run", Kind: extract.KindFunction, StartLine: 3, EndLine: 9, Exported: true, Signature: "()"},
			{Name: "helper", Kind: extract.KindFunction, StartLine: 11, EndLine: 12},
		},
		[]*extract.Import{
			{Name: "fmt", Path: "fmt", Line: 1},
		})
	require.NoError(t, err)

	matches, err := s.LookupSymbol(ctx, repo.ID, "Run")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "main.go", matches[0].FilePath)
	assert.Equal(t, 3, matches[0].StartLine)
	assert.True(t, matches[0].Exported)

	// Replacing drops the old rows.
	err = s.ReplaceFileIndex(ctx, fileID,
		[]*extract.Symbol{{Name: "Other", Kind: extract.KindFunction, StartLine: 1, EndLine: 1}}, nil)
	require.NoError(t, err)

	matches, err = s.LookupSymbol(ctx, repo.ID, "Run")
	require.NoError(t, err)
	assert.Empty(t, matches)

	st, err := s.GetStatus(ctx, repo.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Symbols)
	assert.Equal(t, 0, st.Imports)
}

func TestDeleteFileCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	repo, err := s.UpsertRepo(ctx, "/repo")
	require.NoError(t, err)
	fileID, err := s.UpsertFile(ctx, repo.ID, "old.go", 1000, 10)
	require.NoError(t, err)

	err = s.ReplaceFileIndex(ctx, fileID,
		[]*extract.Symbol{{Name: "Gone", Kind: extract.KindFunction, StartLine: 1, EndLine: 2}},
		[]*extract.Import{{Name: "os", Path: "os", Line: 1}})
	require.NoError(t, err)

	require.NoError(t, s.DeleteFile(ctx, repo.ID, "old.go"))

	st, err := s.GetStatus(ctx, repo.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Files)
	assert.Equal(t, 0, st.Symbols, "symbol rows cascade with their file")
	assert.Equal(t, 0, st.Imports, "import rows cascade with their file")
}

func TestFindImporters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	repo, err := s.UpsertRepo(ctx, "/repo")
	require.NoError(t, err)

	aID, err := s.UpsertFile(ctx, repo.ID, "a.ts", 1, 1)
	require.NoError(t, err)
	bID, err := s.UpsertFile(ctx, repo.ID, "b.ts", 1, 1)
	require.NoError(t, err)

	require.NoError(t, s.ReplaceFileIndex(ctx, aID, nil, []*extract.Import{
		{Name: "default", Path: "react", Line: 1, LocalName: "React"},
	}))
	require.NoError(t, s.ReplaceFileIndex(ctx, bID, nil, []*extract.Import{
		{Name: "*", Path: "react", Line: 2, IsNamespace: true},
		{Name: "_", Path: "./styles.css", Line: 3},
	}))

	matches, err := s.FindImporters(ctx, repo.ID, "react")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "a.ts", matches[0].FilePath)
	assert.Equal(t, "b.ts", matches[1].FilePath)
	assert.True(t, matches[1].IsNamespace)

	none, err := s.FindImporters(ctx, repo.ID, "vue")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetStatusUnknownRepo(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetStatus(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
