package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestFileStoreGoldenDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	fs := NewFileStore(path)

	require.NoError(t, fs.Append(context.Background(), makeSubmission(1)))
	require.NoError(t, fs.Append(context.Background(), makeSubmission(2)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "two_submissions", raw)
}
