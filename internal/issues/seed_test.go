package issues

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleSeed = `
issues:
  - title: Spring
    date_published: "2020-04-01T00:00:00"
    articles:
      - uuid: a2
        node_number: 2
  - title: Winter
    date_published: "2020-01-01T00:00:00"
    articles:
      - uuid: a1
        node_number: 1
        authors: [Ada]
articles:
  - uuid: a1
    title: First
  - uuid: a1
    title: First again
  - uuid: a2
`

func TestLoadSeed_Apply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o600))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed.Issues, 2)
	require.Len(t, seed.Articles, 3)

	s := NewMemStore()
	res, err := ApplySeed(context.Background(), s, seed)
	require.NoError(t, err)
	require.Equal(t, SeedResult{Issues: 2, Articles: 2, Duplicates: 1}, res)

	issues, err := s.ListIssues(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Winter", issues[0].Title)
	require.Equal(t, []string{"Ada"}, issues[0].Articles[0].Authors)

	v, ok, err := s.Article(context.Background(), "a1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "First", v.Article.Title)
}

func TestParseSeed_UnknownField(t *testing.T) {
	_, err := ParseSeed([]byte("issues: []\nextra: 1\n"))
	require.Error(t, err)
}

func TestParseSeed_Empty(t *testing.T) {
	seed, err := ParseSeed(nil)
	require.NoError(t, err)
	require.Empty(t, seed.Issues)
}

func TestApplySeed_StopsAtInvalid(t *testing.T) {
	seed := Seed{
		Issues: []Issue{
			{DatePublished: "2020-01-01"},
			{DatePublished: "not-a-date"},
			{DatePublished: "2020-01-03"},
		},
	}

	s := NewMemStore()
	res, err := ApplySeed(context.Background(), s, seed)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Contains(t, err.Error(), "seed issue 1")
	require.Equal(t, 1, res.Issues)
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
