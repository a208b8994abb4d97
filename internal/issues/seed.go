package issues

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is the YAML bootstrap document:
//
//	issues:
//	  - date_published: "2020-01-01T00:00:00"
//	    articles: [{uuid: a1, node_number: 3}]
//	articles:
//	  - uuid: a1
type Seed struct {
	Issues   []Issue   `yaml:"issues"`
	Articles []Article `yaml:"articles"`
}

type SeedResult struct {
	Issues     int
	Articles   int
	Duplicates int
}

func LoadSeed(path string) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) (Seed, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var s Seed
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	return s, nil
}

// ApplySeed inserts issues then articles into store and stops at the first
// rejected record.
func ApplySeed(ctx context.Context, store Store, s Seed) (SeedResult, error) {
	var res SeedResult

	for i, is := range s.Issues {
		if err := store.AddIssue(ctx, is); err != nil {
			return res, fmt.Errorf("seed issue %d: %w", i, err)
		}
		res.Issues++
	}

	for i, a := range s.Articles {
		added, err := store.AddArticle(ctx, a)
		if err != nil {
			return res, fmt.Errorf("seed article %d: %w", i, err)
		}
		if added {
			res.Articles++
		} else {
			res.Duplicates++
		}
	}

	return res, nil
}
