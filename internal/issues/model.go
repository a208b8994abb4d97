package issues

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

const dateLayout = "2006-01-02"

type Article struct {
	UUID       string   `json:"uuid" yaml:"uuid"`
	NodeNumber int      `json:"node_number,omitempty" yaml:"node_number"`
	Title      string   `json:"title,omitempty" yaml:"title"`
	Authors    []string `json:"authors,omitempty" yaml:"authors"`
	Abstract   string   `json:"abstract,omitempty" yaml:"abstract"`
	URL        string   `json:"url,omitempty" yaml:"url"`
}

// Issue is a dated collection of articles. Only DatePublished and the
// article uuids/node numbers matter to the registry.
type Issue struct {
	UUID          string    `json:"uuid,omitempty" yaml:"uuid"`
	Title         string    `json:"title,omitempty" yaml:"title"`
	Volume        int       `json:"volume,omitempty" yaml:"volume"`
	Number        int       `json:"number,omitempty" yaml:"number"`
	DatePublished string    `json:"date_published" yaml:"date_published"`
	Articles      []Article `json:"articles" yaml:"articles"`
}

// NodeMatch is a node lookup hit: Issue.Articles[Index] == Article.
type NodeMatch struct {
	Article Article `json:"article"`
	Issue   Issue   `json:"issue"`
	Index   int     `json:"index"`
}

// DateKey is the part of DatePublished before the first 'T'.
func (i Issue) DateKey() string {
	d, _, _ := strings.Cut(i.DatePublished, "T")
	return d
}

func (a Article) clone() Article {
	a.Authors = slices.Clone(a.Authors)
	return a
}

func (i Issue) clone() Issue {
	arts := make([]Article, len(i.Articles))
	for k, a := range i.Articles {
		arts[k] = a.clone()
	}
	i.Articles = arts
	return i
}

func (i Issue) contains(uuid string) bool {
	for _, a := range i.Articles {
		if a.UUID == uuid {
			return true
		}
	}
	return false
}

func validateArticle(a Article) error {
	if strings.TrimSpace(a.UUID) == "" {
		return fmt.Errorf("%w: article uuid is empty", ErrInvalidInput)
	}
	if a.NodeNumber < 0 {
		return fmt.Errorf("%w: article %s: negative node number %d", ErrInvalidInput, a.UUID, a.NodeNumber)
	}
	return nil
}

func validateIssue(i Issue) error {
	d := i.DateKey()
	if d == "" {
		return fmt.Errorf("%w: issue date_published is empty", ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, d); err != nil {
		return fmt.Errorf("%w: issue date_published %q: %v", ErrInvalidInput, i.DatePublished, err)
	}

	seen := make(map[string]struct{}, len(i.Articles))
	for k, a := range i.Articles {
		if err := validateArticle(a); err != nil {
			return fmt.Errorf("issue %s article %d: %w", d, k, err)
		}
		if _, dup := seen[a.UUID]; dup {
			return fmt.Errorf("%w: issue %s: duplicate article uuid %s", ErrInvalidInput, d, a.UUID)
		}
		seen[a.UUID] = struct{}{}
	}
	return nil
}
