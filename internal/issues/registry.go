package issues

import "sort"

// Registry holds the known issues and the flat article list.
//
// Issues are kept ascending by date portion, ties in insertion order.
// Articles are kept in insertion order and are unique by uuid. A Registry
// is not safe for concurrent use; MemStore wraps one for that.
type Registry struct {
	issues   []Issue
	articles []Article
}

func NewRegistry() *Registry {
	return &Registry{}
}

// AddIssue inserts a copy of issue after every issue dated on or before it.
func (r *Registry) AddIssue(issue Issue) error {
	if err := validateIssue(issue); err != nil {
		return err
	}

	key := issue.DateKey()
	pos := sort.Search(len(r.issues), func(i int) bool {
		return r.issues[i].DateKey() > key
	})

	r.issues = append(r.issues, Issue{})
	copy(r.issues[pos+1:], r.issues[pos:])
	r.issues[pos] = issue.clone()
	return nil
}

// AddArticle appends article unless one with the same uuid is stored.
func (r *Registry) AddArticle(article Article) error {
	_, err := r.AddArticleReport(article)
	return err
}

// AddArticleReport is AddArticle that also reports whether the article was
// stored (false for a duplicate uuid).
func (r *Registry) AddArticleReport(article Article) (bool, error) {
	if err := validateArticle(article); err != nil {
		return false, err
	}
	if _, ok := r.ArticleByUUID(article.UUID); ok {
		return false, nil
	}
	r.articles = append(r.articles, article.clone())
	return true, nil
}

// Issue returns the earliest issue containing an article with article's uuid.
func (r *Registry) Issue(article Article) (Issue, bool) {
	for _, is := range r.issues {
		if is.contains(article.UUID) {
			return is.clone(), true
		}
	}
	return Issue{}, false
}

func (r *Registry) ArticleByUUID(uuid string) (Article, bool) {
	for _, a := range r.articles {
		if a.UUID == uuid {
			return a.clone(), true
		}
	}
	return Article{}, false
}

// ArticleWithIssue returns the flat-list article for uuid together with
// the issue containing it. hasIssue is false when no issue lists it.
func (r *Registry) ArticleWithIssue(uuid string) (a Article, is Issue, hasIssue, ok bool) {
	a, ok = r.ArticleByUUID(uuid)
	if !ok {
		return Article{}, Issue{}, false, false
	}
	is, hasIssue = r.Issue(a)
	return a, is, hasIssue, true
}

// ArticleByNode scans issues in date order and each issue's articles in
// order. Node number 0 means untagged and never matches.
func (r *Registry) ArticleByNode(node int) (NodeMatch, bool) {
	if node == 0 {
		return NodeMatch{}, false
	}
	for _, is := range r.issues {
		for j, a := range is.Articles {
			if a.NodeNumber == node {
				c := is.clone()
				return NodeMatch{Article: c.Articles[j], Issue: c, Index: j}, true
			}
		}
	}
	return NodeMatch{}, false
}

func (r *Registry) Issues() []Issue {
	out := make([]Issue, len(r.issues))
	for i, is := range r.issues {
		out[i] = is.clone()
	}
	return out
}

func (r *Registry) Articles() []Article {
	out := make([]Article, len(r.articles))
	for i, a := range r.articles {
		out[i] = a.clone()
	}
	return out
}

func (r *Registry) Len() (issues, articles int) {
	return len(r.issues), len(r.articles)
}
