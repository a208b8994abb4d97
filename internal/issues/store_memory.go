package issues

import (
	"context"
	"sync"
)

type MemStore struct {
	mu  sync.RWMutex
	reg *Registry
}

func NewMemStore() *MemStore {
	return &MemStore{reg: NewRegistry()}
}

func NewStore() Store {
	return NewMemStore()
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) AddIssue(ctx context.Context, is Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.AddIssue(is)
}

func (s *MemStore) AddArticle(ctx context.Context, a Article) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.AddArticleReport(a)
}

func (s *MemStore) ListIssues(ctx context.Context) ([]Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.Issues(), nil
}

func (s *MemStore) ListArticles(ctx context.Context) ([]Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.Articles(), nil
}

func (s *MemStore) IssueFor(ctx context.Context, articleUUID string) (Issue, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	is, ok := s.reg.Issue(Article{UUID: articleUUID})
	return is, ok, nil
}

func (s *MemStore) Article(ctx context.Context, uuid string) (ArticleView, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, is, hasIssue, ok := s.reg.ArticleWithIssue(uuid)
	if !ok {
		return ArticleView{}, false, nil
	}
	v := ArticleView{Article: a}
	if hasIssue {
		v.Issue = &is
	}
	return v, true, nil
}

func (s *MemStore) ArticleByNode(ctx context.Context, node int) (NodeMatch, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.reg.ArticleByNode(node)
	return m, ok, nil
}

func (s *MemStore) Counts(ctx context.Context) (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, a := s.reg.Len()
	return i, a, nil
}
