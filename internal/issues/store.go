package issues

import "context"

type Store interface {
	Ping(ctx context.Context) error

	AddIssue(ctx context.Context, is Issue) error
	AddArticle(ctx context.Context, a Article) (added bool, err error)

	ListIssues(ctx context.Context) ([]Issue, error)
	ListArticles(ctx context.Context) ([]Article, error)

	IssueFor(ctx context.Context, articleUUID string) (Issue, bool, error)
	Article(ctx context.Context, uuid string) (ArticleView, bool, error)
	ArticleByNode(ctx context.Context, node int) (NodeMatch, bool, error)

	Counts(ctx context.Context) (issues, articles int, err error)
}

// ArticleView is a flat-list article with the issue that lists it, if any.
type ArticleView struct {
	Article Article `json:"article"`
	Issue   *Issue  `json:"issue,omitempty"`
}
