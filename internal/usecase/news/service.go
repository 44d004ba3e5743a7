package news

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"newsnotes/internal/common/pagination"
	"newsnotes/internal/domain/entity"
	"newsnotes/internal/repository"
)

// DefaultCountOnHomePage is used when Service.CountOnHomePage is not set.
const DefaultCountOnHomePage = 10

// Service provides the news read use cases.
type Service struct {
	News     repository.NewsRepository
	Comments repository.CommentRepository

	// CountOnHomePage caps the number of news items on one home page.
	CountOnHomePage int
}

// HomePage is one page of the news listing, newest first.
type HomePage struct {
	News       []repository.NewsWithCommentCount
	Pagination pagination.Metadata
}

// DetailPage is a news item with its comments in chronological order.
type DetailPage struct {
	News     *entity.News
	Comments []*entity.Comment
}

func (s *Service) pageSize() int {
	if s.CountOnHomePage > 0 {
		return s.CountOnHomePage
	}
	return DefaultCountOnHomePage
}

// Home returns the given 1-based page of news ordered by date descending.
// At most CountOnHomePage items are returned.
func (s *Service) Home(ctx context.Context, page int) (*HomePage, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}
	params := pagination.Params{Page: page, Limit: s.pageSize()}

	total, err := s.News.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count news: %w", err)
	}

	items, err := s.News.ListPage(ctx, params.Offset(), params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list news page: %w", err)
	}
	if items == nil {
		items = []repository.NewsWithCommentCount{}
	}

	return &HomePage{
		News:       items,
		Pagination: pagination.NewMetadata(params, total),
	}, nil
}

// Detail loads a news item and its comments concurrently.
// Returns ErrNewsNotFound if the news item does not exist.
func (s *Service) Detail(ctx context.Context, id int64) (*DetailPage, error) {
	if id <= 0 {
		return nil, ErrInvalidNewsID
	}

	var (
		news     *entity.News
		comments []*entity.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.News.Get(gctx, id)
		if err != nil {
			return fmt.Errorf("get news: %w", err)
		}
		news = n
		return nil
	})
	g.Go(func() error {
		c, err := s.Comments.ListByNews(gctx, id)
		if err != nil {
			return fmt.Errorf("list comments: %w", err)
		}
		comments = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if news == nil {
		return nil, ErrNewsNotFound
	}
	if comments == nil {
		comments = []*entity.Comment{}
	}
	return &DetailPage{News: news, Comments: comments}, nil
}
