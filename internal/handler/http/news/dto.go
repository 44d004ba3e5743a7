// Package news provides the HTTP handlers of the news application: the
// home page, the news detail page with its comment form, and the comment
// edit and delete pages.
package news

import (
	"time"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/repository"
)

// NewsDTO is a news item in page contexts.
type NewsDTO struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Text         string `json:"text"`
	Date         string `json:"date"`
	CommentCount *int64 `json:"comment_count,omitempty"`
}

// CommentDTO is a comment in page contexts.
type CommentDTO struct {
	ID      int64     `json:"id"`
	NewsID  int64     `json:"news_id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

func newsDTO(n *entity.News) NewsDTO {
	return NewsDTO{
		ID:    n.ID,
		Title: n.Title,
		Text:  n.Text,
		Date:  n.Date.Format(time.DateOnly),
	}
}

func newsListDTO(items []repository.NewsWithCommentCount) []NewsDTO {
	out := make([]NewsDTO, 0, len(items))
	for _, it := range items {
		d := newsDTO(it.News)
		count := it.CommentCount
		d.CommentCount = &count
		out = append(out, d)
	}
	return out
}

func commentDTO(c *entity.Comment) CommentDTO {
	return CommentDTO{
		ID:      c.ID,
		NewsID:  c.NewsID,
		Author:  c.AuthorName,
		Text:    c.Text,
		Created: c.CreatedAt,
	}
}

func commentListDTO(cs []*entity.Comment) []CommentDTO {
	out := make([]CommentDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, commentDTO(c))
	}
	return out
}
