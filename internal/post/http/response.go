package http

import (
	"time"

	"github.com/WooodHead/everpost-backend/internal/post/domain"
)

type PostResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreateDate time.Time `json:"createDate"`
	ModifyDate time.Time `json:"modifyDate"`
}

type FileResourceResponse struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"postId"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	CreateDate time.Time `json:"createDate"`
}

type PageMetaResponse struct {
	Page     int   `json:"page"`
	Count    int64 `json:"count"`
	MaxCount int   `json:"maxCount"`
}

type PostPageResponse struct {
	Meta      PageMetaResponse `json:"meta"`
	Documents []PostResponse   `json:"documents"`
}

func ToPostResponse(p domain.Post) PostResponse {
	return PostResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		Title:      p.Title,
		Content:    p.Content,
		CreateDate: p.CreatedAt,
		ModifyDate: p.UpdatedAt,
	}
}

func ToFileResourceResponse(f domain.FileResource) FileResourceResponse {
	return FileResourceResponse{
		ID:         f.ID,
		PostID:     f.PostID,
		Name:       f.Name,
		URL:        f.URL,
		CreateDate: f.CreatedAt,
	}
}

// ToPostPageResponse always emits documents as an array, never null.
func ToPostPageResponse(p domain.PostPage) PostPageResponse {
	docs := make([]PostResponse, 0, len(p.Documents))
	for _, post := range p.Documents {
		docs = append(docs, ToPostResponse(post))
	}
	return PostPageResponse{
		Meta: PageMetaResponse{
			Page:     p.Meta.Page,
			Count:    p.Meta.Count,
			MaxCount: p.Meta.MaxCount,
		},
		Documents: docs,
	}
}
