package domain

import "time"

type Post struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FileResource is an attachment of a post. It is only ever loaded on
// request, never together with the post.
type FileResource struct {
	ID        int64
	PostID    int64
	Name      string
	URL       string
	CreatedAt time.Time
}

type PageMeta struct {
	Page     int
	Count    int64
	MaxCount int
}

type PostPage struct {
	Meta      PageMeta
	Documents []Post
}
