package repository

import (
	"context"
	"errors"
	"time"

	commondb "github.com/WooodHead/everpost-backend/internal/common/db"
	"github.com/WooodHead/everpost-backend/internal/post/domain"
)

var ErrPostNotFound = errors.New("post not found")

type Repository interface {
	Create(ctx context.Context, userID int64, title, content string) (domain.Post, error)
	FindByID(ctx context.Context, id int64) (domain.Post, error)
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]domain.Post, int64, error)
	ListFileResources(ctx context.Context, postID int64) ([]domain.FileResource, error)
	CreateFileResource(ctx context.Context, postID int64, name, url string) (domain.FileResource, error)
}

const postColumns = `id, user_id, title, content, created_at, updated_at`

type PgRepository struct {
	db commondb.DBTX
}

func NewPgRepository(db commondb.DBTX) *PgRepository {
	return &PgRepository{db: db}
}

func (r *PgRepository) Create(ctx context.Context, userID int64, title, content string) (domain.Post, error) {
	start := time.Now()
	var p domain.Post
	err := r.db.QueryRow(
		ctx,
		`INSERT INTO posts (user_id, title, content) VALUES ($1, $2, $3) RETURNING `+postColumns,
		userID,
		title,
		content,
	).Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	if err := commondb.HandleExecError(err, "create post", start); err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.Post, error) {
	start := time.Now()
	var p domain.Post
	err := r.db.QueryRow(
		ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	if err := commondb.HandleQueryError(err, ErrPostNotFound, "find post by id", start); err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

// ListByUser returns one page of the user's posts, oldest first, together
// with the total number of posts the user has.
func (r *PgRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]domain.Post, int64, error) {
	start := time.Now()

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE user_id = $1`, userID).Scan(&total)
	if err := commondb.HandleExecError(err, "count posts by user", start); err != nil {
		return nil, 0, err
	}

	start = time.Now()
	rows, err := r.db.Query(
		ctx,
		`SELECT `+postColumns+`
		 FROM posts
		 WHERE user_id = $1
		 ORDER BY created_at ASC, id ASC
		 OFFSET $2
		 LIMIT $3`,
		userID,
		offset,
		limit,
	)
	if err != nil {
		return nil, 0, commondb.HandleExecError(err, "list posts by user", start)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0, limit)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, commondb.HandleExecError(err, "scan post", start)
		}
		posts = append(posts, p)
	}
	if err := commondb.HandleExecError(rows.Err(), "list posts by user", start); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *PgRepository) ListFileResources(ctx context.Context, postID int64) ([]domain.FileResource, error) {
	start := time.Now()
	rows, err := r.db.Query(
		ctx,
		`SELECT id, post_id, name, url, created_at
		 FROM file_resources
		 WHERE post_id = $1
		 ORDER BY id ASC`,
		postID,
	)
	if err != nil {
		return nil, commondb.HandleExecError(err, "list file resources", start)
	}
	defer rows.Close()

	files := []domain.FileResource{}
	for rows.Next() {
		var f domain.FileResource
		if err := rows.Scan(&f.ID, &f.PostID, &f.Name, &f.URL, &f.CreatedAt); err != nil {
			return nil, commondb.HandleExecError(err, "scan file resource", start)
		}
		files = append(files, f)
	}
	if err := commondb.HandleExecError(rows.Err(), "list file resources", start); err != nil {
		return nil, err
	}

	return files, nil
}

func (r *PgRepository) CreateFileResource(ctx context.Context, postID int64, name, url string) (domain.FileResource, error) {
	start := time.Now()
	var f domain.FileResource
	err := r.db.QueryRow(
		ctx,
		`INSERT INTO file_resources (post_id, name, url) VALUES ($1, $2, $3)
		 RETURNING id, post_id, name, url, created_at`,
		postID,
		name,
		url,
	).Scan(&f.ID, &f.PostID, &f.Name, &f.URL, &f.CreatedAt)
	if err := commondb.HandleExecError(err, "create file resource", start); err != nil {
		return domain.FileResource{}, err
	}
	return f, nil
}
