package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WooodHead/everpost-backend/internal/common/db/dbtest"
	"github.com/WooodHead/everpost-backend/internal/post/repository"
	userrepo "github.com/WooodHead/everpost-backend/internal/user/repository"
)

func TestPgRepository_ListByUserPages(t *testing.T) {
	pool := dbtest.Open(t)
	users := userrepo.NewPgRepository(pool)
	posts := repository.NewPgRepository(pool)
	ctx := context.Background()

	author, err := users.Create(ctx, dbtest.UniqueEmail(), "author")
	require.NoError(t, err)

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		_, err := posts.Create(ctx, author.ID, title, "body")
		require.NoError(t, err)
	}

	page, total, err := posts.ListByUser(ctx, author.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, "first", page[0].Title)
	assert.Equal(t, "second", page[1].Title)

	page, total, err = posts.ListByUser(ctx, author.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "third", page[0].Title)

	page, total, err = posts.ListByUser(ctx, author.ID, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, page)
}

func TestPgRepository_FileResources(t *testing.T) {
	pool := dbtest.Open(t)
	users := userrepo.NewPgRepository(pool)
	posts := repository.NewPgRepository(pool)
	ctx := context.Background()

	author, err := users.Create(ctx, dbtest.UniqueEmail(), "")
	require.NoError(t, err)
	post, err := posts.Create(ctx, author.ID, "with files", "body")
	require.NoError(t, err)

	files, err := posts.ListFileResources(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, files)

	file, err := posts.CreateFileResource(ctx, post.ID, "a.png", "https://cdn.example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, post.ID, file.PostID)

	files, err = posts.ListFileResources(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.png", files[0].Name)

	_, err = posts.FindByID(ctx, -1)
	assert.ErrorIs(t, err, repository.ErrPostNotFound)

	require.NoError(t, users.Delete(ctx, author.ID))
	_, err = posts.FindByID(ctx, post.ID)
	assert.ErrorIs(t, err, repository.ErrPostNotFound, "posts cascade with their author")
}
