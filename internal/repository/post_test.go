package repository

import (
	"context"
	"testing"

	"civicvoice/internal/cache"
	"civicvoice/internal/models"
	"civicvoice/internal/voting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CastVote(t *testing.T) {
	repo := NewPostRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, models.RoleCitizen)
	voter := createTestUser(t, models.RoleCitizen)
	post := createTestPost(t, author.ID)

	// First upvote.
	result, err := repo.CastVote(ctx, post.ID, voter.ID, voting.StanceUpvote)
	require.NoError(t, err)
	assert.Equal(t, 1, result.VoteCount)
	assert.Equal(t, 1, result.Upvotes)
	assert.Equal(t, 0, result.Downvotes)

	// Switching stance replaces the vote; it does not stack.
	result, err = repo.CastVote(ctx, post.ID, voter.ID, voting.StanceDownvote)
	require.NoError(t, err)
	assert.Equal(t, -1, result.VoteCount)
	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 1, result.Downvotes)

	// Repeating the same stance changes nothing.
	result, err = repo.CastVote(ctx, post.ID, voter.ID, voting.StanceDownvote)
	require.NoError(t, err)
	assert.Equal(t, -1, result.VoteCount)
	assert.Equal(t, 1, result.Downvotes)

	// Back to upvote.
	result, err = repo.CastVote(ctx, post.ID, voter.ID, voting.StanceUpvote)
	require.NoError(t, err)
	assert.Equal(t, 1, result.VoteCount)

	// The stored count matches the returned tally.
	var stored models.Post
	require.NoError(t, testDB.First(&stored, post.ID).Error)
	assert.Equal(t, 1, stored.VoteCount)

	// Only one vote row exists for this voter.
	var rows int64
	require.NoError(t, testDB.Model(&models.PostVote{}).
		Where("post_id = ? AND user_id = ?", post.ID, voter.ID).
		Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestPostRepository_CastVote_MultipleVoters(t *testing.T) {
	repo := NewPostRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, models.RoleCitizen)
	post := createTestPost(t, author.ID)

	for i := 0; i < 3; i++ {
		voter := createTestUser(t, models.RoleCitizen)
		_, err := repo.CastVote(ctx, post.ID, voter.ID, voting.StanceUpvote)
		require.NoError(t, err)
	}
	down := createTestUser(t, models.RoleCitizen)
	result, err := repo.CastVote(ctx, post.ID, down.ID, voting.StanceDownvote)
	require.NoError(t, err)

	assert.Equal(t, 2, result.VoteCount)
	assert.Equal(t, 3, result.Upvotes)
	assert.Equal(t, 1, result.Downvotes)

	// The stored count always equals upvote rows minus downvote rows.
	var stored models.Post
	require.NoError(t, testDB.First(&stored, post.ID).Error)
	var ups, downs int64
	require.NoError(t, testDB.Model(&models.PostVote{}).
		Where("post_id = ? AND stance = ?", post.ID, voting.StanceUpvote).
		Count(&ups).Error)
	require.NoError(t, testDB.Model(&models.PostVote{}).
		Where("post_id = ? AND stance = ?", post.ID, voting.StanceDownvote).
		Count(&downs).Error)
	assert.Equal(t, int(ups-downs), stored.VoteCount)
}

func TestPostRepository_AnonymousDetailCached(t *testing.T) {
	mr := setupTestCache(t)
	repo := NewPostRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, models.RoleCitizen)
	post := createTestPost(t, author.ID)

	// The first anonymous read populates the cache.
	got, err := repo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)
	assert.True(t, mr.Exists(cache.PostKey(post.ID)))

	// A change made behind the repository stays invisible while cached.
	require.NoError(t, testDB.Model(&models.Post{}).Where("id = ?", post.ID).
		Update("title", "resurfaced road").Error)
	got, err = repo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)

	// Logged-in reads carry my_vote and bypass the cache.
	got, err = repo.GetByID(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "resurfaced road", got.Title)

	// Repository mutations invalidate the entry.
	require.NoError(t, repo.SetPinned(ctx, post.ID, true))
	got, err = repo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "resurfaced road", got.Title)
	assert.True(t, got.IsPinned)
}

func TestPostRepository_AnonymousListCached(t *testing.T) {
	setupTestCache(t)
	repo := NewPostRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, models.RoleCitizen)
	createTestPost(t, author.ID)

	listed, err := repo.List(ctx, PostFilter{UserID: author.ID}, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// A row inserted behind the repository stays invisible while the page
	// is cached.
	createTestPost(t, author.ID)
	listed, err = repo.List(ctx, PostFilter{UserID: author.ID}, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// Creating through the repository drops every cached feed page.
	require.NoError(t, repo.Create(ctx, &models.Post{
		UserID:      author.ID,
		Title:       "new bus shelter",
		Description: "shelter installed on elm st",
		Category:    models.CategoryInfrastructure,
		Locality:    "Riverside",
		IsActive:    true,
	}))
	listed, err = repo.List(ctx, PostFilter{UserID: author.ID}, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
}

func TestPostRepository_GetByID_VoteDetails(t *testing.T) {
	repo := NewPostRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, models.RoleCitizen)
	voter := createTestUser(t, models.RoleCitizen)
	post := createTestPost(t, author.ID)

	_, err := repo.CastVote(ctx, post.ID, voter.ID, voting.StanceUpvote)
	require.NoError(t, err)

	// As the voter: stance is reported.
	got, err := repo.GetByID(ctx, post.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Upvotes)
	assert.Equal(t, 0, got.Downvotes)
	assert.Equal(t, string(voting.StanceUpvote), got.MyVote)
	assert.Equal(t, author.ID, got.User.ID)

	// Anonymous: no stance.
	got, err = repo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, got.MyVote)
}

func TestPostRepository_SoftDelete(t *testing.T) {
	posts := NewPostRepository(testDB)
	comments := NewCommentRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, models.RoleCitizen)
	post := createTestPost(t, author.ID)

	comment := &models.Comment{UserID: author.ID, PostID: &post.ID, Text: "me too"}
	require.NoError(t, comments.Create(ctx, comment))

	var before int64
	require.NoError(t, testDB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&before).Error)

	require.NoError(t, posts.SoftDelete(ctx, post.ID))

	// The post and its comments are deactivated, not removed.
	var stored models.Post
	require.NoError(t, testDB.First(&stored, post.ID).Error)
	assert.False(t, stored.IsActive)

	var storedComment models.Comment
	require.NoError(t, testDB.First(&storedComment, comment.ID).Error)
	assert.False(t, storedComment.IsActive)

	var after int64
	require.NoError(t, testDB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&after).Error)
	assert.Equal(t, before, after)

	// Deactivated posts drop out of listings.
	listed, err := posts.List(ctx, PostFilter{UserID: author.ID}, 10, 0, 0)
	require.NoError(t, err)
	for _, p := range listed {
		assert.NotEqual(t, post.ID, p.ID)
	}
}

func TestPostRepository_ListFiltersAndPinnedFirst(t *testing.T) {
	repo := NewPostRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, models.RoleCitizen)

	older := createTestPost(t, author.ID)
	newer := createTestPost(t, author.ID)
	require.NoError(t, repo.SetPinned(ctx, older.ID, true))

	listed, err := repo.List(ctx, PostFilter{UserID: author.ID}, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, older.ID, listed[0].ID, "pinned post sorts first")
	assert.Equal(t, newer.ID, listed[1].ID)

	count, err := repo.Count(ctx, PostFilter{UserID: author.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Category filter excludes everything here.
	listed, err = repo.List(ctx, PostFilter{UserID: author.ID, Category: models.CategoryHealth}, 10, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
