package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/postboard/internal/access"
)

func TestFeed_GlobalPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.newUser(t, "alice")
	posts := f.seed(t, alice, nil, 13, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	first, err := f.feed.Global(ctx, "")
	require.NoError(t, err)
	require.Len(t, first.Posts, 10)
	assert.Equal(t, posts[12].ID, first.Posts[0].ID)
	assert.Equal(t, 2, first.Page.NumPages)
	assert.True(t, first.Page.HasNext)
	require.NotNil(t, first.Posts[0].Author)
	assert.Equal(t, "alice", first.Posts[0].Author.Username)

	second, err := f.feed.Global(ctx, "2")
	require.NoError(t, err)
	require.Len(t, second.Posts, 3)
	assert.Equal(t, []string{posts[2].ID, posts[1].ID, posts[0].ID}, ids(second.Posts))

	clamped, err := f.feed.Global(ctx, "40")
	require.NoError(t, err)
	assert.Equal(t, 2, clamped.Page.Number)

	low, err := f.feed.Global(ctx, "0")
	require.NoError(t, err)
	assert.Equal(t, 1, low.Page.Number)
}

func TestFeed_Empty(t *testing.T) {
	f := newFixture(t)

	page, err := f.feed.Global(context.Background(), "3")
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.Equal(t, 1, page.Page.Number)
}

func TestFeed_GroupIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.newUser(t, "alice")
	cats := f.newGroup(t, "cats")
	dogs := f.newGroup(t, "dogs")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	catPosts := f.seed(t, alice, cats, 2, base)
	f.seed(t, alice, dogs, 3, base.Add(time.Hour))
	f.seed(t, alice, nil, 1, base.Add(2*time.Hour))

	feed, err := f.feed.Group(ctx, "cats", "")
	require.NoError(t, err)
	assert.Equal(t, cats.ID, feed.Group.ID)
	assert.Equal(t, []string{catPosts[1].ID, catPosts[0].ID}, ids(feed.Posts))

	empty := f.newGroup(t, "empty")
	feed, err = f.feed.Group(ctx, empty.Slug, "")
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)

	_, err = f.feed.Group(ctx, "missing", "")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFeed_Profile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.newUser(t, "alice")
	bob := f.newUser(t, "bob")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	alicePosts := f.seed(t, alice, nil, 2, base)
	f.seed(t, bob, nil, 4, base)
	require.NoError(t, f.relation.Follow(ctx, bob.UserID, "alice"))

	profile, err := f.feed.Profile(ctx, bob, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, profile.Author.ID)
	assert.Equal(t, []string{alicePosts[1].ID, alicePosts[0].ID}, ids(profile.Posts))
	assert.True(t, profile.Following)
	assert.Equal(t, int64(1), profile.FollowersCount)
	assert.Equal(t, int64(0), profile.FollowingCount)

	anon, err := f.feed.Profile(ctx, access.Caller{}, "alice", "")
	require.NoError(t, err)
	assert.False(t, anon.Following)

	own, err := f.feed.Profile(ctx, alice, "alice", "")
	require.NoError(t, err)
	assert.False(t, own.Following)

	_, err = f.feed.Profile(ctx, bob, "nobody", "")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFeed_FollowExact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.newUser(t, "alice")
	bob := f.newUser(t, "bob")
	carol := f.newUser(t, "carol")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	alicePosts := f.seed(t, alice, nil, 2, base)
	carolPosts := f.seed(t, carol, nil, 1, base.Add(time.Minute))
	f.seed(t, bob, nil, 2, base.Add(2*time.Minute))

	_, err := f.feed.Follow(ctx, access.Caller{}, "")
	assert.True(t, errors.Is(err, ErrAuthRequired))

	feed, err := f.feed.Follow(ctx, bob, "")
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)

	require.NoError(t, f.relation.Follow(ctx, bob.UserID, "alice"))
	require.NoError(t, f.relation.Follow(ctx, bob.UserID, "carol"))

	feed, err = f.feed.Follow(ctx, bob, "")
	require.NoError(t, err)
	assert.Equal(t, []string{carolPosts[0].ID, alicePosts[1].ID, alicePosts[0].ID}, ids(feed.Posts))

	// carol 没有关注任何人
	feed, err = f.feed.Follow(ctx, carol, "")
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)
}
