package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationship_FollowUnfollow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.newUser(t, "alice")
	bob := f.newUser(t, "bob")

	require.NoError(t, f.relation.Follow(ctx, bob.UserID, "alice"))
	// 重复关注不会产生第二条记录
	require.NoError(t, f.relation.Follow(ctx, bob.UserID, "alice"))

	n, err := f.follows.CountFollowers(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ok, err := f.relation.IsFollowing(ctx, bob.UserID, alice.UserID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, f.relation.Unfollow(ctx, bob.UserID, "alice"))
	ok, err = f.relation.IsFollowing(ctx, bob.UserID, alice.UserID)
	require.NoError(t, err)
	assert.False(t, ok)

	err = f.relation.Unfollow(ctx, bob.UserID, "alice")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRelationship_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.newUser(t, "alice")

	tests := []struct {
		name     string
		follower string
		username string
		want     error
	}{
		{name: "anonymous", follower: "", username: "alice", want: ErrAuthRequired},
		{name: "self", follower: alice.UserID, username: "alice", want: ErrFollowSelf},
		{name: "unknown author", follower: alice.UserID, username: "ghost", want: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.relation.Follow(ctx, tt.follower, tt.username)
			assert.True(t, errors.Is(err, tt.want), err)
		})
	}

	n, err := f.follows.CountFollowers(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Zero(t, n)

	ok, err := f.relation.IsFollowing(ctx, alice.UserID, alice.UserID)
	require.NoError(t, err)
	assert.False(t, ok)
}
