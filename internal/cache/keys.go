package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	PostKeyPrefix      = "post:%d"
	ComplaintKeyPrefix = "complaint:%d"
	PostsListPrefix    = "posts:%s"
)

const (
	UserTTL      = 5 * time.Minute
	PostTTL      = 10 * time.Minute
	ComplaintTTL = 5 * time.Minute
	PostsListTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func ComplaintKey(complaintID uint) string {
	return fmt.Sprintf(ComplaintKeyPrefix, complaintID)
}

// PostsListKey keys a cached page of the post feed by its query signature.
func PostsListKey(signature string) string {
	return fmt.Sprintf(PostsListPrefix, signature)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateComplaint(ctx context.Context, complaintID uint) {
	Invalidate(ctx, ComplaintKey(complaintID))
}

// InvalidatePostLists drops every cached feed page. Votes and new posts
// change feed ordering, so pages cannot be invalidated selectively.
func InvalidatePostLists(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "posts:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
