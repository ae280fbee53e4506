// Package userctx carries the authenticated person id through request contexts.
package userctx

import (
	"context"
	"strings"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}

// PersonOr returns the explicitly named person, or the token subject when
// none was named. Empty means nobody could be resolved.
func PersonOr(ctx context.Context, explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	userID, _ := GetUserID(ctx)
	return userID
}
