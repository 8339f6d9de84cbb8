package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	AdminIDKey contextKey = "admin_id"
	RoleKey    contextKey = "role"
	TokenKey   contextKey = "token"
)

// SetAdminContext stores the authenticated back-office user on ctx.
func SetAdminContext(ctx context.Context, adminID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, AdminIDKey, adminID)
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

func GetAdminIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(AdminIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok && token != ""
}
