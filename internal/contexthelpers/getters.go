package contexthelpers

import (
	"context"
)

func IsAuthenticated(ctx context.Context) bool {
	isAuthenticated, ok := ctx.Value(isAuthenticatedContextKey).(bool)
	if !ok {
		return false
	}

	return isAuthenticated
}

func AuthenticatedUserID(ctx context.Context) int64 {
	userID, ok := ctx.Value(authenticatedUserIDContextKey).(int64)
	if !ok {
		return 0
	}

	return userID
}

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(currentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSRFToken(ctx context.Context) string {
	csrfToken, ok := ctx.Value(csrfTokenContextKey).(string)
	if !ok {
		return ""
	}

	return csrfToken
}

func CSPNonce(ctx context.Context) string {
	cspNonce, ok := ctx.Value(cspNonceContextKey).(string)
	if !ok {
		return ""
	}

	return cspNonce
}
