package contexthelpers

import (
	"context"
	"net/http"
)

func AuthenticateContext(r *http.Request, userID int64) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, isAuthenticatedContextKey, true)
	ctx = context.WithValue(ctx, authenticatedUserIDContextKey, userID)
	return r.WithContext(ctx)
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, currentPathContextKey, currentPath)
	return r.WithContext(ctx)
}

func SetCSRFToken(r *http.Request, csrfToken string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, csrfTokenContextKey, csrfToken)
	return r.WithContext(ctx)
}

func SetCSPNonce(r *http.Request, nonce string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, cspNonceContextKey, nonce)
	return r.WithContext(ctx)
}
