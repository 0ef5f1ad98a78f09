// Copyright 2026 The BhashAI Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/bhashai/bhashai/internal/identity"
	"github.com/bhashai/bhashai/internal/observability/logger"
	"github.com/bhashai/bhashai/internal/rbac"
)

// Enterprise context rules:
// 1. Enterprise context comes ONLY from the session or bearer token.
// 2. The X-Enterprise-ID header is never trusted and is rejected on
//    authenticated requests.
// 3. Cross-enterprise reach exists only through the super_admin role.

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				slog.InfoContext(r.Context(), "http_request",
					logger.RequestID(middleware.GetReqID(r.Context())),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.RemoteAddr(r.RemoteAddr),
					logger.UserAgent(r.UserAgent()),
					logger.StatusCode(ww.Status()),
					logger.Duration(time.Since(start).Milliseconds()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// AuthMiddleware authenticates a request from either the session
// cookie or a bearer API token and injects the principal into context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Enterprise-ID") != "" {
			slog.WarnContext(r.Context(), "enterprise header spoofing attempt",
				logger.Path(r.URL.Path),
				logger.RemoteAddr(r.RemoteAddr),
			)
			respondError(w, http.StatusBadRequest, "X-Enterprise-ID header is not allowed; enterprise context is derived from the session")
			return
		}

		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			h.authenticateToken(w, r, next, strings.TrimPrefix(auth, "Bearer "))
			return
		}

		sessionID := h.getSessionFromCookie(r)
		if sessionID == "" {
			respondError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		sess, err := h.sessionService.Get(r.Context(), sessionID)
		if err != nil {
			h.clearSessionCookie(w)
			respondError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		if err := h.sessionService.Refresh(r.Context(), sessionID); err != nil {
			slog.ErrorContext(r.Context(), "failed to refresh session", logger.Error(err))
		}

		user, err := h.identityService.GetUser(r.Context(), sess.UserID)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "unknown user")
			return
		}
		if user.Status != identity.StatusActive {
			h.clearSessionCookie(w)
			respondError(w, http.StatusUnauthorized, "account is not active")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, sess.UserID)
		ctx = context.WithValue(ctx, sessionIDKey, sess.ID)
		ctx = context.WithValue(ctx, enterpriseIDKey, sess.EnterpriseID)
		ctx = context.WithValue(ctx, roleKey, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) authenticateToken(w http.ResponseWriter, r *http.Request, next http.Handler, raw string) {
	claims, err := h.tokenService.Verify(raw)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
	ctx = context.WithValue(ctx, enterpriseIDKey, claims.EnterpriseID)
	ctx = context.WithValue(ctx, roleKey, claims.Role)

	next.ServeHTTP(w, r.WithContext(ctx))
}

// RequirePermission gates a route on the role carried by the request
// context. Unknown roles fail closed.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := GetRole(r.Context())
			if !rbac.HasPermission(role, permission) {
				respondError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
