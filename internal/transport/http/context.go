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

import "context"

type contextKey string

const (
	enterpriseIDKey contextKey = "enterprise_id"
	userIDKey       contextKey = "user_id"
	roleKey         contextKey = "role"
	sessionIDKey    contextKey = "session_id"
)

// GetUserID retrieves the authenticated user ID from context.
func GetUserID(ctx context.Context) string {
	if val, ok := ctx.Value(userIDKey).(string); ok {
		return val
	}
	return ""
}

// GetEnterpriseID retrieves the enterprise ID from context.
func GetEnterpriseID(ctx context.Context) string {
	if val, ok := ctx.Value(enterpriseIDKey).(string); ok {
		return val
	}
	return ""
}

// GetRole retrieves the authenticated user's role from context.
func GetRole(ctx context.Context) string {
	if val, ok := ctx.Value(roleKey).(string); ok {
		return val
	}
	return ""
}

// GetSessionID retrieves the session ID from context. Empty for
// requests authenticated with a bearer token.
func GetSessionID(ctx context.Context) string {
	if val, ok := ctx.Value(sessionIDKey).(string); ok {
		return val
	}
	return ""
}
