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

package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestIssueAndVerify(t *testing.T) {
	svc := NewService(testKey, time.Hour)

	raw, err := svc.Issue(Claims{
		UserID:       "user-1",
		EnterpriseID: "ent-1",
		Role:         "admin",
	})
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := svc.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ent-1", claims.EnterpriseID)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyExpired(t *testing.T) {
	svc := NewService(testKey, -time.Minute)

	raw, err := svc.Issue(Claims{UserID: "user-1"})
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongKey(t *testing.T) {
	issuing := NewService(testKey, time.Hour)
	verifying := NewService("another-key-another-key-another!", time.Hour)

	raw, err := issuing.Issue(Claims{UserID: "user-1"})
	require.NoError(t, err)

	_, err = verifying.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyGarbage(t *testing.T) {
	svc := NewService(testKey, time.Hour)

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestNotConfigured(t *testing.T) {
	svc := NewService("", time.Hour)

	_, err := svc.Issue(Claims{UserID: "user-1"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = svc.Verify("anything")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
