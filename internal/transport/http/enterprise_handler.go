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
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bhashai/bhashai/internal/enterprise"
	"github.com/bhashai/bhashai/internal/identity"
	"github.com/bhashai/bhashai/internal/rbac"
)

// CreateEnterpriseRequest represents enterprise creation data
type CreateEnterpriseRequest struct {
	Name         string `json:"name" validate:"required"`
	Type         string `json:"type"`
	ContactEmail string `json:"contact_email"`
}

// CreateEnterprise creates a new enterprise
// @Summary Create Enterprise
// @Tags Enterprises
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body CreateEnterpriseRequest true "Enterprise Data"
// @Success 201 {object} enterprise.Enterprise
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /enterprises [post]
func (h *Handler) CreateEnterprise(w http.ResponseWriter, r *http.Request) {
	var req CreateEnterpriseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	ent, err := h.enterpriseService.Create(r.Context(), req.Name, req.Type, req.ContactEmail, GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, enterprise.ErrNameTaken) {
			respondError(w, http.StatusConflict, "enterprise name already in use")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, ent)
}

// ListEnterprises lists all enterprises
// @Summary List Enterprises
// @Tags Enterprises
// @Produce json
// @Security CookieAuth
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {array} enterprise.Enterprise
// @Router /enterprises [get]
func (h *Handler) ListEnterprises(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	ents, err := h.enterpriseService.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list enterprises")
		return
	}
	respondJSON(w, http.StatusOK, ents)
}

// GetCurrentEnterprise returns the caller's enterprise
// @Summary Get Current Enterprise
// @Tags Enterprises
// @Produce json
// @Security CookieAuth
// @Success 200 {object} enterprise.Enterprise
// @Failure 404 {object} map[string]string
// @Router /enterprises/current [get]
func (h *Handler) GetCurrentEnterprise(w http.ResponseWriter, r *http.Request) {
	ent, err := h.enterpriseService.Get(r.Context(), GetEnterpriseID(r.Context()))
	if err != nil {
		respondError(w, http.StatusNotFound, "enterprise not found")
		return
	}
	respondJSON(w, http.StatusOK, ent)
}

// UpdateEnterpriseRequest represents enterprise update data
type UpdateEnterpriseRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	Status       string `json:"status"`
}

// UpdateCurrentEnterprise updates the caller's enterprise
// @Summary Update Current Enterprise
// @Tags Enterprises
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body UpdateEnterpriseRequest true "Enterprise Data"
// @Success 200 {object} enterprise.Enterprise
// @Failure 400 {object} map[string]string
// @Router /enterprises/current [put]
func (h *Handler) UpdateCurrentEnterprise(w http.ResponseWriter, r *http.Request) {
	var req UpdateEnterpriseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ent, err := h.enterpriseService.Update(r.Context(), GetEnterpriseID(r.Context()),
		req.Name, req.ContactEmail, req.Status, GetUserID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, enterprise.ErrEnterpriseNotFound):
			respondError(w, http.StatusNotFound, "enterprise not found")
		case errors.Is(err, enterprise.ErrNameTaken):
			respondError(w, http.StatusConflict, "enterprise name already in use")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, ent)
}

// GetEnterprise fetches any enterprise by id
// @Summary Get Enterprise
// @Tags Enterprises
// @Produce json
// @Security CookieAuth
// @Param enterpriseID path string true "Enterprise ID"
// @Success 200 {object} enterprise.Enterprise
// @Failure 404 {object} map[string]string
// @Router /enterprises/{enterpriseID} [get]
func (h *Handler) GetEnterprise(w http.ResponseWriter, r *http.Request) {
	ent, err := h.enterpriseService.Get(r.Context(), chi.URLParam(r, "enterpriseID"))
	if err != nil {
		respondError(w, http.StatusNotFound, "enterprise not found")
		return
	}
	respondJSON(w, http.StatusOK, ent)
}

// PatchEnterpriseRequest carries a status change
type PatchEnterpriseRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

// PatchEnterpriseStatus activates or deactivates an enterprise
// @Summary Patch Enterprise Status
// @Tags Enterprises
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param enterpriseID path string true "Enterprise ID"
// @Param request body PatchEnterpriseRequest true "Status"
// @Success 200 {object} enterprise.Enterprise
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /enterprises/{enterpriseID} [patch]
func (h *Handler) PatchEnterpriseStatus(w http.ResponseWriter, r *http.Request) {
	var req PatchEnterpriseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	ent, err := h.enterpriseService.Update(r.Context(), chi.URLParam(r, "enterpriseID"),
		"", "", req.Status, GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, enterprise.ErrEnterpriseNotFound) {
			respondError(w, http.StatusNotFound, "enterprise not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, ent)
}

// ProvisionUserRequest represents user provisioning data
type ProvisionUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// ProvisionUser creates a user inside the caller's enterprise
// @Summary Provision User
// @Tags Users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body ProvisionUserRequest true "User Data"
// @Success 201 {object} identity.User
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users [post]
func (h *Handler) ProvisionUser(w http.ResponseWriter, r *http.Request) {
	var req ProvisionUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	// Only a super admin may mint another super admin.
	if req.Role == rbac.RoleSuperAdmin && GetRole(r.Context()) != rbac.RoleSuperAdmin {
		respondError(w, http.StatusForbidden, "insufficient role to assign super_admin")
		return
	}

	user, err := h.identityService.Provision(r.Context(), GetEnterpriseID(r.Context()), req.Email, req.Name, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrUserAlreadyExists):
			respondError(w, http.StatusConflict, "user already exists")
		case errors.Is(err, identity.ErrInvalidEmail), errors.Is(err, identity.ErrInvalidRole):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "failed to provision user")
		}
		return
	}

	if err := h.identityService.SetPassword(r.Context(), user.ID, req.Password); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.identityService.Activate(r.Context(), user.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to activate user")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// ListUsers lists users of the caller's enterprise
// @Summary List Users
// @Tags Users
// @Produce json
// @Security CookieAuth
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {array} identity.User
// @Router /users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	users, err := h.identityService.ListUsers(r.Context(), GetEnterpriseID(r.Context()), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GetEnterpriseStats returns resource counts for the caller's enterprise
// @Summary Enterprise Stats
// @Tags Enterprises
// @Produce json
// @Security CookieAuth
// @Success 200 {object} enterprise.Stats
// @Failure 500 {object} map[string]string
// @Router /stats [get]
func (h *Handler) GetEnterpriseStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsRepo.Collect(r.Context(), GetEnterpriseID(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to collect stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func paginationParams(r *http.Request) (limit, offset int) {
	limit = 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
