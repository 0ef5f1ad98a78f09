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

	"github.com/go-chi/chi/v5"

	"github.com/bhashai/bhashai/internal/orgs"
)

// CreateOrganizationRequest represents organization creation data
type CreateOrganizationRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreateOrganization creates an organization under the caller's enterprise
// @Summary Create Organization
// @Tags Organizations
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body CreateOrganizationRequest true "Organization Data"
// @Success 201 {object} orgs.Organization
// @Failure 400 {object} map[string]string
// @Router /organizations [post]
func (h *Handler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	org, err := h.orgService.CreateOrganization(r.Context(), GetEnterpriseID(r.Context()),
		req.Name, req.Description, GetUserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, org)
}

// ListOrganizations lists organizations of the caller's enterprise
// @Summary List Organizations
// @Tags Organizations
// @Produce json
// @Security CookieAuth
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {array} orgs.Organization
// @Router /organizations [get]
func (h *Handler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	list, err := h.orgService.ListOrganizations(r.Context(), GetEnterpriseID(r.Context()), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list organizations")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// GetOrganization returns one organization
// @Summary Get Organization
// @Tags Organizations
// @Produce json
// @Security CookieAuth
// @Param orgID path string true "Organization ID"
// @Success 200 {object} orgs.Organization
// @Failure 404 {object} map[string]string
// @Router /organizations/{orgID} [get]
func (h *Handler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	org, err := h.orgService.GetOrganization(r.Context(), GetEnterpriseID(r.Context()), chi.URLParam(r, "orgID"))
	if err != nil {
		respondError(w, http.StatusNotFound, "organization not found")
		return
	}
	respondJSON(w, http.StatusOK, org)
}

// UpdateOrganization updates an organization
// @Summary Update Organization
// @Tags Organizations
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param orgID path string true "Organization ID"
// @Param request body CreateOrganizationRequest true "Organization Data"
// @Success 200 {object} orgs.Organization
// @Failure 404 {object} map[string]string
// @Router /organizations/{orgID} [put]
func (h *Handler) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	var req CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	org, err := h.orgService.UpdateOrganization(r.Context(), GetEnterpriseID(r.Context()),
		chi.URLParam(r, "orgID"), req.Name, req.Description, GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, orgs.ErrOrganizationNotFound) {
			respondError(w, http.StatusNotFound, "organization not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, org)
}

// DeleteOrganization deletes an organization and its channels
// @Summary Delete Organization
// @Tags Organizations
// @Produce json
// @Security CookieAuth
// @Param orgID path string true "Organization ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /organizations/{orgID} [delete]
func (h *Handler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	err := h.orgService.DeleteOrganization(r.Context(), GetEnterpriseID(r.Context()),
		chi.URLParam(r, "orgID"), GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, orgs.ErrOrganizationNotFound) {
			respondError(w, http.StatusNotFound, "organization not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete organization")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "organization deleted"})
}

// CreateChannelRequest represents channel creation data
type CreateChannelRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// CreateChannel creates a channel under an organization
// @Summary Create Channel
// @Description Category must be one of the fixed channel categories
// @Tags Channels
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param orgID path string true "Organization ID"
// @Param request body CreateChannelRequest true "Channel Data"
// @Success 201 {object} orgs.Channel
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /organizations/{orgID}/channels [post]
func (h *Handler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	var req CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	ch, err := h.orgService.CreateChannel(r.Context(), GetEnterpriseID(r.Context()),
		chi.URLParam(r, "orgID"), req.Name, req.Category, GetUserID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, orgs.ErrOrganizationNotFound):
			respondError(w, http.StatusNotFound, "organization not found")
		case errors.Is(err, orgs.ErrInvalidCategory):
			respondError(w, http.StatusBadRequest, "unknown channel category")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusCreated, ch)
}

// ListChannels lists channels of an organization
// @Summary List Channels
// @Tags Channels
// @Produce json
// @Security CookieAuth
// @Param orgID path string true "Organization ID"
// @Success 200 {array} orgs.Channel
// @Router /organizations/{orgID}/channels [get]
func (h *Handler) ListChannels(w http.ResponseWriter, r *http.Request) {
	list, err := h.orgService.ListChannels(r.Context(), GetEnterpriseID(r.Context()), chi.URLParam(r, "orgID"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list channels")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// GetChannel returns one channel
// @Summary Get Channel
// @Tags Channels
// @Produce json
// @Security CookieAuth
// @Param channelID path string true "Channel ID"
// @Success 200 {object} orgs.Channel
// @Failure 404 {object} map[string]string
// @Router /channels/{channelID} [get]
func (h *Handler) GetChannel(w http.ResponseWriter, r *http.Request) {
	ch, err := h.orgService.GetChannel(r.Context(), GetEnterpriseID(r.Context()), chi.URLParam(r, "channelID"))
	if err != nil {
		respondError(w, http.StatusNotFound, "channel not found")
		return
	}
	respondJSON(w, http.StatusOK, ch)
}

// DeleteChannel deletes a channel
// @Summary Delete Channel
// @Tags Channels
// @Produce json
// @Security CookieAuth
// @Param channelID path string true "Channel ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /channels/{channelID} [delete]
func (h *Handler) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	err := h.orgService.DeleteChannel(r.Context(), GetEnterpriseID(r.Context()),
		chi.URLParam(r, "channelID"), GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, orgs.ErrChannelNotFound) {
			respondError(w, http.StatusNotFound, "channel not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete channel")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "channel deleted"})
}
