// @title BhashAI Admin API
// @version 1.0.0
// @description Multi-tenant admin platform for AI voice agents
// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name session_id

package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/bhashai/bhashai/internal/agents"
	"github.com/bhashai/bhashai/internal/audit"
	"github.com/bhashai/bhashai/internal/billing"
	"github.com/bhashai/bhashai/internal/bolna"
	"github.com/bhashai/bhashai/internal/calls"
	"github.com/bhashai/bhashai/internal/enterprise"
	"github.com/bhashai/bhashai/internal/identity"
	"github.com/bhashai/bhashai/internal/observability/logger"
	"github.com/bhashai/bhashai/internal/orgs"
	"github.com/bhashai/bhashai/internal/rbac"
	"github.com/bhashai/bhashai/internal/session"
	"github.com/bhashai/bhashai/internal/token"
)

// Handler holds HTTP handlers and dependencies
type Handler struct {
	identityService   *identity.Service
	sessionService    *session.Service
	tokenService      *token.Service
	enterpriseService *enterprise.Service
	statsRepo         enterprise.StatsRepository
	orgService        *orgs.Service
	agentService      *agents.Service
	billingService    *billing.Service
	callService       *calls.Service
	dispatcher        *calls.Dispatcher
	bolnaClient       *bolna.Client
	auditLogger       audit.Logger
	validate          *validator.Validate
	sessionConfig     SessionConfig
}

// SessionConfig holds session cookie configuration
type SessionConfig struct {
	CookieName     string
	CookieDomain   string
	CookiePath     string
	CookieSecure   bool
	CookieHTTPOnly bool
	CookieSameSite http.SameSite
}

// NewHandler creates a new HTTP handler
func NewHandler(
	identityService *identity.Service,
	sessionService *session.Service,
	tokenService *token.Service,
	enterpriseService *enterprise.Service,
	statsRepo enterprise.StatsRepository,
	orgService *orgs.Service,
	agentService *agents.Service,
	billingService *billing.Service,
	callService *calls.Service,
	dispatcher *calls.Dispatcher,
	bolnaClient *bolna.Client,
	auditLogger audit.Logger,
	sessionConfig SessionConfig,
) *Handler {
	return &Handler{
		identityService:   identityService,
		sessionService:    sessionService,
		tokenService:      tokenService,
		enterpriseService: enterpriseService,
		statsRepo:         statsRepo,
		orgService:        orgService,
		agentService:      agentService,
		billingService:    billingService,
		callService:       callService,
		dispatcher:        dispatcher,
		bolnaClient:       bolnaClient,
		auditLogger:       auditLogger,
		validate:          validator.New(),
		sessionConfig:     sessionConfig,
	}
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/signup", h.Signup)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)

			r.Get("/auth/me", h.GetCurrentUser)
			r.Post("/auth/change-password", h.ChangePassword)
			r.Post("/auth/token", h.IssueToken)

			r.Route("/enterprises", func(r chi.Router) {
				r.With(RequirePermission(rbac.PermEnterpriseManage)).Get("/", h.ListEnterprises)
				r.With(RequirePermission(rbac.PermEnterpriseManage)).Post("/", h.CreateEnterprise)
				r.Get("/current", h.GetCurrentEnterprise)
				r.With(RequirePermission(rbac.PermEnterpriseManage)).Put("/current", h.UpdateCurrentEnterprise)
				r.With(RequirePermission(rbac.PermEnterpriseManage)).Get("/{enterpriseID}", h.GetEnterprise)
				r.With(RequirePermission(rbac.PermEnterpriseManage)).Patch("/{enterpriseID}", h.PatchEnterpriseStatus)
			})

			r.Route("/users", func(r chi.Router) {
				r.With(RequirePermission(rbac.PermUserList)).Get("/", h.ListUsers)
				r.With(RequirePermission(rbac.PermUserList)).Post("/", h.ProvisionUser)
			})

			r.Route("/organizations", func(r chi.Router) {
				r.Get("/", h.ListOrganizations)
				r.With(RequirePermission(rbac.PermOrgManage)).Post("/", h.CreateOrganization)
				r.Route("/{orgID}", func(r chi.Router) {
					r.Get("/", h.GetOrganization)
					r.With(RequirePermission(rbac.PermOrgManage)).Put("/", h.UpdateOrganization)
					r.With(RequirePermission(rbac.PermOrgManage)).Delete("/", h.DeleteOrganization)
					r.Get("/channels", h.ListChannels)
					r.With(RequirePermission(rbac.PermOrgManage)).Post("/channels", h.CreateChannel)
				})
			})

			r.Route("/channels/{channelID}", func(r chi.Router) {
				r.Get("/", h.GetChannel)
				r.With(RequirePermission(rbac.PermOrgManage)).Delete("/", h.DeleteChannel)
				r.Get("/voice-agents", h.ListChannelAgents)
			})

			r.Route("/voice-agents", func(r chi.Router) {
				r.Get("/", h.ListAgents)
				r.With(RequirePermission(rbac.PermAgentManage)).Post("/", h.CreateAgent)
				r.Route("/{agentID}", func(r chi.Router) {
					r.Get("/", h.GetAgent)
					r.With(RequirePermission(rbac.PermAgentManage)).Put("/", h.UpdateAgent)
					r.With(RequirePermission(rbac.PermAgentManage)).Delete("/", h.DeleteAgent)

					r.Get("/contacts", h.ListContacts)
					r.With(RequirePermission(rbac.PermContactManage)).Post("/contacts", h.AddContact)
					r.With(RequirePermission(rbac.PermCallDispatch)).Post("/contacts/bulk-call", h.BulkCall)
					r.Get("/call-logs", h.ListAgentCallLogs)
				})
			})

			r.Route("/contacts/{contactID}", func(r chi.Router) {
				r.With(RequirePermission(rbac.PermContactManage)).Put("/", h.UpdateContact)
				r.With(RequirePermission(rbac.PermContactManage)).Delete("/", h.DeleteContact)
			})

			r.Get("/stats", h.GetEnterpriseStats)

			r.Route("/call-logs", func(r chi.Router) {
				r.Get("/", h.ListCallLogs)
				r.Get("/{callLogID}", h.GetCallLog)
				r.Get("/{callLogID}/status", h.RefreshCallStatus)
			})

			r.Route("/billing", func(r chi.Router) {
				r.Get("/balance", h.GetBalance)
				r.Get("/recharge-options", h.ListRechargeOptions)
				r.With(RequirePermission(rbac.PermBillingManage)).Post("/recharge", h.Recharge)
				r.With(RequirePermission(rbac.PermBillingManage)).Put("/auto-recharge", h.SetAutoRecharge)
				r.Get("/transactions", h.ListTransactions)
				r.Get("/usage", h.ListUsageLogs)
			})

			r.Get("/bolna/agents", h.ListVendorAgents)
		})
	})

	return r
}

// HealthCheck returns the health status
// @Summary Health Check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "bhashai",
	})
}

// SignupRequest opens a new enterprise with its first admin user.
type SignupRequest struct {
	EnterpriseName string `json:"enterprise_name" validate:"required"`
	EnterpriseType string `json:"enterprise_type"`
	ContactEmail   string `json:"contact_email"`
	Email          string `json:"email" validate:"required,email"`
	Name           string `json:"name" validate:"required"`
	Password       string `json:"password" validate:"required,min=8"`
}

// Signup registers an enterprise and its admin account
// @Summary Sign up
// @Description Create an enterprise, its first admin user and the initial credit balance
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup Data"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	ent, err := h.enterpriseService.Create(r.Context(), req.EnterpriseName, req.EnterpriseType, req.ContactEmail, "")
	if err != nil {
		if errors.Is(err, enterprise.ErrNameTaken) {
			respondError(w, http.StatusConflict, "enterprise name already in use")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.identityService.Provision(r.Context(), ent.ID, req.Email, req.Name, rbac.RoleAdmin)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to provision admin",
			logger.Error(err), logger.Email(req.Email))
		respondError(w, http.StatusBadRequest, err.Error())
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

	if _, err := h.billingService.EnsureBalance(r.Context(), ent.ID); err != nil {
		slog.ErrorContext(r.Context(), "failed to create balance",
			logger.Error(err), logger.EnterpriseID(ent.ID))
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"enterprise_id": ent.ID,
		"user_id":       user.ID,
		"email":         user.Email,
	})
}

// LoginRequest represents login credentials
type LoginRequest struct {
	EnterpriseID string `json:"enterprise_id" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
}

// Login authenticates a user and opens a session
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	user, err := h.identityService.Authenticate(r.Context(), req.EnterpriseID, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrAccountLocked) {
			respondError(w, http.StatusForbidden, "account is locked")
			return
		}
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	sess, err := h.sessionService.Create(r.Context(), user.EnterpriseID, user.ID, getIPAddress(r), r.UserAgent())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to create session", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	h.setSessionCookie(w, sess.ID)

	respondJSON(w, http.StatusOK, map[string]any{
		"user_id":       user.ID,
		"enterprise_id": user.EnterpriseID,
		"email":         user.Email,
		"role":          user.Role,
	})
}

// Logout destroys the current session
// @Summary Logout
// @Tags Auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := h.getSessionFromCookie(r)
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	sess, err := h.sessionService.Get(r.Context(), sessionID)
	if err == nil {
		h.auditLogger.Log(r.Context(), audit.Event{
			Type:         audit.TypeLogout,
			EnterpriseID: sess.EnterpriseID,
			ActorID:      sess.UserID,
			Resource:     "session",
			IPAddress:    getIPAddress(r),
			UserAgent:    r.UserAgent(),
		})
		h.sessionService.Destroy(r.Context(), sessionID)
	}

	h.clearSessionCookie(w)

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user
// @Summary Get Current User
// @Tags Auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} identity.User
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.identityService.GetUser(r.Context(), GetUserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ChangePasswordRequest represents password change data
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ChangePassword updates the caller's password
// @Summary Change Password
// @Tags Auth
// @Accept json
// @Produce json
// @Security CookieAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/change-password [post]
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	userID := GetUserID(r.Context())
	if err := h.identityService.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "invalid old password")
		case errors.Is(err, identity.ErrWeakPassword):
			respondError(w, http.StatusBadRequest, "new password does not meet security requirements")
		default:
			respondError(w, http.StatusInternalServerError, "failed to change password")
		}
		return
	}

	h.auditLogger.Log(r.Context(), audit.Event{
		Type:         audit.TypePasswordChanged,
		EnterpriseID: GetEnterpriseID(r.Context()),
		ActorID:      userID,
		Resource:     "user_credentials",
		IPAddress:    getIPAddress(r),
		UserAgent:    r.UserAgent(),
	})

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "password changed successfully",
	})
}

// IssueToken exchanges the session for a bearer API token
// @Summary Issue API Token
// @Description Issue a short-lived bearer token carrying the caller's enterprise and role
// @Tags Auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /auth/token [post]
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	raw, err := h.tokenService.Issue(token.Claims{
		UserID:       GetUserID(r.Context()),
		EnterpriseID: GetEnterpriseID(r.Context()),
		Role:         GetRole(r.Context()),
	})
	if err != nil {
		if errors.Is(err, token.ErrNotConfigured) {
			respondError(w, http.StatusServiceUnavailable, "api tokens are not enabled")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"access_token": raw,
		"token_type":   "Bearer",
	})
}

// Helper functions
func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.sessionConfig.CookieName,
		Value:    sessionID,
		Path:     h.sessionConfig.CookiePath,
		Domain:   h.sessionConfig.CookieDomain,
		Secure:   h.sessionConfig.CookieSecure,
		HttpOnly: h.sessionConfig.CookieHTTPOnly,
		SameSite: h.sessionConfig.CookieSameSite,
		MaxAge:   86400,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   h.sessionConfig.CookieName,
		Value:  "",
		Path:   h.sessionConfig.CookiePath,
		Domain: h.sessionConfig.CookieDomain,
		MaxAge: -1,
	})
}

func (h *Handler) getSessionFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(h.sessionConfig.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

func getIPAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
