package impersonate

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/verdantops/irridash/pkg/apperr"
	"github.com/verdantops/irridash/pkg/guard"
	"github.com/verdantops/irridash/pkg/rbac"
)

// Handle serves the impersonation HTTP boundary. Every handler passes the
// auth gate before doing any work.
type Handle struct {
	service *Service
	gate    *guard.Gate
}

// NewHandle creates the impersonation handler.
func NewHandle(service *Service, gate *guard.Gate) Handle {
	return Handle{service: service, gate: gate}
}

// Routes registers the impersonation routes.
func (h Handle) Routes(r chi.Router) {
	r.Route("/impersonation", func(r chi.Router) {
		r.Post("/start", h.StartImpersonation)
		r.Post("/end", h.EndImpersonation)
		r.Get("/active", h.ListActive)
	})
}

type startRequest struct {
	TenantID     string `json:"tenantId"`
	ActorUserID  string `json:"actorUserId"`
	ActorRole    string `json:"actorRole"`
	TargetUserID string `json:"targetUserId"`
	TargetRole   string `json:"targetRole"`
}

type endRequest struct {
	TenantID    string `json:"tenantId"`
	RecordID    string `json:"recordId"`
	ActorUserID string `json:"actorUserId"`
}

// StartImpersonation opens an impersonation session
// (POST /impersonation/start)
func (h Handle) StartImpersonation(w http.ResponseWriter, r *http.Request) {
	auth, err := h.gate.RequireAuth(r)
	if err != nil {
		apperr.RespondError(w, r, err)
		return
	}

	var req startRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		apperr.RespondError(w, r, apperr.InvalidPayload("unable to parse body"))
		return
	}

	var missing []string
	if req.TenantID == "" {
		missing = append(missing, "tenantId")
	}
	if req.TargetUserID == "" {
		missing = append(missing, "targetUserId")
	}
	if len(missing) > 0 {
		apperr.RespondError(w, r, apperr.MissingFields(missing...))
		return
	}

	// A caller may only open an audit record attributed to themselves.
	if req.ActorUserID != "" && req.ActorUserID != auth.SubjectID {
		apperr.RespondError(w, r, apperr.ActorMismatch("actor does not match authenticated user"))
		return
	}

	// The authenticated role claim wins over whatever the body says.
	actorRole := auth.Role
	if actorRole == "" {
		actorRole = req.ActorRole
	}
	if !rbac.CanImpersonate(actorRole, req.TargetRole) {
		apperr.RespondError(w, r, apperr.Forbidden("not eligible to impersonate target"))
		return
	}

	event, err := h.service.Start(r.Context(), CreateParams{
		TenantID:     req.TenantID,
		ActorUserID:  auth.SubjectID,
		ActorRole:    string(rbac.Normalize(actorRole)),
		TargetUserID: req.TargetUserID,
		TargetRole:   string(rbac.Normalize(req.TargetRole)),
	})
	if err != nil {
		apperr.RespondError(w, r, apperr.Internal(err, "failed to record impersonation start"))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, event)
}

// EndImpersonation closes an impersonation session
// (POST /impersonation/end)
func (h Handle) EndImpersonation(w http.ResponseWriter, r *http.Request) {
	auth, err := h.gate.RequireAuth(r)
	if err != nil {
		apperr.RespondError(w, r, err)
		return
	}

	var req endRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		apperr.RespondError(w, r, apperr.InvalidPayload("unable to parse body"))
		return
	}

	var missing []string
	if req.TenantID == "" {
		missing = append(missing, "tenantId")
	}
	if req.RecordID == "" {
		missing = append(missing, "recordId")
	}
	if len(missing) > 0 {
		apperr.RespondError(w, r, apperr.MissingFields(missing...))
		return
	}

	// A caller may only close an audit record attributed to themselves.
	// Checked before any write happens.
	if req.ActorUserID != "" && req.ActorUserID != auth.SubjectID {
		apperr.RespondError(w, r, apperr.ActorMismatch("actor does not match authenticated user"))
		return
	}

	recordID, err := uuid.Parse(req.RecordID)
	if err != nil {
		apperr.RespondError(w, r, apperr.InvalidPayload("invalid record id"))
		return
	}

	if err := h.service.End(r.Context(), req.TenantID, recordID); err != nil {
		apperr.RespondError(w, r, apperr.Internal(err, "failed to record impersonation end"))
		return
	}

	render.JSON(w, r, map[string]string{"status": "ended"})
}

// ListActive returns the tenant's active impersonation sessions
// (GET /impersonation/active?tenantId=...)
func (h Handle) ListActive(w http.ResponseWriter, r *http.Request) {
	_, err := h.gate.RequireRole(r, string(rbac.RoleAdmin))
	if err != nil {
		apperr.RespondError(w, r, err)
		return
	}

	tenantID := r.URL.Query().Get("tenantId")
	if tenantID == "" {
		apperr.RespondError(w, r, apperr.MissingFields("tenantId"))
		return
	}

	events, err := h.service.ListActive(r.Context(), tenantID)
	if err != nil {
		apperr.RespondError(w, r, apperr.Internal(err, "failed to list active sessions"))
		return
	}
	if events == nil {
		events = []AuditEvent{}
	}
	render.JSON(w, r, events)
}
