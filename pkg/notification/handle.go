package notification

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/verdantops/irridash/pkg/apperr"
	"github.com/verdantops/irridash/pkg/guard"
	"github.com/verdantops/irridash/pkg/rbac"
)

// Handle serves the notification HTTP boundary.
type Handle struct {
	service *Service
	gate    *guard.Gate
}

// NewHandle creates the notification handler.
func NewHandle(service *Service, gate *guard.Gate) Handle {
	return Handle{service: service, gate: gate}
}

// Routes registers the notification routes.
func (h Handle) Routes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.ListNotifications)
		r.Post("/bulk", h.BulkCreate)
		r.Post("/{id}/read", h.MarkRead)
	})
}

type bulkRequest struct {
	CompanyID     string         `json:"companyId"`
	Notifications []CreateParams `json:"notifications"`
}

// BulkCreate writes a batch of notifications for a tenant
// (POST /notifications/bulk)
func (h Handle) BulkCreate(w http.ResponseWriter, r *http.Request) {
	_, err := h.gate.RequireRole(r, string(rbac.RoleManager))
	if err != nil {
		apperr.RespondError(w, r, err)
		return
	}

	var req bulkRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		apperr.RespondError(w, r, apperr.InvalidPayload("unable to parse body"))
		return
	}

	created, err := h.service.BulkCreate(r.Context(), req.CompanyID, req.Notifications)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingTenant):
			apperr.RespondError(w, r, apperr.MissingFields("companyId"))
		case errors.Is(err, ErrEmptyBatch):
			apperr.RespondError(w, r, apperr.MissingFields("notifications"))
		case errors.Is(err, ErrInvalidNotification):
			apperr.RespondError(w, r, apperr.InvalidPayload("each notification requires userId and message"))
		default:
			apperr.RespondError(w, r, apperr.Internal(err, "failed to write notifications"))
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{"created": len(created)})
}

// ListNotifications returns the caller's notifications
// (GET /notifications?tenantId=...)
func (h Handle) ListNotifications(w http.ResponseWriter, r *http.Request) {
	auth, err := h.gate.RequireAuth(r)
	if err != nil {
		apperr.RespondError(w, r, err)
		return
	}

	tenantID := r.URL.Query().Get("tenantId")
	if tenantID == "" {
		apperr.RespondError(w, r, apperr.MissingFields("tenantId"))
		return
	}

	notifications, err := h.service.ListForUser(r.Context(), tenantID, auth.SubjectID)
	if err != nil {
		apperr.RespondError(w, r, apperr.Internal(err, "failed to list notifications"))
		return
	}
	if notifications == nil {
		notifications = []Notification{}
	}
	render.JSON(w, r, notifications)
}

type markReadRequest struct {
	TenantID string `json:"tenantId"`
}

// MarkRead flags one of the caller's notifications as read
// (POST /notifications/{id}/read)
func (h Handle) MarkRead(w http.ResponseWriter, r *http.Request) {
	_, err := h.gate.RequireAuth(r)
	if err != nil {
		apperr.RespondError(w, r, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apperr.RespondError(w, r, apperr.InvalidPayload("invalid notification id"))
		return
	}

	var req markReadRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		apperr.RespondError(w, r, apperr.InvalidPayload("unable to parse body"))
		return
	}
	if req.TenantID == "" {
		apperr.RespondError(w, r, apperr.MissingFields("tenantId"))
		return
	}

	if err := h.service.MarkRead(r.Context(), req.TenantID, id); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			apperr.RespondError(w, r, apperr.New(apperr.CodeNotFound, "notification not found"))
			return
		}
		apperr.RespondError(w, r, apperr.Internal(err, "failed to mark notification read"))
		return
	}
	render.JSON(w, r, map[string]string{"status": "read"})
}
