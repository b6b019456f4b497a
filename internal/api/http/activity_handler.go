package http

import (
	"net/http"

	"insa-partnership-backend/internal/domain"
	"insa-partnership-backend/internal/service"
)

// ActivityHandler covers partnership activity tracking.
type ActivityHandler struct {
	activitySvc service.ActivityService
}

func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

type createActivityBody struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description,omitempty"`
	AssignedTo  domain.ActivityAssignee `json:"assigned_to"`
}

// Create handles POST /partners/{id}/activities.
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	partnerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var body createActivityBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	actorID, _ := actorFrom(r)
	activity, err := h.activitySvc.CreateActivity(r.Context(), partnerID, body.Title, body.Description, body.AssignedTo, actorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

// List handles GET /partners/{id}/activities.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	partnerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	_, role := actorFrom(r)
	activities, err := h.activitySvc.ListActivities(r.Context(), partnerID, role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// Start handles POST /activities/{id}/start.
func (h *ActivityHandler) Start(w http.ResponseWriter, r *http.Request) {
	activityID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	actorID, _ := actorFrom(r)
	activity, err := h.activitySvc.StartActivity(r.Context(), activityID, actorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

// Complete handles POST /activities/{id}/complete.
func (h *ActivityHandler) Complete(w http.ResponseWriter, r *http.Request) {
	activityID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	actorID, _ := actorFrom(r)
	activity, err := h.activitySvc.CompleteActivity(r.Context(), activityID, actorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}
