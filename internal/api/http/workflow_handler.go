package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"insa-partnership-backend/internal/apperr"
	"insa-partnership-backend/internal/domain"
	"insa-partnership-backend/internal/service"
)

// WorkflowHandler exposes the review workflow engine over HTTP.
type WorkflowHandler struct {
	workflowSvc service.WorkflowService
}

func NewWorkflowHandler(workflowSvc service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflowSvc: workflowSvc}
}

type submitReviewBody struct {
	Decision        domain.Decision            `json:"decision"`
	Message         string                     `json:"message,omitempty"`
	Flags           *service.RoutingFlagsInput `json:"flags,omitempty"`
	PartnershipType domain.PartnershipType     `json:"partnership_request_type,omitempty"`
	FrameworkType   string                     `json:"framework_type,omitempty"`
	Attachments     []domain.Attachment        `json:"attachments,omitempty"`
}

// SubmitReview handles POST /requests/{id}/review.
func (h *WorkflowHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var body submitReviewBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	actorID, actorRole := actorFrom(r)
	req, err := h.workflowSvc.SubmitReview(r.Context(), service.SubmitReviewInput{
		RequestID:       requestID,
		ActorID:         actorID,
		ActorRole:       actorRole,
		Decision:        body.Decision,
		Message:         body.Message,
		Flags:           body.Flags,
		PartnershipType: body.PartnershipType,
		FrameworkType:   body.FrameworkType,
		Attachments:     body.Attachments,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

type generalDirectorBody struct {
	Decision domain.Decision `json:"decision"`
	Message  string          `json:"message,omitempty"`
}

type generalDirectorResponse struct {
	Request *domain.Request `json:"request"`
	Partner *domain.Partner `json:"partner,omitempty"`
}

// DecideGeneralDirector handles POST /requests/{id}/general-director-decision.
func (h *WorkflowHandler) DecideGeneralDirector(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var body generalDirectorBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	actorID, actorRole := actorFrom(r)
	if actorRole != domain.StageGeneralDirector {
		writeError(w, apperr.Forbidden("only a general director may decide at this stage"))
		return
	}

	req, partner, err := h.workflowSvc.DecideGeneralDirector(r.Context(), requestID, actorID, body.Decision, body.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, generalDirectorResponse{Request: req, Partner: partner})
}

// GetRequest handles GET /requests/{id}.
func (h *WorkflowHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	req, err := h.workflowSvc.GetRequest(r.Context(), requestID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

type listResponse struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
}

// ListByStage handles GET /requests?stage=...; the reviewer inbox.
func (h *WorkflowHandler) ListByStage(w http.ResponseWriter, r *http.Request) {
	stage := domain.ReviewStage(r.URL.Query().Get("stage"))
	page, pageSize := pagination(r)

	reqs, total, err := h.workflowSvc.ListByStage(r.Context(), stage, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: reqs, Total: total})
}

// ApprovalHistory handles GET /requests/{id}/approvals.
func (h *WorkflowHandler) ApprovalHistory(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	approvals, err := h.workflowSvc.ApprovalHistory(r.Context(), requestID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, approvals)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidInput(name, "must be a positive integer")
	}
	return int32(id), nil
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
