package http

import (
	"net/http"

	"insa-partnership-backend/internal/domain"
	"insa-partnership-backend/internal/service"
)

// RequestHandler covers submitter-side request intake and editing.
type RequestHandler struct {
	requestSvc service.RequestService
}

func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

type requestBody struct {
	FrameworkType  string                `json:"framework_type,omitempty"`
	Duration       domain.Duration       `json:"duration"`
	CompanyDetails domain.CompanyDetails `json:"company_details"`
	Attachments    []domain.Attachment   `json:"attachments,omitempty"`
}

func (b requestBody) toInput() service.SubmitRequestInput {
	return service.SubmitRequestInput{
		FrameworkType:  b.FrameworkType,
		Duration:       b.Duration,
		CompanyDetails: b.CompanyDetails,
		Attachments:    b.Attachments,
	}
}

// Submit handles POST /requests.
func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body requestBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	actorID, _ := actorFrom(r)
	req, err := h.requestSvc.SubmitRequest(r.Context(), actorID, body.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// Update handles PUT /requests/{id}; pending or disapproved requests.
// Editing a disapproved request resubmits it.
func (h *RequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var body requestBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	actorID, _ := actorFrom(r)
	req, err := h.requestSvc.UpdateRequest(r.Context(), actorID, requestID, body.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// Delete handles DELETE /requests/{id}; pending or disapproved requests.
func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	actorID, _ := actorFrom(r)
	if err := h.requestSvc.DeleteRequest(r.Context(), actorID, requestID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// ListMine handles GET /my-requests.
func (h *RequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r)
	page, pageSize := pagination(r)

	reqs, total, err := h.requestSvc.ListMyRequests(r.Context(), actorID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: reqs, Total: total})
}
