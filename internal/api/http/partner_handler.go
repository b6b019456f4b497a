package http

import (
	"net/http"

	"insa-partnership-backend/internal/domain"
	"insa-partnership-backend/internal/service"
)

// PartnerHandler exposes the post-approval partner lifecycle.
type PartnerHandler struct {
	partnerSvc service.PartnerService
}

func NewPartnerHandler(partnerSvc service.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerSvc: partnerSvc}
}

// Sign handles POST /partners/{id}/sign.
func (h *PartnerHandler) Sign(w http.ResponseWriter, r *http.Request) {
	partnerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	actorID, _ := actorFrom(r)
	partner, err := h.partnerSvc.SignPartner(r.Context(), partnerID, actorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}

type privilegesBody struct {
	Privileges map[string]interface{} `json:"privileges"`
}

// SetPrivileges handles PUT /partners/{id}/privileges.
func (h *PartnerHandler) SetPrivileges(w http.ResponseWriter, r *http.Request) {
	partnerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var body privilegesBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	partner, err := h.partnerSvc.SetPrivileges(r.Context(), partnerID, body.Privileges)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}

type accessResponse struct {
	Allowed bool `json:"allowed"`
}

// CheckAccess handles GET /partners/{id}/access?role=...
func (h *PartnerHandler) CheckAccess(w http.ResponseWriter, r *http.Request) {
	partnerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	role := domain.ReviewStage(r.URL.Query().Get("role"))
	if role == "" {
		_, role = actorFrom(r)
	}

	allowed, err := h.partnerSvc.CheckAccess(r.Context(), partnerID, role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accessResponse{Allowed: allowed})
}

// Get handles GET /partners/{id}.
func (h *PartnerHandler) Get(w http.ResponseWriter, r *http.Request) {
	partnerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	_, role := actorFrom(r)
	partner, err := h.partnerSvc.GetPartner(r.Context(), partnerID, role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}

// List handles GET /partners.
func (h *PartnerHandler) List(w http.ResponseWriter, r *http.Request) {
	_, role := actorFrom(r)
	page, pageSize := pagination(r)

	partners, total, err := h.partnerSvc.ListPartners(r.Context(), role, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: partners, Total: total})
}

type endDateResponse struct {
	EndDate string `json:"end_date"`
}

// EndDate handles GET /partners/{id}/end-date; recomputed, never stored.
func (h *PartnerHandler) EndDate(w http.ResponseWriter, r *http.Request) {
	partnerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	endDate, err := h.partnerSvc.PartnershipEndDate(r.Context(), partnerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, endDateResponse{EndDate: endDate.Format("2006-01-02")})
}
