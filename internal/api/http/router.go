package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"insa-partnership-backend/internal/security"
)

// NewRouter wires all handlers onto the API surface.
func NewRouter(
	tm security.TokenManager,
	userHandler *UserHandler,
	workflowHandler *WorkflowHandler,
	requestHandler *RequestHandler,
	partnerHandler *PartnerHandler,
	activityHandler *ActivityHandler,
	attachmentHandler *AttachmentHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// Registration sits outside the token middleware; tokens come from the
	// institute SSO.
	r.HandleFunc("/api/v1/users", userHandler.Register).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tm))

	// Request intake (submitters)
	api.HandleFunc("/requests", requestHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id:[0-9]+}", requestHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/requests/{id:[0-9]+}", requestHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/my-requests", requestHandler.ListMine).Methods(http.MethodGet)

	// Review workflow (reviewers)
	api.HandleFunc("/requests", workflowHandler.ListByStage).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id:[0-9]+}", workflowHandler.GetRequest).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id:[0-9]+}/review", workflowHandler.SubmitReview).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id:[0-9]+}/general-director-decision", workflowHandler.DecideGeneralDirector).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id:[0-9]+}/approvals", workflowHandler.ApprovalHistory).Methods(http.MethodGet)

	// Partners
	api.HandleFunc("/partners", partnerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/partners/{id:[0-9]+}", partnerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/partners/{id:[0-9]+}/sign", partnerHandler.Sign).Methods(http.MethodPost)
	api.HandleFunc("/partners/{id:[0-9]+}/privileges", partnerHandler.SetPrivileges).Methods(http.MethodPut)
	api.HandleFunc("/partners/{id:[0-9]+}/access", partnerHandler.CheckAccess).Methods(http.MethodGet)
	api.HandleFunc("/partners/{id:[0-9]+}/end-date", partnerHandler.EndDate).Methods(http.MethodGet)

	// Activities
	api.HandleFunc("/partners/{id:[0-9]+}/activities", activityHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/partners/{id:[0-9]+}/activities", activityHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/activities/{id:[0-9]+}/start", activityHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/activities/{id:[0-9]+}/complete", activityHandler.Complete).Methods(http.MethodPost)

	// Attachments
	api.HandleFunc("/attachments", attachmentHandler.Upload).Methods(http.MethodPut)
	api.HandleFunc("/attachments/{key}", attachmentHandler.Download).Methods(http.MethodGet)

	return r
}
