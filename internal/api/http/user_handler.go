package http

import (
	"net/http"

	"insa-partnership-backend/internal/domain"
	"insa-partnership-backend/internal/service"
)

// UserHandler covers account registration. Identity is asserted upstream by
// the institute SSO; tokens are minted there, not here.
type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

type registerBody struct {
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	PhoneNumber string             `json:"phone_number,omitempty"`
	UserType    domain.UserType    `json:"user_type"`
	Role        domain.ReviewStage `json:"role,omitempty"`
}

// Register handles POST /users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.userSvc.RegisterUser(r.Context(), service.RegisterUserInput{
		Name:        body.Name,
		Email:       body.Email,
		PhoneNumber: body.PhoneNumber,
		UserType:    body.UserType,
		Role:        body.Role,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}
