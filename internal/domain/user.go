package domain

// UserType distinguishes INSA-internal submitters from external ones. A
// request's type is fixed from the submitter's profile and never changes.
type UserType string

const (
	UserTypeInternal UserType = "INTERNAL"
	UserTypeExternal UserType = "EXTERNAL"
)

type User struct {
	ID          int32    `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	UserType    UserType `json:"user_type"`
	// Role is the reviewer role, empty for plain submitters.
	Role      ReviewStage `json:"role,omitempty"`
	CreatedOn string      `json:"created_on"`
	UpdatedOn string      `json:"updated_on"`
}

// RequestTypeFor maps a submitter's profile to the request type.
func (u *User) RequestTypeFor() RequestType {
	if u.UserType == UserTypeInternal {
		return RequestTypeInternal
	}
	return RequestTypeExternal
}
