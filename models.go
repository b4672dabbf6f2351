package truegate

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/nyaruka/phonenumbers"
)

// User is the portal account record as returned by the remote API.
type User struct {
	ID            string    `json:"_id,omitempty"`
	Email         string    `json:"email,omitempty"`
	FirstName     string    `json:"firstName,omitempty"`
	LastName      string    `json:"lastName,omitempty"`
	BirthDate     string    `json:"birthDate,omitempty"`
	Gender        string    `json:"gender,omitempty"`
	Role          UserRole  `json:"role,omitempty"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	LoginAttempts int       `json:"loginAttempts,omitempty"`
	LastLogin     time.Time `json:"lastLogin,omitempty"`
	AllowedIPs    []string  `json:"allowedIps,omitempty"`
	Verified      bool      `json:"verified,omitempty"`
	Locked        bool      `json:"locked,omitempty"`
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DisplayName joins the name parts for UI labels.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return ""
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// UserPatch carries a partial profile update. Only set fields are sent to
// the server and merged into the live session after a confirmed success.
type UserPatch struct {
	FirstName     *string  `json:"firstName,omitempty"`
	LastName      *string  `json:"lastName,omitempty"`
	BirthDate     *string  `json:"birthDate,omitempty"`
	Gender        *string  `json:"gender,omitempty"`
	ContactNumber *string  `json:"contactNumber,omitempty"`
	Role          *string  `json:"role,omitempty"`
	Verified      *bool    `json:"verified,omitempty"`
	Locked        *bool    `json:"locked,omitempty"`
	AllowedIPs    []string `json:"allowedIps,omitempty"`
}

// IsZero reports whether the patch carries no changes at all.
func (p UserPatch) IsZero() bool {
	return p.FirstName == nil && p.LastName == nil && p.BirthDate == nil &&
		p.Gender == nil && p.ContactNumber == nil && p.Role == nil &&
		p.Verified == nil && p.Locked == nil && p.AllowedIPs == nil
}

// LoginPayload is the credentials body for POST /login.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p LoginPayload) Validate() error {
	return wrapValidation(validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	))
}

// RegisterPayload is the body for POST /register.
type RegisterPayload struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	BirthDate     string `json:"birthDate"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contactNumber"`
}

func (p RegisterPayload) Validate() error {
	return wrapValidation(validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, PasswordRules(p.Email, p.FirstName, p.LastName)...),
		validation.Field(&p.FirstName, validation.Required),
		validation.Field(&p.LastName, validation.Required),
		validation.Field(&p.BirthDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&p.Gender, validation.Required),
		validation.Field(&p.ContactNumber, validation.Required, validation.By(validContactNumber)),
	))
}

// ChangePasswordPayload is the body for POST /users/change-password.
type ChangePasswordPayload struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (p ChangePasswordPayload) Validate() error {
	rules := append(PasswordRules(), validation.By(differentFrom(p.OldPassword)))
	return wrapValidation(validation.ValidateStruct(&p,
		validation.Field(&p.OldPassword, validation.Required),
		validation.Field(&p.NewPassword, rules...),
	))
}

// LoginResponse is the body of a successful POST /login. Degraded marks a
// locally fabricated response produced while the backend was unreachable.
type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	User     *User  `json:"user"`
	Degraded bool   `json:"degraded,omitempty"`
}

// MessageResponse is the generic `{message}` body shared by most portal
// endpoints. Degraded carries the same fabrication marker as LoginResponse.
type MessageResponse struct {
	Message  string `json:"message"`
	Degraded bool   `json:"degraded,omitempty"`
}

type csrfResponse struct {
	CSRFToken string `json:"csrfToken"`
}

type apiError struct {
	Error string `json:"error"`
}

func validContactNumber(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	num, err := phonenumbers.Parse(raw, "US")
	if err != nil {
		return goerrors.New("must be a valid phone number", goerrors.CategoryValidation)
	}
	if !phonenumbers.IsValidNumber(num) {
		return goerrors.New("must be a valid phone number", goerrors.CategoryValidation)
	}
	return nil
}

func differentFrom(comparator string) func(value any) error {
	return func(value any) error {
		raw, _ := value.(string)
		if raw != "" && raw == comparator {
			return goerrors.New("new password must differ from the current password", goerrors.CategoryValidation)
		}
		return nil
	}
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid request payload")
}
