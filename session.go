package truegate

import (
	"fmt"
	"time"
)

// Session is the in-memory identity for the current process: the same
// record shape the portal API returns for a user. At most one Session is
// live at a time; nil means anonymous.
type Session = User

// sessionFromClaims synthesizes a Session from a decoded token at process
// start. Missing optional claims default to empty strings and the verified
// flag defaults permissively to true; the login-attempt counter and locked
// flag are unknowable from the token and reset to zero values.
func sessionFromClaims(claims *TokenClaims, now time.Time) *Session {
	if claims == nil {
		return nil
	}
	return &Session{
		ID:            claims.UserID(),
		Email:         claims.Email,
		FirstName:     claims.GivenName(),
		LastName:      claims.FamilyName(),
		BirthDate:     claims.BirthDate,
		Gender:        claims.Gender,
		Role:          claims.Role(),
		ContactNumber: claims.ContactNumber,
		LoginAttempts: 0,
		LastLogin:     now,
		AllowedIPs:    claims.AllowedIPs,
		Verified:      claims.IsVerified(),
		Locked:        false,
	}
}

// Clone returns a deep copy so optimistic merges never alias the stored
// session.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	copied := *u
	if u.AllowedIPs != nil {
		copied.AllowedIPs = append([]string(nil), u.AllowedIPs...)
	}
	return &copied
}

// Merge shallow-merges the patch into the record in place: only set patch
// fields overwrite, everything else is untouched.
func (u *User) Merge(patch UserPatch) {
	if u == nil {
		return
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.BirthDate != nil {
		u.BirthDate = *patch.BirthDate
	}
	if patch.Gender != nil {
		u.Gender = *patch.Gender
	}
	if patch.ContactNumber != nil {
		u.ContactNumber = *patch.ContactNumber
	}
	if patch.Role != nil {
		if role, ok := ParseRole(*patch.Role); ok {
			u.Role = role
		}
	}
	if patch.Verified != nil {
		u.Verified = *patch.Verified
	}
	if patch.Locked != nil {
		u.Locked = *patch.Locked
	}
	if patch.AllowedIPs != nil {
		u.AllowedIPs = append([]string(nil), patch.AllowedIPs...)
	}
}

func (u User) String() string {
	return fmt.Sprintf(
		"user=%s email=%s role=%s verified=%t locked=%t",
		u.ID, u.Email, u.Role, u.Verified, u.Locked,
	)
}
