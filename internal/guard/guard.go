// Package guard holds the authorization checks shared by every
// ownership-gated mutation: strict owner equality and the demo-account
// exemption list.
package guard

import "errors"

// ErrNotOwner is returned when the acting identity does not match the
// resource's recorded owner. Callers translate it into a localized 403.
var ErrNotOwner = errors.New("caller is not the resource owner")

// RequireOwner enforces strict equality between the resource owner and the
// caller. No role overrides ownership.
func RequireOwner(ownerID, callerID uint) error {
	if ownerID != callerID {
		return ErrNotOwner
	}
	return nil
}

// DemoAccounts is the fixed allowlist of accounts exempted from destructive
// or mutating operations to keep the demo environment stable.
type DemoAccounts struct {
	emails map[string]struct{}
}

func NewDemoAccounts(emails []string) *DemoAccounts {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		set[e] = struct{}{}
	}
	return &DemoAccounts{emails: set}
}

func (d *DemoAccounts) Contains(email string) bool {
	if d == nil {
		return false
	}
	_, ok := d.emails[email]
	return ok
}
