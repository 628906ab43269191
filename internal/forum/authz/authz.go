// Package authz decides whether an already-resolved identity may modify an
// ownable resource. It is a pure predicate over ids: no storage, no session
// inspection, which keeps it trivially testable.
package authz

import "errors"

// ErrPermissionDenied is returned by AssertModify when the identity does not
// own the resource and is not elevated. Call sites abort the mutation on it.
var ErrPermissionDenied = errors.New("authz: permission denied")

// Anonymous is the user id of an unauthenticated request. Stored ids start
// at 1, so zero can never own anything.
const Anonymous int64 = 0

// CanModify reports whether userID owns the resource. Anonymous never can.
func CanModify(userID, ownerID int64) bool {
	return userID != Anonymous && userID == ownerID
}

// CanModifyElevated is CanModify with an explicit elevated override. The
// override is always a caller-supplied parameter, never inferred from the
// identity, so every bypass is visible at the call site.
func CanModifyElevated(userID, ownerID int64, elevated bool) bool {
	if elevated {
		return true
	}
	return CanModify(userID, ownerID)
}

// AssertModify is the error-returning form for call sites that must abort the
// request on denial. It must run before the mutation, not after.
func AssertModify(userID, ownerID int64, elevated bool) error {
	if !CanModifyElevated(userID, ownerID, elevated) {
		return ErrPermissionDenied
	}
	return nil
}
