// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package sec

// # Sessions

// Session is the public snapshot of an authenticated account.
//
// It is a copy taken at login time, never a live reference: later account
// mutations do not propagate into an established session. The credential
// hash is stripped before a Session is ever constructed, so no secret can
// reach the persisted record or the wire.
type Session struct {
	UserID   int      `json:"id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
	Provider string   `json:"provider,omitempty"`
}

// SessionState carries the outcome of a session restore attempt.
//
// # Why not just *Session?
//
// A nil Session is ambiguous: it can mean "nobody is logged in" or "we could
// not ask the session backend". The two must produce different access
// decisions (redirect vs. retry), so the state keeps them apart.
type SessionState struct {
	// Resolved is false while the restore attempt has not produced an
	// answer (backend unreachable). An unresolved state must never be
	// treated as logged-out.
	Resolved bool

	// Session is the restored snapshot, or nil for an anonymous visitor.
	// Only meaningful when Resolved is true.
	Session *Session
}

// Anonymous is the resolved state of a visitor with no session.
func Anonymous() SessionState {
	return SessionState{Resolved: true}
}

// Resolved wraps a restored session snapshot.
func Resolved(session *Session) SessionState {
	return SessionState{Resolved: true, Session: session}
}

// Unresolved is the state while the session backend could not answer.
func Unresolved() SessionState {
	return SessionState{}
}

// # Access Requirements

// Requirement is the declared access level of a route. Every route declares
// exactly one.
type Requirement string

const (
	// RequirePublic admits everyone, including anonymous visitors.
	RequirePublic Requirement = "public"

	// RequireAuthenticated admits any logged-in account.
	RequireAuthenticated Requirement = "authenticated"

	// RequireManager admits only accounts with the manager role.
	RequireManager Requirement = "authenticated+manager"
)

// # Access Decisions

// Decision is the outcome of evaluating a session state against a
// route's requirement.
type Decision int

const (
	// DecisionPending means the session restore has not completed and the
	// caller must hold (retry) rather than redirect.
	DecisionPending Decision = iota

	// DecisionAllow admits the request.
	DecisionAllow

	// DecisionRedirectToLogin sends an anonymous visitor to the login view.
	DecisionRedirectToLogin

	// DecisionRedirectToDefault sends an authenticated but under-privileged
	// account to its landing view (the products workspace).
	DecisionRedirectToDefault
)

// String returns a short label for logging.
func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirectToLogin:
		return "redirect_login"
	case DecisionRedirectToDefault:
		return "redirect_default"
	default:
		return "pending"
	}
}

// EvaluateAccess decides route admission for a session state.
//
// It is a pure function and the single place in the codebase allowed to
// compare roles for visibility; handlers consume its output and never
// re-derive role checks.
//
// # Rules
//   - public: always allow, even while the restore is still pending.
//   - unresolved state: Pending — redirecting before the restore completes
//     would bounce a logged-in user to the login view.
//   - authenticated: allow if a session is present, else redirect to login.
//   - authenticated+manager: allow for managers; present non-managers are
//     redirected to their default view; absent sessions to login.
func EvaluateAccess(state SessionState, requirement Requirement) Decision {
	if requirement == RequirePublic {
		return DecisionAllow
	}

	if !state.Resolved {
		return DecisionPending
	}

	if state.Session == nil {
		return DecisionRedirectToLogin
	}

	switch requirement {
	case RequireAuthenticated:
		return DecisionAllow
	case RequireManager:
		if state.Session.Role.AtLeast(RoleManager) {
			return DecisionAllow
		}
		return DecisionRedirectToDefault
	}

	// Unknown requirement: fail closed.
	return DecisionRedirectToLogin
}
