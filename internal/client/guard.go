package client

import "github.com/shelfwise/shelfwise/internal/domain"

// DecisionKind is the outcome of a route guard check.
type DecisionKind int

// Guard outcomes.
const (
	// DecisionPlaceholder: rehydration is still running, render a placeholder
	// instead of deciding, so an in-flight session is not bounced to login.
	DecisionPlaceholder DecisionKind = iota
	// DecisionRedirectLogin: viewer is unauthenticated.
	DecisionRedirectLogin
	// DecisionAccessDenied: authenticated but the role is not allowed.
	DecisionAccessDenied
	// DecisionRender: render the protected content.
	DecisionRender
)

// Decision is the guard verdict. RequiredRoles is populated for
// DecisionAccessDenied so the denial view can list what would be needed.
type Decision struct {
	Kind          DecisionKind
	RequiredRoles []domain.Role
}

// Resolve gates a page on the session state and the page's required role
// set. An empty required set means any authenticated role. This is a pure
// function: the same state and roles always yield the same decision.
func Resolve(state State, required ...domain.Role) Decision {
	if state.Loading {
		return Decision{Kind: DecisionPlaceholder}
	}

	if !state.IsAuthenticated || state.User == nil {
		return Decision{Kind: DecisionRedirectLogin}
	}

	if len(required) == 0 {
		return Decision{Kind: DecisionRender}
	}

	for _, role := range required {
		if state.User.Role == role {
			return Decision{Kind: DecisionRender}
		}
	}

	return Decision{Kind: DecisionAccessDenied, RequiredRoles: required}
}
