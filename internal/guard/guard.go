// Package guard decides whether a session may see a view.
package guard

import (
	"fmt"
	"slices"

	"github.com/erazemk/najdeno/internal/model"
)

// Outcome is the result of a guard check.
type Outcome int

// Outcomes. Redirect is only produced by Router, for paths that always
// forward somewhere else.
const (
	Await Outcome = iota
	RedirectLogin
	RedirectUnauthorized
	Render
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Await:
		return "await"
	case RedirectLogin:
		return "redirect-login"
	case RedirectUnauthorized:
		return "redirect-unauthorized"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Roles is an allow-list of roles. An empty list admits any authenticated
// session.
type Roles []model.Role

// Allows reports whether role is in the list. Unknown roles are never
// allowed by a non-empty list.
func (r Roles) Allows(role model.Role) bool {
	if len(r) == 0 {
		return true
	}
	return role.Valid() && slices.Contains(r, role)
}

// Check gates a protected view. While the initial session restore is
// pending no decision is made, since the persisted session may still turn
// out valid.
func Check(session model.Session, restoring bool, allowed Roles) Outcome {
	switch {
	case restoring:
		return Await
	case !session.IsAuthenticated:
		return RedirectLogin
	case !allowed.Allows(session.Role()):
		return RedirectUnauthorized
	}
	return Render
}

// Home returns the landing path for a session.
func Home(session model.Session) string {
	switch {
	case !session.IsAuthenticated:
		return PathLogin
	case session.User.IsAdmin():
		return PathAdminDashboard
	}
	return PathUserDashboard
}
