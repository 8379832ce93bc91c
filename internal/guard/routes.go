package guard

import (
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/najdeno/internal/model"
)

// Well-known paths.
const (
	PathRoot           = "/"
	PathLogin          = "/login"
	PathRegister       = "/register"
	PathUnauthorized   = "/unauthorized"
	PathUserDashboard  = "/user-dashboard"
	PathAdminDashboard = "/admin-dashboard"
)

var (
	anyone    = Roles{model.RoleUser, model.RoleAdmin}
	usersOnly = Roles{model.RoleUser}
	adminOnly = Roles{model.RoleAdmin}
)

// Route is one view of the application.
type Route struct {
	Name    string
	Pattern string
	// Public routes skip the guard.
	Public bool
	// AuthPage routes send an authenticated session to its home.
	AuthPage bool
	Allowed  Roles
}

// Routes is the application's route table.
var Routes = []Route{
	{Name: "root", Pattern: PathRoot, Public: true},
	{Name: "login", Pattern: PathLogin, Public: true, AuthPage: true},
	{Name: "register", Pattern: PathRegister, Public: true, AuthPage: true},
	{Name: "unauthorized", Pattern: PathUnauthorized, Public: true},

	{Name: "user-dashboard", Pattern: PathUserDashboard, Allowed: anyone},
	{Name: "profile", Pattern: "/profile", Allowed: anyone},
	{Name: "report-item", Pattern: "/report-item", Allowed: usersOnly},
	{Name: "items", Pattern: "/items", Allowed: anyone},
	{Name: "item-details", Pattern: "/items/{id}", Allowed: anyone},
	{Name: "offer-reward", Pattern: "/offer-reward/{itemId}", Allowed: usersOnly},
	{Name: "reward-history", Pattern: "/reward-history", Allowed: anyone},

	{Name: "admin-dashboard", Pattern: PathAdminDashboard, Allowed: adminOnly},
	{Name: "manage-users", Pattern: "/admin/users", Allowed: adminOnly},
	{Name: "manage-items", Pattern: "/admin/items", Allowed: adminOnly},
	{Name: "approve-claims", Pattern: "/admin/claims", Allowed: adminOnly},
	{Name: "manage-rewards", Pattern: "/admin/rewards", Allowed: adminOnly},
}

// Decision is the router's answer for a path.
type Decision struct {
	Outcome Outcome
	// Location is set for every redirect outcome.
	Location string
	// Route is the matched route; zero when nothing matched.
	Route  Route
	Params map[string]string
}

// Router matches paths against a route table and applies the guard.
type Router struct {
	mux    *chi.Mux
	routes map[string]Route
}

// NewRouter builds a router over routes. Patterns use chi syntax.
func NewRouter(routes []Route) *Router {
	r := &Router{mux: chi.NewRouter(), routes: make(map[string]Route, len(routes))}
	for _, rt := range routes {
		r.mux.Get(rt.Pattern, http.NotFound)
		r.routes[rt.Pattern] = rt
	}
	return r
}

// Match returns the route for target and its URL parameters.
func (r *Router) Match(target string) (Route, map[string]string, bool) {
	rctx := chi.NewRouteContext()
	pattern := r.mux.Find(rctx, http.MethodGet, cleanPath(target))
	rt, ok := r.routes[pattern]
	if !ok {
		return Route{}, nil, false
	}

	var params map[string]string
	if n := len(rctx.URLParams.Keys); n > 0 {
		params = make(map[string]string, n)
		for i, k := range rctx.URLParams.Keys {
			params[k] = rctx.URLParams.Values[i]
		}
	}
	return rt, params, true
}

// Resolve decides what to show for target given the session.
func (r *Router) Resolve(target string, session model.Session, restoring bool) Decision {
	rt, params, ok := r.Match(target)
	if !ok {
		return Decision{Outcome: Redirect, Location: PathRoot}
	}
	d := Decision{Route: rt, Params: params}

	switch {
	case restoring && (rt.Pattern == PathRoot || !rt.Public):
		d.Outcome = Await
	case rt.Pattern == PathRoot:
		d.Outcome, d.Location = Redirect, Home(session)
	case rt.AuthPage && session.IsAuthenticated && !restoring:
		d.Outcome, d.Location = Redirect, Home(session)
	case rt.Public:
		d.Outcome = Render
	default:
		d.Outcome = Check(session, restoring, rt.Allowed)
		switch d.Outcome {
		case RedirectLogin:
			d.Location = PathLogin
		case RedirectUnauthorized:
			d.Location = PathUnauthorized
		}
	}
	return d
}

func cleanPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return PathRoot
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}
