// Package app decides which screen a session may reach.
package app

import (
	"fmt"
	"strings"

	"github.com/Veraticus/procure/internal/common"
	"github.com/Veraticus/procure/internal/model"
)

// Route is a navigable path.
type Route string

// Known routes.
const (
	RouteHome          Route = "/"
	RouteSignIn        Route = "/signin"
	RouteSignUp        Route = "/signup"
	RouteSchedule      Route = "/schedule"
	RouteCatalog       Route = "/listtabledb"
	RouteSupplierTable Route = "/listtablesupplier"
	RouteOrder         Route = "/order"
	RouteOrderTest     Route = "/ordertest"
	RouteOrderTest2    Route = "/ordertest2"
	RouteSignState     Route = "/signstate"
	RouteBoard         Route = "/Board"
)

type routeInfo struct {
	title    string
	public   bool
	terminal bool
}

var routes = map[Route]routeInfo{
	RouteHome:          {title: "Home", terminal: true},
	RouteSignIn:        {title: "Sign in", public: true, terminal: true},
	RouteSignUp:        {title: "Sign up", public: true},
	RouteSchedule:      {title: "Schedule"},
	RouteCatalog:       {title: "Catalog", terminal: true},
	RouteSupplierTable: {title: "Suppliers"},
	RouteOrder:         {title: "Orders", terminal: true},
	RouteOrderTest:     {title: "Order test"},
	RouteOrderTest2:    {title: "Date picker"},
	RouteSignState:     {title: "Account", terminal: true},
	RouteBoard:         {title: "Dashboard"},
}

// Navigation is the outcome of resolving a path.
type Navigation struct {
	Route Route
	// Redirected is set when Route differs from the requested path.
	Redirected bool
}

// Router resolves paths against the route table.
type Router struct{}

// NewRouter creates a router.
func NewRouter() *Router {
	return &Router{}
}

// Lookup matches path against the route table, ignoring case and a trailing slash.
func Lookup(path string) (Route, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return RouteHome, true
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for route := range routes {
		if strings.EqualFold(string(route), path) {
			return route, true
		}
	}
	return "", false
}

// Resolve decides where a session that asks for path ends up.
// Signed-out sessions reach only the public routes and are redirected to sign-in otherwise.
// Signed-in sessions asking for a public route land on Home. Routes this client has no
// screen for resolve with common.ErrRouteUnavailable.
func (r *Router) Resolve(path string, session model.Session) (Navigation, error) {
	route, ok := Lookup(path)
	if !ok {
		if !session.IsAuthenticated() {
			return Navigation{Route: RouteSignIn, Redirected: true}, nil
		}
		return Navigation{}, fmt.Errorf("%w: %s", common.ErrNotFound, path)
	}

	info := routes[route]

	if !session.IsAuthenticated() && !info.public {
		return Navigation{Route: RouteSignIn, Redirected: true}, nil
	}
	if session.IsAuthenticated() && info.public {
		return Navigation{Route: RouteHome, Redirected: true}, nil
	}

	nav := Navigation{Route: route}
	if !info.terminal {
		return nav, fmt.Errorf("%w: %s", common.ErrRouteUnavailable, route)
	}
	return nav, nil
}

// Title returns the display title of a route.
func (r Route) Title() string {
	if info, ok := routes[r]; ok {
		return info.title
	}
	return string(r)
}

// Available reports whether the route has a screen in this client.
func (r Route) Available() bool {
	return routes[r].terminal
}

// PrivateRoutes lists routes behind sign-in that have a screen, in navigation order.
func PrivateRoutes() []Route {
	return []Route{RouteHome, RouteCatalog, RouteOrder, RouteSignState}
}

// WelcomeMessage is the Home screen greeting.
func WelcomeMessage(session model.Session) string {
	return fmt.Sprintf("Welcome, %s !", session.DisplayName())
}
