// Package router holds the route registration plumbing shared by the
// domain routers.
package router

import (
	"github.com/gofiber/fiber/v3"
)

// RoutePrefix holds the base prefixes of the HTTP API.
type RoutePrefix struct {
	Base string // /api
	V1   string // /api/v1
}

// NewRoutePrefix returns the default API prefixes.
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// RegisterRouteWithMiddleware registers a route with its middleware chain
// through a group .Use() call.
//
// Do NOT pass middleware directly to router.Get/Post/Put/Delete: Fiber v3
// silently skips handlers registered that way, so the middleware never runs.
// Attaching the chain via .Use() on a group is the form that works.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "PATCH":
		routeGroup.Patch(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterFunc registers one domain's routes on the v1 group. Each domain
// router exports a constructor returning one, so the wiring lives in
// cmd/server without import cycles.
type RegisterFunc func(v1 fiber.Router) error

// SetupRoutes mounts every domain's routes under /api/v1.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	for _, reg := range regs {
		if err := reg(v1); err != nil {
			return err
		}
	}
	return nil
}
