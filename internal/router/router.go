package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rivalrockets/rivalrockets-api/internal/handler"
	"github.com/rivalrockets/rivalrockets-api/internal/middleware"
)

// Handlers bundles every resource handler the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Machines  *handler.MachineHandler
	Revisions *handler.RevisionHandler
	Cinebench *handler.CinebenchR15Handler
	FM06      *handler.Futuremark3DMark06Handler
	FM3D      *handler.Futuremark3DMarkHandler
}

// Register mounts all routes on the provided Echo instance. Reads are
// open; every write except registration requires a bearer token, which
// the auth middleware checks against the revocation list.
func Register(e *echo.Echo, h Handlers, jwtSecret string, tokens middleware.RevocationStore) {
	e.GET("/healthz", handler.Health)

	// Token endpoints parse the Authorization header themselves, so
	// they stay outside the auth group. Logout must accept the very
	// token it is about to revoke.
	e.POST("/login", h.Auth.Login)
	e.POST("/tokenrefresh", h.Auth.TokenRefresh)
	e.POST("/logout", h.Auth.Logout)

	e.POST("/users", h.Users.Register)
	e.GET("/users", h.Users.List)
	e.GET("/users/:id", h.Users.Get)
	e.GET("/users/:id/machines", h.Users.ListMachines)

	e.GET("/machines", h.Machines.List)
	e.GET("/machines/:id", h.Machines.Get)
	e.GET("/machines/:id/revisions", h.Revisions.ListByMachine)

	e.GET("/revisions", h.Revisions.List)
	e.GET("/revisions/:id", h.Revisions.Get)
	e.GET("/revisions/:id/cinebenchr15results", h.Cinebench.ListByRevision)
	e.GET("/revisions/:id/futuremark3dmark06results", h.FM06.ListByRevision)
	e.GET("/revisions/:id/futuremark3dmarkresults", h.FM3D.ListByRevision)

	e.GET("/cinebenchr15results", h.Cinebench.List)
	e.GET("/cinebenchr15results/:id", h.Cinebench.Get)
	e.GET("/futuremark3dmark06results", h.FM06.List)
	e.GET("/futuremark3dmark06results/:id", h.FM06.Get)
	e.GET("/futuremark3dmarkresults", h.FM3D.List)
	e.GET("/futuremark3dmarkresults/:id", h.FM3D.Get)

	auth := e.Group("", middleware.RequireAuth(jwtSecret, tokens))

	auth.PUT("/users/:id", h.Users.Update)

	auth.POST("/machines", h.Machines.Create)
	auth.PUT("/machines/:id", h.Machines.Update)
	auth.DELETE("/machines/:id", h.Machines.Delete)

	auth.POST("/machines/:id/revisions", h.Revisions.Create)
	auth.PUT("/revisions/:id", h.Revisions.Update)
	auth.DELETE("/revisions/:id", h.Revisions.Delete)

	auth.POST("/revisions/:id/cinebenchr15results", h.Cinebench.Create)
	auth.PUT("/cinebenchr15results/:id", h.Cinebench.Update)
	auth.DELETE("/cinebenchr15results/:id", h.Cinebench.Delete)

	auth.POST("/revisions/:id/futuremark3dmark06results", h.FM06.Create)
	auth.PUT("/futuremark3dmark06results/:id", h.FM06.Update)
	auth.DELETE("/futuremark3dmark06results/:id", h.FM06.Delete)

	auth.POST("/revisions/:id/futuremark3dmarkresults", h.FM3D.Create)
	auth.PUT("/futuremark3dmarkresults/:id", h.FM3D.Update)
	auth.DELETE("/futuremark3dmarkresults/:id", h.FM3D.Delete)
}
