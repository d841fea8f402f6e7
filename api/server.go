// Package api wires the HTTP surface: routes, middleware and the outer handler chain.
package api

import (
	"context"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/contactbook/api/handlers"
	"github.com/kutbudev/contactbook/internal/metrics"
	"github.com/kutbudev/contactbook/internal/ratelimiter"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// HealthChecker reports database reachability.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps are the collaborators the router needs. Metrics and Limiter may be nil.
type Deps struct {
	Contacts handlers.ContactService
	Groups   handlers.GroupService
	Health   HealthChecker
	Metrics  *metrics.Metrics
	Limiter  *ratelimiter.Limiter
	Log      logrus.FieldLogger
}

// Route is one entry of the sitemap.
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// NewRouter builds the gin engine with every API route registered.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.HandleMethodNotAllowed = true

	r.Use(
		RequestID(),
		AccessLog(d.Log),
		Metrics(d.Metrics),
		Recovery(d.Log),
		RateLimit(d.Limiter),
		ErrorHandler(d.Log),
	)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"msg": "Method not allowed"})
	})

	// Sitemap of every registered endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, sitemap(r))
	})

	// Ping endpoint for health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/healthz", func(c *gin.Context) {
		if d.Health == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		if err := d.Health.Health(c.Request.Context()); err != nil {
			d.Log.WithError(err).Warn("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	contacts := handlers.NewContactHandler(d.Contacts)
	r.GET("/contact/all", contacts.ListContacts)
	r.POST("/contact", contacts.CreateContact)
	r.GET("/contact/:id", contacts.GetContact)
	r.PUT("/contact/:id", contacts.UpdateContact)
	r.DELETE("/contact/:id", contacts.DeleteContact)

	groups := handlers.NewGroupHandler(d.Groups)
	r.GET("/group", groups.ListGroups)
	r.POST("/group", groups.CreateGroup)
	r.GET("/group/:id", groups.GetGroup)
	r.PUT("/group/:id", groups.UpdateGroup)
	r.DELETE("/group/:id", groups.DeleteGroup)

	return r
}

// NewHandler wraps the router with CORS and trailing-slash normalisation.
func NewHandler(r *gin.Engine, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
	})
	return c.Handler(stripTrailingSlash(r))
}

func sitemap(r *gin.Engine) []Route {
	info := r.Routes()
	routes := make([]Route, 0, len(info))
	for _, ri := range info {
		routes = append(routes, Route{Method: ri.Method, Path: ri.Path})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}
