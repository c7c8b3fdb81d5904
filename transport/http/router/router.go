package router

import (
	"hotel/config"
	_ "hotel/docs" // swagger spec
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/blog"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/contact"
	"hotel/internal/handlers/content"
	"hotel/internal/handlers/expense"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/upload"
	"hotel/internal/handlers/user"
	"hotel/shared/failure"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth    auth.Handler
	User    user.Handler
	Room    room.Handler
	Booking booking.Handler
	Content content.Handler
	Blog    blog.Handler
	Expense expense.Handler
	Contact contact.Handler
	Upload  upload.Handler
}

type Router struct {
	Config         *config.Config
	App            middleware.AppMiddleware
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router, health http.HandlerFunc) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)
	router.Use(r.App.Tracing)

	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.allowedOrigins(),
			AllowedMethods:   r.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.Config.App.CORS.AllowedHeaders,
			AllowCredentials: r.Config.App.CORS.AllowCredentials,
			MaxAge:           r.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Route("/api", func(routerGroup chi.Router) {
		routerGroup.Get("/health", health)
		routerGroup.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/api/swagger/doc.json")))

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Content.Router(routerGroup)
		r.DomainHandlers.Blog.Router(routerGroup)
		r.DomainHandlers.Expense.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
		r.DomainHandlers.Upload.Router(routerGroup)
	})

	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		response.WithError(writer, failure.NotFound("route not found"))
	})
}

// allowedOrigins falls back to the frontend URL when no origin list is configured.
func (r *Router) allowedOrigins() []string {
	if len(r.Config.App.CORS.AllowedOrigins) > 0 {
		return r.Config.App.CORS.AllowedOrigins
	}

	return []string{r.Config.App.FrontendURL}
}

func New(cfg *config.Config, app middleware.AppMiddleware, domainHandlers DomainHandlers) Router {
	return Router{
		Config:         cfg,
		App:            app,
		DomainHandlers: domainHandlers,
	}
}
