//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/oauth"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/shared/cache"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	authService "hotel/internal/domains/auth/service"
	blogRepository "hotel/internal/domains/blog/repository"
	blogService "hotel/internal/domains/blog/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	contactRepository "hotel/internal/domains/contact/repository"
	contactService "hotel/internal/domains/contact/service"
	contentRepository "hotel/internal/domains/content/repository"
	contentService "hotel/internal/domains/content/service"
	expenseRepository "hotel/internal/domains/expense/repository"
	expenseService "hotel/internal/domains/expense/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	uploadService "hotel/internal/domains/upload/service"
	userRepository "hotel/internal/domains/user/repository"
	userService "hotel/internal/domains/user/service"

	"github.com/google/wire"

	authHandler "hotel/internal/handlers/auth"
	blogHandler "hotel/internal/handlers/blog"
	bookingHandler "hotel/internal/handlers/booking"
	contactHandler "hotel/internal/handlers/contact"
	contentHandler "hotel/internal/handlers/content"
	expenseHandler "hotel/internal/handlers/expense"
	roomHandler "hotel/internal/handlers/room"
	uploadHandler "hotel/internal/handlers/upload"
	userHandler "hotel/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	oauth.NewGoogle,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
	wire.Bind(new(middleware.IdentityResolver), new(userService.User)),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var contentDomain = wire.NewSet(
	contentRepository.New,
	contentService.New,
)

var blogDomain = wire.NewSet(
	blogRepository.NewPost,
	blogRepository.NewComment,
	blogRepository.NewLike,
	blogService.New,
)

var expenseDomain = wire.NewSet(
	expenseRepository.New,
	expenseService.New,
)

var contactDomain = wire.NewSet(
	contactRepository.New,
	contactService.New,
)

var uploadDomain = wire.NewSet(
	uploadService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	roomDomain,
	bookingDomain,
	contentDomain,
	blogDomain,
	expenseDomain,
	contactDomain,
	uploadDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	bookingHandler.New,
	contentHandler.New,
	blogHandler.New,
	expenseHandler.New,
	contactHandler.New,
	uploadHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
