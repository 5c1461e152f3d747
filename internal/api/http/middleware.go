package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"go.uber.org/zap"

	"github.com/spec-kit/medicine-service/internal/api/response"
	"github.com/spec-kit/medicine-service/internal/config"
	"github.com/spec-kit/medicine-service/internal/observability"
	apperrors "github.com/spec-kit/medicine-service/pkg/util"
)

// RegisterMiddlewares attaches global middlewares: timeout, error handling,
// request logging, CORS, and security headers.
func RegisterMiddlewares(app *fiber.App, cfg config.AppConfig, logger *zap.Logger, metrics *observability.Metrics) {
	if timeout := cfg.RequestTimeout(); timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(errorHandlingMiddleware(cfg, logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware funnels every error into the response envelope.
// Internal detail is logged server-side and exposed only outside production.
func errorHandlingMiddleware(cfg config.AppConfig, logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}

				message := domainErr.Message
				if domainErr.Code == "INTERNAL_ERROR" && cfg.Env == "production" {
					message = "internal server error"
				} else if domainErr.Code == "INTERNAL_ERROR" && domainErr.Err != nil {
					message = domainErr.Error()
				}

				err = response.Fail(c, domainErr.HTTPStatus, message, domainErr.Errors)
			}
		}()
		return c.Next()
	}
}
