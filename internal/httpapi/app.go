// Package httpapi exposes the account and ledger services over HTTP with fiber.
package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/personal-ledger-service/internal/accounts"
	"github.com/sheikh-saqib/personal-ledger-service/internal/ledger"
	"github.com/sheikh-saqib/personal-ledger-service/internal/logging"
	"github.com/sheikh-saqib/personal-ledger-service/internal/validation"
)

type Options struct {
	Production    bool
	CORSOrigin    string
	AuthRateLimit int // requests per minute per IP on /auth, 0 disables
}

// API holds the collaborators the route handlers call into.
type API struct {
	accounts  *accounts.Service
	ledger    *ledger.Ledger
	tokens    TokenValidator
	validator *validation.Validator
	logger    *zap.Logger
	now       func() time.Time
}

func NewAPI(acc *accounts.Service, l *ledger.Ledger, tokens TokenValidator, v *validation.Validator, logger *zap.Logger) *API {
	return &API{
		accounts:  acc,
		ledger:    l,
		tokens:    tokens,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// NewApp builds the fiber app with transport middleware and every route mounted.
func NewApp(api *API, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "personal-ledger-service",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(opts.Production, api.logger),
	})

	origin := opts.CORSOrigin
	if origin == "" {
		origin = "*"
	}

	app.Use(requestid.New())
	app.Use(logging.RequestLogger(api.logger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: origin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(helmet.New())
	app.Use(compress.New())

	app.Get("/health", api.health)

	auth := app.Group("/auth")
	if opts.AuthRateLimit > 0 {
		auth.Use(limiter.New(limiter.Config{
			Max:        opts.AuthRateLimit,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests"})
			},
		}))
	}
	auth.Post("/register", NewPipeline(
		DecodeBody[registerInput](),
		Validate[registerInput](api.validator),
	).Then(api.register))
	auth.Post("/login", NewPipeline(
		DecodeBody[loginInput](),
		Validate[loginInput](api.validator),
	).Then(api.login))

	tx := app.Group("/transactions")
	tx.Post("/", NewPipeline(
		Authenticate[createEntryInput](api.tokens),
		DecodeBody[createEntryInput](),
		Validate[createEntryInput](api.validator),
	).Then(api.createEntry))
	tx.Get("/", NewPipeline(
		Authenticate[listInput](api.tokens),
		DecodeQuery[listInput](),
		Validate[listInput](api.validator),
	).Then(api.listEntries))
	tx.Get("/balance", NewPipeline(
		Authenticate[struct{}](api.tokens),
	).Then(api.balance))
	tx.Put("/:id", NewPipeline(
		Authenticate[updateEntryInput](api.tokens),
		PathID[updateEntryInput]("id"),
		DecodeBody[updateEntryInput](),
		Validate[updateEntryInput](api.validator),
	).Then(api.updateEntry))
	tx.Delete("/:id", NewPipeline(
		Authenticate[struct{}](api.tokens),
		PathID[struct{}]("id"),
	).Then(api.deleteEntry))

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Endpoint not found"})
	})

	return app
}
