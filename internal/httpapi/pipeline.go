package httpapi

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sheikh-saqib/personal-ledger-service/internal/apperror"
	"github.com/sheikh-saqib/personal-ledger-service/internal/session"
	"github.com/sheikh-saqib/personal-ledger-service/internal/validation"
)

// TokenValidator resolves a raw bearer token into the principal it was issued to.
type TokenValidator interface {
	Validate(ctx context.Context, rawToken string) (session.Principal, error)
}

// Envelope is the request state threaded through a pipeline.
type Envelope[T any] struct {
	Principal session.Principal
	Input     T
	ID        string
}

// Stage transforms the envelope. A non-nil error ends the request and is
// rendered by the app's ErrorHandler.
type Stage[T any] func(c *fiber.Ctx, env *Envelope[T]) error

// Pipeline runs its stages in the order given, stopping at the first error.
type Pipeline[T any] struct {
	stages []Stage[T]
}

func NewPipeline[T any](stages ...Stage[T]) Pipeline[T] {
	return Pipeline[T]{stages: stages}
}

// Then terminates the pipeline with handler and adapts it to fiber.
func (p Pipeline[T]) Then(handler func(c *fiber.Ctx, env *Envelope[T]) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		env := &Envelope[T]{}
		for _, stage := range p.stages {
			if err := stage(c, env); err != nil {
				return err
			}
		}
		return handler(c, env)
	}
}

// Authenticate resolves the bearer token into env.Principal.
func Authenticate[T any](tokens TokenValidator) Stage[T] {
	return func(c *fiber.Ctx, env *Envelope[T]) error {
		principal, err := tokens.Validate(c.UserContext(), bearerToken(c.Get(fiber.HeaderAuthorization)))
		if err != nil {
			return err
		}
		env.Principal = principal
		return nil
	}
}

// PathID copies a route parameter into env.ID.
func PathID[T any](param string) Stage[T] {
	return func(c *fiber.Ctx, env *Envelope[T]) error {
		env.ID = c.Params(param)
		return nil
	}
}

// DecodeBody parses the JSON body into env.Input.
func DecodeBody[T any]() Stage[T] {
	return func(c *fiber.Ctx, env *Envelope[T]) error {
		if len(c.Body()) == 0 {
			return nil
		}
		if err := c.BodyParser(&env.Input); err != nil {
			return apperror.Validation("body", "Request body must be a valid JSON object")
		}
		return nil
	}
}

// DecodeQuery parses the query string into env.Input.
func DecodeQuery[T any]() Stage[T] {
	return func(c *fiber.Ctx, env *Envelope[T]) error {
		if err := c.QueryParser(&env.Input); err != nil {
			return apperror.Validation("query", "Query parameters are malformed")
		}
		return nil
	}
}

// Validate runs the field checks declared on T.
func Validate[T any](v *validation.Validator) Stage[T] {
	return func(c *fiber.Ctx, env *Envelope[T]) error {
		return v.Struct(&env.Input)
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
