package serverutils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AppError is an error with an HTTP status that services may return to
// controllers. Err is kept for logging and errors.Is, never sent to clients.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError { return NewAppError(http.StatusBadRequest, message, nil) }
func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, nil)
}
func NotFound(message string) *AppError { return NewAppError(http.StatusNotFound, message, nil) }

func UnprocessableEntity(message string, err error) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message, err)
}

func Internal(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}

// ErrorHandler renders any error returned from a handler as a BaseResponse.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var details any

	var appErr *AppError
	var fiberErr *fiber.Error
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		message = appErr.Message
	case errors.As(err, &validationErrs):
		code = fiber.StatusBadRequest
		message = "Validation failed"
		details = FormatValidationErrors(validationErrs)
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	res := ErrorResponse(code, message)
	res.Errors = details
	return ctx.Status(code).JSON(res)
}

// ErrorHandlerMiddleware converts errors from downstream handlers into JSON
// before they reach fiber's default handler.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return ErrorHandler(ctx, err)
		}
		return nil
	}
}
