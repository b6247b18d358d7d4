package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/ahmednasr/autoguide-ai/server/internal/apperr"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string      `json:"error"`
	Code  apperr.Code `json:"code"`
}

// ErrorHandler renders service errors as {error, code}. Only the safe
// message of an apperr error reaches the client; the cause is logged.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(ErrorResponse{Error: fe.Message, Code: codeForStatus(fe.Code)})
		}

		status := apperr.HTTPStatus(err)
		if status >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("request failed")
		}
		return c.Status(status).JSON(ErrorResponse{Error: apperr.Message(err), Code: apperr.CodeOf(err)})
	}
}

func codeForStatus(status int) apperr.Code {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return apperr.CodeInvalidArgument
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return apperr.CodeNotFound
	case fiber.StatusConflict:
		return apperr.CodeConflict
	case fiber.StatusServiceUnavailable:
		return apperr.CodeUnavailable
	default:
		return apperr.CodeInternal
	}
}
