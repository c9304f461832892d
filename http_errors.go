package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// ErrorResponse is the stable wire shape every failure maps to.
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Detail  *string `json:"detail"`
}

// ErrorHandler returns the fiber error handler that is the single place
// wire-format decisions are made. Typed failures map to their embedded
// status and code; anything unanticipated becomes a generic 500. Full
// detail is logged server-side only, and the presented token or secret is
// never part of the response.
func ErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			status := richErr.Code
			if status < fiber.StatusBadRequest {
				status = fiber.StatusInternalServerError
			}

			if status >= fiber.StatusInternalServerError {
				// unclassified: log everything, say nothing specific
				logger.Error("request failed",
					"path", c.Path(),
					"error", richErr.Error(),
					"category", richErr.Category,
					"metadata", print.MaybePrettyJSON(richErr.Metadata),
				)
				return c.Status(status).JSON(internalErrorBody())
			}

			logger.Info("request rejected",
				"path", c.Path(),
				"status", status,
				"text_code", richErr.TextCode,
				"error", richErr.Message,
				"metadata", print.MaybePrettyJSON(richErr.Metadata),
			)

			return c.Status(status).JSON(ErrorResponse{
				Code:    textCodeFor(richErr),
				Message: richErr.Message,
				Detail:  detailFor(richErr),
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			logger.Info("request rejected", "path", c.Path(), "status", fiberErr.Code, "error", fiberErr.Message)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    TextCodeInvalidRequest,
				Message: fiberErr.Message,
			})
		}

		logger.Error("request failed with untyped error", "path", c.Path(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(internalErrorBody())
	}
}

func internalErrorBody() ErrorResponse {
	return ErrorResponse{
		Code:    TextCodeInternalError,
		Message: "an unexpected error occurred",
	}
}

func textCodeFor(err *errors.Error) string {
	if err.TextCode != "" {
		return err.TextCode
	}

	switch err.Category {
	case errors.CategoryAuth, errors.CategoryNotFound:
		return TextCodeUnauthorized
	case errors.CategoryAuthz:
		return TextCodeProfileIncomplete
	case errors.CategoryBadInput, errors.CategoryValidation, errors.CategoryConflict:
		return TextCodeInvalidRequest
	default:
		return TextCodeInternalError
	}
}

// detailFor surfaces the optional human-oriented detail. Only an explicit
// "detail" metadata entry crosses the wire; everything else stays in the
// server-side log.
func detailFor(err *errors.Error) *string {
	if err.Metadata == nil {
		return nil
	}
	if d, ok := err.Metadata["detail"].(string); ok && d != "" {
		return &d
	}
	return nil
}
