// Package apperrors translates backend failures into user-safe
// responses. Raw driver or ORM error text never reaches a client; each
// failure class maps to a fixed sentence and an HTTP status.
package apperrors

import (
	"context"
	"errors"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	MsgNotFound     = "The requested record was not found"
	MsgNoPermission = "You don't have permission to perform this action"
	MsgDuplicate    = "A record with these details already exists"
	MsgReferenced   = "This record is linked to other data and cannot be changed"
	MsgMissingField = "A required field is missing"
	MsgConnection   = "Could not reach the server. Please check your connection"
	MsgFallback     = "Something went wrong. Please try again"
)

// Postgres error codes this layer cares about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codePrivilegeViolation  = "42501"
)

// Classify maps err to an HTTP status and a generic user-facing
// message. It never returns the original error text.
func Classify(err error) (int, string) {
	if err == nil {
		return fiber.StatusOK, ""
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound, MsgNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fiber.StatusConflict, MsgDuplicate
		case codeForeignKeyViolation:
			return fiber.StatusConflict, MsgReferenced
		case codeNotNullViolation:
			return fiber.StatusBadRequest, MsgMissingField
		case codePrivilegeViolation:
			return fiber.StatusForbidden, MsgNoPermission
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusServiceUnavailable, MsgConnection
	}

	return fiber.StatusInternalServerError, MsgFallback
}

// JSON writes the classified error to the fiber context as the usual
// {"error": ...} body.
func JSON(c *fiber.Ctx, err error) error {
	status, msg := Classify(err)
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
