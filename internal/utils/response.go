// response.go
//
// CrossFit workout and training group tracking service
// Copyright (c) 2026 CrossBox <dev@crossbox.fit> (https://crossbox.fit)
//
// This file is part of wodtracker.
// wodtracker is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// wodtracker is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with wodtracker.
// If not, see <https://www.gnu.org/licenses/>.

package utils

import (
	"time"

	"github.com/crossbox/wodtracker/internal/types"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-wide Fiber error handler. It maps CustomError and
// fiber.Error to the standard envelope; anything else becomes a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	switch e := err.(type) {
	case *types.CustomError:
		code = e.Code
		message = e.Message
		errorType = e.Type
	case *fiber.Error:
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// ErrorResponse sends the standard error envelope.
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFoundResponse sends a 404 with the standard envelope.
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, "notFound")
}

// ForbiddenResponse sends a 403 with the standard envelope.
func ForbiddenResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusForbidden, "forbidden")
}

// BadRequestResponse sends a 400 with the standard envelope.
func BadRequestResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusBadRequest, "badRequest")
}

// DeletedResponse confirms a successful delete.
func DeletedResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "Deleted",
		"ok":        true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorResponseStruct defines the schema for error responses in the
// swagger docs.
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// DeletedResponseStruct defines the schema for delete confirmations.
type DeletedResponseStruct struct {
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
}
