// Package basehdl holds the helpers shared by the domain HTTP handlers:
// the JSON envelope, panic safety and query parsing.
package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"nova_crm/internal/common"
	"nova_crm/internal/logger"
)

// JSONResponse writes a JSON response with an explicit UTF-8 charset.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// Success writes the standard success envelope.
func Success(c fiber.Ctx, data interface{}) error {
	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// Created writes the standard success envelope with a 201 status.
func Created(c fiber.Ctx, data interface{}) error {
	return JSONResponse(c, common.StatusCreated, fiber.Map{
		"code":    common.StatusCreated,
		"message": common.MsgCreated,
		"data":    data,
		"status":  "success",
	})
}

// Fail writes the standard error envelope. Application errors carry their own
// status code; anything else becomes an internal server error.
func Fail(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		return JSONResponse(c, customErr.StatusCode, fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"details": customErr.Details,
			"status":  "error",
		})
	}

	// Unclassified errors are logged with their detail but answered with a
	// generic message so internals never reach the client.
	logger.GetErrorLogger().WithError(err).Error("unhandled handler error")
	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": common.MsgInternalError,
		"status":  "error",
	})
}

// SafeHandlerWrapper runs fn with panic recovery so a handler bug still
// produces a response instead of tearing down the connection.
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			logger.GetErrorLogger().Errorf("handler panic: %v\n%s", r, debug.Stack())
			_ = Fail(c, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Unexpected server error: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}

// ParsePageLimit reads page and limit query parameters, falling back to page 1
// and defaultLimit when missing or malformed.
func ParsePageLimit(c fiber.Ctx, defaultLimit int64) (page, limit int64) {
	page = 1
	limit = defaultLimit

	if s := c.Query("page"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			page = n
		}
	}
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}
	return page, limit
}
