package response

import "github.com/gofiber/fiber/v2"

// Envelope is the standard API response shape.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// Success sends a 200 response.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Envelope{Success: true, Message: message, Data: data})
}

// Created sends a 201 response.
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

// Accepted sends a 202 response.
func Accepted(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusAccepted).JSON(Envelope{Success: true, Message: message})
}

// Fail sends an error response with optional per-field messages.
func Fail(c *fiber.Ctx, statusCode int, message string, fieldErrors []string) error {
	return c.Status(statusCode).JSON(Envelope{Success: false, Message: message, Errors: fieldErrors})
}
