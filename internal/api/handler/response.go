package handler

import "github.com/labstack/echo/v4"

// Meta carries the status code and human-readable message of every response.
type Meta struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Envelope is the stable wire contract: {"meta": {...}, "data": ...}.
// Every endpoint, success or failure, renders through it.
type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data"`
}

func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Envelope{Meta: Meta{Code: code, Message: message}, Data: data})
}
