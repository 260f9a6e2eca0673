package main

import (
	"net/http"
	"strconv"

	"github.com/MGservicing/MGservice-2/internal/services"

	"github.com/labstack/echo/v4"
)

func registerOrderRoutes(g *echo.Group, ss *services.OrderStatusService) {
	o := g.Group("/orders")

	// Pure read, polled by the storefront while the buyer waits.
	o.GET("/verify", func(c echo.Context) error {
		orderNumber, err := strconv.ParseInt(c.QueryParam("order_number"), 10, 64)
		if err != nil || orderNumber <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "missing or invalid order_number",
			})
		}

		status, err := ss.Status(c.Request().Context(), orderNumber)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"status": status,
		})
	})

	// Explicit processed -> paid confirmation. ok reflects whether the
	// transition actually applied this time.
	o.POST("/verify", func(c echo.Context) error {
		var req struct {
			OrderNumber int64 `json:"order_number"`
		}
		if err := c.Bind(&req); err != nil || req.OrderNumber <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "missing or invalid order_number",
			})
		}

		applied, err := ss.Confirm(c.Request().Context(), req.OrderNumber)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"ok": applied,
		})
	})
}
