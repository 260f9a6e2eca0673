package main

import (
	"errors"
	"net/http"

	"github.com/MGservicing/MGservice-2/internal/services"

	"github.com/labstack/echo/v4"
)

func registerPaymentRoutes(g *echo.Group, ps *services.PaymentEventService) {
	p := g.Group("/payments")

	// ============================
	// PROVIDER NOTIFICATION
	// (public, signature-verified)
	// ============================
	p.POST("/notification", func(c echo.Context) error {
		var payload map[string]interface{}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid payload",
			})
		}

		err := ps.HandleNotification(c.Request().Context(), payload)
		if errors.Is(err, services.ErrInvalidSignature) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid signature",
			})
		}

		// IMPORTANT:
		// Once the signature checks out the provider must see HTTP 200,
		// or it will retry an already-settled transaction. Internal
		// failures are logged inside the service.
		return c.JSON(http.StatusOK, echo.Map{
			"received": true,
		})
	})
}
