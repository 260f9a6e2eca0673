package main

import (
	"errors"
	"net/http"

	"github.com/MGservicing/MGservice-2/internal/model"
	"github.com/MGservicing/MGservice-2/internal/services"

	"github.com/labstack/echo/v4"
)

type checkoutRequest struct {
	Cart       []model.CartItem `json:"cart"`
	Email      string           `json:"email"`
	Username   string           `json:"username"`
	InviteLink string           `json:"invite_link"`
	Notes      string           `json:"notes"`
	Credential string           `json:"credential"`
}

func registerCheckoutRoutes(g *echo.Group, cs *services.CheckoutService) {
	g.POST("/checkout/start", func(c echo.Context) error {
		var req checkoutRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid payload",
			})
		}
		if req.Email == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "email is required",
			})
		}

		redirectURL, err := cs.StartCheckout(c.Request().Context(), services.CheckoutInput{
			Cart:       req.Cart,
			Email:      req.Email,
			Username:   req.Username,
			InviteLink: req.InviteLink,
			Notes:      req.Notes,
			Credential: req.Credential,
		})
		if err != nil {
			if errors.Is(err, services.ErrCartEmpty) {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error": "Cart is empty",
				})
			}
			// No payment session exists yet, so failing loudly is safe.
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"url": redirectURL,
		})
	})
}
