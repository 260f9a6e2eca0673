package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MGservicing/MGservice-2/internal/middleware"
	"github.com/MGservicing/MGservice-2/internal/repository"
	"github.com/MGservicing/MGservice-2/internal/services"

	"github.com/labstack/echo/v4"
)

func registerAdminRoutes(g *echo.Group, as *services.AdminService, jwtSecret []byte) {
	a := g.Group("/admin")

	// ============================
	// LOGIN (public)
	// ============================
	a.POST("/login", func(c echo.Context) error {
		var req struct {
			Password string `json:"password"`
		}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid payload",
			})
		}

		token, err := as.Login(req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "invalid password",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token": token,
		})
	})

	// ============================
	// ORDER MANAGEMENT (JWT protected)
	// ============================
	a.Use(middleware.JWTMiddleware(jwtSecret))

	a.GET("/orders", func(c echo.Context) error {
		orders, err := as.ListOrders(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(http.StatusOK, orders)
	})

	a.GET("/orders/:orderNumber", func(c echo.Context) error {
		orderNumber, err := strconv.ParseInt(c.Param("orderNumber"), 10, 64)
		if err != nil || orderNumber <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid order number",
			})
		}

		detail, err := as.GetOrderDetail(c.Request().Context(), orderNumber)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{
					"error": "order not found",
				})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(http.StatusOK, detail)
	})

	a.PATCH("/orders/:orderNumber/status", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		if cl == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "unauthenticated",
			})
		}

		orderNumber, err := strconv.ParseInt(c.Param("orderNumber"), 10, 64)
		if err != nil || orderNumber <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid order number",
			})
		}

		var req struct {
			Status string `json:"status"`
		}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid payload",
			})
		}

		err = as.UpdateFulfilmentStatus(c.Request().Context(), orderNumber, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrBadStatus):
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error": err.Error(),
				})
			case errors.Is(err, repository.ErrNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{
					"error": "order not found",
				})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"error": err.Error(),
				})
			}
		}

		return c.JSON(http.StatusOK, echo.Map{
			"ok": true,
		})
	})
}
