package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/erika-dalmagro/orders-app-backend/internal/handlers"
)

type Deps struct {
	ProductHandler *handlers.ProductHandler
	TableHandler   *handlers.TableHandler
	OrderHandler   *handlers.OrderHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = errorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.SearchHandler.SearchProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct)
	products.PUT("/:id", d.ProductHandler.UpdateProduct)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct)

	tables := e.Group("/tables")
	tables.GET("", d.TableHandler.GetTables)
	tables.GET("/available", d.TableHandler.GetAvailableTables)
	tables.POST("", d.TableHandler.CreateTable)
	tables.PUT("/:id", d.TableHandler.UpdateTable)
	tables.DELETE("/:id", d.TableHandler.DeleteTable)

	orders := e.Group("/orders")
	orders.GET("", d.OrderHandler.GetOrders)
	orders.GET("/by-date", d.OrderHandler.GetOrdersByDate)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.PUT("/:id", d.OrderHandler.UpdateOrder)
	orders.PUT("/:id/close", d.OrderHandler.CloseOrder)
	orders.DELETE("/:id", d.OrderHandler.DeleteOrder)
}

// errorHandler renders every error as the {"error": "..."} body the
// mobile client expects.
func errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := "internal error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = fmt.Sprint(he.Message)
		}
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, map[string]string{"error": msg})
}
