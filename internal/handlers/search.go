package handlers

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/erika-dalmagro/orders-app-backend/internal/logging"
	"github.com/erika-dalmagro/orders-app-backend/internal/service/search"
)

// SearchHandler answers menu lookups against the product index, which an
// external consumer keeps in sync from the product_events stream.
type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search_products")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_products_failed", "status", 400, "reason", "q query param required")
		return echo.NewHTTPError(http.StatusBadRequest, "q query param required")
	}

	if h.ES == nil {
		l.Warn("search_products_failed", "status", 503, "reason", "search is not configured")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	total, products, err := search.Search(ctx, h.ES, h.Index, q)
	if err != nil {
		l.Error("search_products_failed", "status", 500, "reason", "search error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search error")
	}

	l.Info("search_products_success", "total", total)
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
