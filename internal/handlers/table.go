package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/erika-dalmagro/orders-app-backend/internal/logging"
	"github.com/erika-dalmagro/orders-app-backend/internal/mykafka"
	"github.com/erika-dalmagro/orders-app-backend/internal/service"
	"github.com/erika-dalmagro/orders-app-backend/internal/transport"
)

type TableHandler struct {
	Svc      *service.TableService
	Producer *mykafka.Producer
}

func (h *TableHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "table_events", fmt.Sprint(event["tableID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *TableHandler) GetTables(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "table.get_tables")

	items, err := h.Svc.ListTables(ctx)
	if err != nil {
		l.Error("get_tables_error", "status", 500, "reason", "cannot get tables", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get tables")
	}

	l.Info("get_tables_success")
	return c.JSON(http.StatusOK, items)
}

func (h *TableHandler) GetAvailableTables(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "table.get_available_tables")

	items, err := h.Svc.AvailableTables(ctx)
	if err != nil {
		l.Error("get_available_tables_error", "status", 500, "reason", "cannot compute availability", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot compute availability")
	}

	l.Info("get_available_tables_success")
	return c.JSON(http.StatusOK, items)
}

func (h *TableHandler) CreateTable(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "table.create_table")

	var req transport.TableRequest

	if err := c.Bind(&req); err != nil {
		l.Warn("table_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := transport.Validate(&req); err != nil {
		l.Warn("table_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	table, err := h.Svc.CreateTable(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("table_create_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("table_create_error", "status", 500, "reason", "cannot add table to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add table to db")
	}

	h.publish(c, map[string]any{
		"type":    "table_created",
		"tableID": table.ID,
		"name":    table.Name,
	})
	l.Info("create_table_success")
	return c.JSON(http.StatusCreated, table)
}

func (h *TableHandler) UpdateTable(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "table.update_table")

	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		l.Warn("table_update_error", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	var req transport.TableRequest

	if err := c.Bind(&req); err != nil {
		l.Warn("table_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := transport.Validate(&req); err != nil {
		l.Warn("table_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	table, err := h.Svc.UpdateTable(ctx, req, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("table_update_error", "status", 404, "reason", "table not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "table not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("table_update_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("table_update_error", "status", 500, "reason", "cannot update table", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update table")
	}

	h.publish(c, map[string]any{
		"type":    "table_updated",
		"tableID": table.ID,
		"name":    table.Name,
	})
	l.Info("update_table_success")
	return c.JSON(http.StatusOK, table)
}

func (h *TableHandler) DeleteTable(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "table.delete_table")

	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		l.Warn("table_delete_error", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	if err := h.Svc.DeleteTable(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("table_delete_error", "status", 404, "reason", "table not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "table not found")
		}
		if errors.Is(err, service.ErrConflict) {
			l.Warn("table_delete_error", "status", 409, "reason", "table still referenced", "error", err)
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("table_delete_error", "status", 500, "reason", "cannot delete table from db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete table from db")
	}

	h.publish(c, map[string]any{
		"type":    "table_deleted",
		"tableID": id,
	})
	l.Info("delete_table_success")
	return c.NoContent(http.StatusNoContent)
}
