package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erika-dalmagro/orders-app-backend/internal/models"
)

func TestCreateTable(t *testing.T) {
	env := newTestEnv(t)

	load_map := map[string]any{
		"name":       "T1",
		"capacity":   4,
		"single_tab": true,
	}

	rec, c := env.doJSONRequest(http.MethodPost, "/tables", load_map)
	require.NoError(t, env.Tb.CreateTable(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var Resp models.Table
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &Resp))
	require.NotZero(t, Resp.ID)
	require.Equal(t, "T1", Resp.Name)
	require.Equal(t, 4, Resp.Capacity)
	require.True(t, Resp.SingleTab)
}

func TestCreateTableZeroCapacity(t *testing.T) {
	env := newTestEnv(t)

	load_map := map[string]any{
		"name":       "T1",
		"capacity":   0,
		"single_tab": false,
	}

	_, c := env.doJSONRequest(http.MethodPost, "/tables", load_map)
	requireHTTPError(t, env.Tb.CreateTable(c), http.StatusBadRequest)
}

func TestUpdateTable(t *testing.T) {
	env := newTestEnv(t)

	test_table := seedTable(t, env, "T1", 4, true)

	load_map := map[string]any{
		"name":       "Bar counter",
		"capacity":   8,
		"single_tab": false,
	}

	rec, c := env.doJSONRequest(http.MethodPut, "/tables/1", load_map)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(test_table.ID))
	require.NoError(t, env.Tb.UpdateTable(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var Resp models.Table
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &Resp))
	require.Equal(t, test_table.ID, Resp.ID)
	require.Equal(t, "Bar counter", Resp.Name)
	require.Equal(t, 8, Resp.Capacity)
	require.False(t, Resp.SingleTab)
}

func TestDeleteTable(t *testing.T) {
	env := newTestEnv(t)

	test_table := seedTable(t, env, "T1", 4, true)

	rec, c := env.doJSONRequest(http.MethodDelete, "/tables/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(test_table.ID))
	require.NoError(t, env.Tb.DeleteTable(c))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteTableReferencedByOrder(t *testing.T) {
	env := newTestEnv(t)

	test_table := seedTable(t, env, "T1", 4, true)
	order := models.Order{TableID: test_table.ID, Status: models.OrderStatusClosed, Date: "2024-01-01"}
	require.NoError(t, env.DB.Create(&order).Error)

	_, c := env.doJSONRequest(http.MethodDelete, "/tables/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(test_table.ID))
	requireHTTPError(t, env.Tb.DeleteTable(c), http.StatusConflict)
}

func availableTables(t *testing.T, env *testEnv) []models.Table {
	t.Helper()
	rec, c := env.doJSONRequest(http.MethodGet, "/tables/available", nil)
	require.NoError(t, env.Tb.GetAvailableTables(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var tables []models.Table
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tables))
	return tables
}

func TestAvailableTablesSingleTab(t *testing.T) {
	env := newTestEnv(t)

	test_table := seedTable(t, env, "T1", 4, true)

	require.Len(t, availableTables(t, env), 1)

	order := models.Order{TableID: test_table.ID, Status: models.OrderStatusOpen, Date: "2024-01-01"}
	require.NoError(t, env.DB.Create(&order).Error)

	require.Empty(t, availableTables(t, env))

	require.NoError(t, env.DB.Model(&order).Update("status", models.OrderStatusClosed).Error)

	tables := availableTables(t, env)
	require.Len(t, tables, 1)
	require.Equal(t, test_table.ID, tables[0].ID)
}

func TestAvailableTablesMultiTab(t *testing.T) {
	env := newTestEnv(t)

	test_table := seedTable(t, env, "Bar", 10, false)

	for i := 0; i < 3; i++ {
		order := models.Order{TableID: test_table.ID, Status: models.OrderStatusOpen, Date: "2024-01-01"}
		require.NoError(t, env.DB.Create(&order).Error)
	}

	tables := availableTables(t, env)
	require.Len(t, tables, 1)
	require.Equal(t, test_table.ID, tables[0].ID)
}

func TestGetTables(t *testing.T) {
	env := newTestEnv(t)

	seedTable(t, env, "T1", 4, true)
	seedTable(t, env, "Bar", 10, false)

	rec, c := env.doJSONRequest(http.MethodGet, "/tables", nil)
	require.NoError(t, env.Tb.GetTables(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var Resp []models.Table
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &Resp))
	require.Len(t, Resp, 2)
	require.Equal(t, "T1", Resp[0].Name)
	require.Equal(t, "Bar", Resp[1].Name)
}
