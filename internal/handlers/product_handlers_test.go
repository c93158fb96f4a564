package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erika-dalmagro/orders-app-backend/internal/models"
)

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)

	test_product := seedProduct(t, env, "Margherita", 9.5, 10)

	rec, c := env.doJSONRequest(http.MethodGet, "/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(test_product.ID))
	require.NoError(t, env.P.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var Resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &Resp))
	require.Equal(t, test_product.ID, Resp.ID)
	require.Equal(t, test_product.Name, Resp.Name)
	require.Equal(t, test_product.Price, Resp.Price)
	require.Equal(t, test_product.Stock, Resp.Stock)
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/products/99", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")
	requireHTTPError(t, env.P.GetProduct(c), http.StatusNotFound)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	load_map := map[string]any{
		"name":  "Carbonara",
		"price": 12.0,
		"stock": 8,
	}

	rec, c := env.doJSONRequest(http.MethodPost, "/products", load_map)
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var Resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &Resp))
	require.NotZero(t, Resp.ID)
	require.Equal(t, "Carbonara", Resp.Name)
	require.Equal(t, 12.0, Resp.Price)
	require.Equal(t, 8, Resp.Stock)
}

func TestCreateProductNegativePrice(t *testing.T) {
	env := newTestEnv(t)

	load_map := map[string]any{
		"name":  "Broken",
		"price": -1.0,
		"stock": 1,
	}

	_, c := env.doJSONRequest(http.MethodPost, "/products", load_map)
	requireHTTPError(t, env.P.CreateProduct(c), http.StatusBadRequest)
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)

	test_product := seedProduct(t, env, "Margherita", 9.5, 10)

	load_map := map[string]any{
		"name":  "Margherita DOP",
		"price": 11.0,
		"stock": 4,
	}

	rec, c := env.doJSONRequest(http.MethodPut, "/products/1", load_map)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(test_product.ID))
	require.NoError(t, env.P.UpdateProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var Resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &Resp))
	require.Equal(t, test_product.ID, Resp.ID)
	require.Equal(t, "Margherita DOP", Resp.Name)
	require.Equal(t, 11.0, Resp.Price)
	require.Equal(t, 4, Resp.Stock)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)

	test_product := seedProduct(t, env, "Margherita", 9.5, 10)

	rec, c := env.doJSONRequest(http.MethodDelete, "/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(test_product.ID))
	require.NoError(t, env.P.DeleteProduct(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestDeleteProductReferencedByOrder(t *testing.T) {
	env := newTestEnv(t)

	test_product := seedProduct(t, env, "Margherita", 9.5, 10)
	test_table := seedTable(t, env, "T1", 4, true)

	order := models.Order{TableID: test_table.ID, Status: models.OrderStatusOpen, Date: "2024-01-01"}
	require.NoError(t, env.DB.Create(&order).Error)
	item := models.OrderItem{OrderID: order.ID, ProductID: test_product.ID, Quantity: 2}
	require.NoError(t, env.DB.Create(&item).Error)

	_, c := env.doJSONRequest(http.MethodDelete, "/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(test_product.ID))
	requireHTTPError(t, env.P.DeleteProduct(c), http.StatusConflict)
}

func TestGetProducts(t *testing.T) {
	env := newTestEnv(t)

	seedProduct(t, env, "Margherita", 9.5, 10)
	seedProduct(t, env, "Carbonara", 12.0, 8)

	rec, c := env.doJSONRequest(http.MethodGet, "/products", nil)
	require.NoError(t, env.P.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var Resp []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &Resp))
	require.Len(t, Resp, 2)
	require.Equal(t, "Margherita", Resp[0].Name)
	require.Equal(t, "Carbonara", Resp[1].Name)
}
