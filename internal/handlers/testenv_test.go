package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/erika-dalmagro/orders-app-backend/internal/models"
	"github.com/erika-dalmagro/orders-app-backend/internal/repo"
	"github.com/erika-dalmagro/orders-app-backend/internal/service"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
	P  *ProductHandler
	Tb *TableHandler
	O  *OrderHandler
}

func InitTestDB(t *testing.T) *gorm.DB {
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
		return nil
	}

	if err := db.AutoMigrate(&models.Product{}, &models.Table{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := InitTestDB(t)
	store := &repo.GormRepo{DB: db}

	env := &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		P:  &ProductHandler{Svc: &service.ProductService{Products: store, Store: store}},
		Tb: &TableHandler{Svc: &service.TableService{Store: store}},
		O:  &OrderHandler{Svc: &service.OrderService{Store: store}},
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return env
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	require.Equal(t, code, he.Code)
}

func seedProduct(t *testing.T, env *testEnv, name string, price float64, stock int) models.Product {
	t.Helper()
	prod := models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, env.DB.Create(&prod).Error)
	return prod
}

func seedTable(t *testing.T, env *testEnv, name string, capacity int, singleTab bool) models.Table {
	t.Helper()
	table := models.Table{Name: name, Capacity: capacity, SingleTab: singleTab}
	require.NoError(t, env.DB.Create(&table).Error)
	return table
}
