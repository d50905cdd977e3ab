package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	internalauth "github.com/juanfvasquez/pedidos-backend/internal/auth"
	"github.com/juanfvasquez/pedidos-backend/internal/grouporders"
	"github.com/juanfvasquez/pedidos-backend/internal/orderitems"
	"github.com/juanfvasquez/pedidos-backend/internal/products"
	"github.com/juanfvasquez/pedidos-backend/internal/users"
	"github.com/juanfvasquez/pedidos-backend/pkg/config"
	"github.com/juanfvasquez/pedidos-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type noopSessions struct{}

func (noopSessions) Create(context.Context, string) error { return nil }
func (noopSessions) Revoke(context.Context, string) error { return nil }

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.Product{}, &models.GroupOrder{}, &models.OrderItem{}))

	cfg := &config.Config{
		App:     config.AppConfig{Env: config.AppEnvDev, Port: "0"},
		JWT:     config.JWTConfig{Secret: "test-secret", Issuer: "pedidos", ExpirationMinutes: 60},
		Session: config.SessionConfig{CookieName: "pedidos_session"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	userRepo := users.NewRepository(conn)
	productRepo := products.NewRepository(conn)
	orderRepo := grouporders.NewRepository(conn)
	itemRepo := orderitems.NewRepository(conn)

	productSvc, err := products.NewService(productRepo, nil)
	require.NoError(t, err)
	orderSvc, err := grouporders.NewService(orderRepo, itemRepo, productRepo, userRepo, nil)
	require.NoError(t, err)
	itemSvc, err := orderitems.NewService(itemRepo, orderRepo, productRepo, nil)
	require.NoError(t, err)
	authSvc, err := internalauth.NewService(nil, userRepo, noopSessions{}, internalauth.Config{
		JWT:             cfg.JWT,
		OwnerOpenID:     "owner-open-id",
		DevLoginEnabled: true,
	}, nil)
	require.NoError(t, err)

	return New(Dependencies{
		Config:            cfg,
		Logger:            nil,
		AuthService:       authSvc,
		ProductService:    productSvc,
		GroupOrderService: orderSvc,
		OrderItemService:  itemSvc,
	})
}

func devLoginCookie(t *testing.T, router http.Handler, openID string) *http.Cookie {
	t.Helper()
	body := fmt.Sprintf(`{"openId":%q,"name":"Test User"}`, openID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/dev-login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "pedidos_session" {
			return cookie
		}
	}
	t.Fatal("dev-login did not set the session cookie")
	return nil
}

func doJSON(router http.Handler, method, path string, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(router, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicEndpointsNeedNoAuth(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/v1/group-orders/active", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Nil(t, envelope.Data)

	rec = doJSON(router, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMutationsRequireAuthentication(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/v1/products", `{"name":"Arepa","price":3000}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/v1/order-items", `{"groupOrderId":1,"productId":1,"quantity":1}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminGateRunsInTheService(t *testing.T) {
	router := testRouter(t)
	memberCookie := devLoginCookie(t, router, "member-open-id")

	rec := doJSON(router, http.MethodPost, "/api/v1/products", `{"name":"Arepa","price":3000}`, memberCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "only administrators may create products")
}

// TestFullOrderFlow walks the happy path end to end: the owner signs in as
// admin, publishes a product, opens an order, a member adds items, and the
// totals come back split.
func TestFullOrderFlow(t *testing.T) {
	router := testRouter(t)

	adminCookie := devLoginCookie(t, router, "owner-open-id")
	memberCookie := devLoginCookie(t, router, "member-open-id")

	rec := doJSON(router, http.MethodPost, "/api/v1/products", `{"name":"Arepa","price":3000}`, adminCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(router, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var productList struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &productList))
	require.Len(t, productList.Data, 1)
	productID := productList.Data[0].ID

	rec = doJSON(router, http.MethodPost, "/api/v1/group-orders", `{}`, adminCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var orderResp struct {
		Data models.GroupOrder `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orderResp))
	orderID := orderResp.Data.ID

	rec = doJSON(router, http.MethodPatch,
		fmt.Sprintf("/api/v1/group-orders/%d/delivery-cost", orderID),
		`{"deliveryCost":1000}`, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	itemBody := fmt.Sprintf(`{"groupOrderId":%d,"productId":%d,"quantity":2}`, orderID, productID)
	rec = doJSON(router, http.MethodPost, "/api/v1/order-items", itemBody, memberCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(router, http.MethodGet,
		fmt.Sprintf("/api/v1/group-orders/%d/items/mine", orderID), "", memberCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine struct {
		Data []models.OrderItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine.Data, 1)

	rec = doJSON(router, http.MethodGet,
		fmt.Sprintf("/api/v1/group-orders/%d/my-total", orderID), "", memberCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var total struct {
		Data orderitems.MyTotal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &total))
	assert.Equal(t, 6000, total.Data.ProductsTotal)
	assert.Equal(t, 1, total.Data.ParticipantCount)
	assert.Equal(t, 1000, total.Data.DeliveryShare)
	assert.Equal(t, 7000, total.Data.GrandTotal)

	rec = doJSON(router, http.MethodGet,
		fmt.Sprintf("/api/v1/group-orders/%d/consolidated", orderID), "", memberCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(router, http.MethodGet,
		fmt.Sprintf("/api/v1/group-orders/%d/consolidated", orderID), "", adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var consolidated struct {
		Data grouporders.Consolidated `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &consolidated))
	require.Len(t, consolidated.Data.ProductTotals, 1)
	assert.Equal(t, 6000, consolidated.Data.ProductTotals[0].TotalPrice)
	require.Len(t, consolidated.Data.Users, 1)

	rec = doJSON(router, http.MethodPost,
		fmt.Sprintf("/api/v1/group-orders/%d/close", orderID), "", adminCookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(router, http.MethodGet, "/api/v1/group-orders/active", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var active struct {
		Data any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	assert.Nil(t, active.Data)

	// The closed order's items still price; only the delivery share drops
	// to zero once nothing is open.
	rec = doJSON(router, http.MethodGet,
		fmt.Sprintf("/api/v1/group-orders/%d/my-total", orderID), "", memberCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &total))
	assert.Equal(t, 6000, total.Data.ProductsTotal)
	assert.Equal(t, 0, total.Data.DeliveryShare)
	assert.Equal(t, 6000, total.Data.GrandTotal)
}

func TestDevLoginPromotesConfiguredOwner(t *testing.T) {
	router := testRouter(t)
	cookie := devLoginCookie(t, router, "owner-open-id")

	rec := doJSON(router, http.MethodGet, "/api/v1/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Data models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "owner-open-id", me.Data.OpenID)
	assert.Equal(t, "admin", string(me.Data.Role))
}

func TestLogoutClearsCookie(t *testing.T) {
	router := testRouter(t)
	cookie := devLoginCookie(t, router, "member-open-id")

	rec := doJSON(router, http.MethodPost, "/api/v1/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "pedidos_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
