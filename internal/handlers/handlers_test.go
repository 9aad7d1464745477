package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxe_back_end/internal/cart"
	"luxe_back_end/internal/catalog"
	"luxe_back_end/internal/handlers"
	"luxe_back_end/internal/orders"
	"luxe_back_end/internal/reviews"
	"luxe_back_end/internal/routes"
	"luxe_back_end/internal/storage"
	"luxe_back_end/internal/users"
	"luxe_back_end/internal/wishlist"
)

const testCatalog = `[
	{"id": "p1", "name": "Montre Héritage", "description": "Montre automatique", "category": "Watches", "price": 100, "stock": 5, "rating": 4.5, "review_count": 3, "images": ["/images/watches_0.svg"]},
	{"id": "p2", "name": "Sac Midnight", "description": "Cabas cuir", "category": "Bags", "price": 50, "stock": 10, "rating": 4.0, "review_count": 8, "images": ["/images/bags_0.svg"]}
]`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o644))

	store := storage.NewMemoryStore()
	ledger := cart.NewLedger(store)
	h := handlers.New(
		catalog.NewStore(path),
		ledger,
		wishlist.NewSet(store),
		orders.NewRecorder(store, ledger),
		reviews.NewBook(store),
		users.NewRegistry(store),
	)

	r := gin.New()
	routes.RegisterRoutes(r, h)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r *gin.Engine) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Asha",
		"email":    "asha@luxe.store",
		"password": "motdepasse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestProductsAndCategories(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/products?category=Bags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "p2", resp.Products[0].ID)

	w = doJSON(t, r, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"categories": ["Bags", "Watches"]}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/products/inconnu", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartRequiresAuth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartFlow(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r)

	// Ajout au-delà du stock : plafonné à 5.
	w := doJSON(t, r, http.MethodPost, "/api/cart/add", token, gin.H{"product_id": "p1", "quantity": 99})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cartResp struct {
		Items []struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
		Total float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
	require.Len(t, cartResp.Items, 1)
	assert.Equal(t, 5, cartResp.Items[0].Quantity)
	assert.Equal(t, 500.0, cartResp.Total)

	// Produit inexistant refusé.
	w = doJSON(t, r, http.MethodPost, "/api/cart/add", token, gin.H{"product_id": "fantome", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Mise à jour de quantité, puis suppression.
	w = doJSON(t, r, http.MethodPut, "/api/cart/p1", token, gin.H{"quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/cart/p1", token, gin.H{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Produit du catalogue jamais ajouté au panier : 404, pas de fausse réussite.
	w = doJSON(t, r, http.MethodPut, "/api/cart/p2", token, gin.H{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/cart/p1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/cart", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
	assert.Empty(t, cartResp.Items)
}

func TestCheckoutFlow(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r)

	// Panier vide : refus.
	w := doJSON(t, r, http.MethodPost, "/api/checkout", token, gin.H{
		"payment_method":   "upi",
		"shipping_address": gin.H{"full_name": "Asha"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/cart/add", token, gin.H{"product_id": "p1", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/checkout", token, gin.H{
		"payment_method": "upi",
		"shipping_address": gin.H{
			"full_name": "Asha Verma",
			"address":   "12 MG Road",
			"city":      "Bengaluru",
			"state":     "Karnataka",
			"zip_code":  "560001",
			"phone":     "+91 98765 43210",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var checkout struct {
		Order struct {
			ID          string  `json:"id"`
			TotalAmount float64 `json:"total_amount"`
			Status      string  `json:"tracking_status"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkout))
	assert.Equal(t, 200.0, checkout.Order.TotalAmount)
	assert.Equal(t, "Order Placed", checkout.Order.Status)

	// Le panier est vidé par la commande.
	w = doJSON(t, r, http.MethodGet, "/api/cart", token, nil)
	var cartResp struct {
		Items []struct{} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
	assert.Empty(t, cartResp.Items)

	// L'historique contient la commande, et le QR UPI se génère.
	w = doJSON(t, r, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), checkout.Order.ID)

	w = doJSON(t, r, http.MethodGet, "/api/orders/"+checkout.Order.ID+"/upi-qr", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	// Moyen de paiement inconnu refusé.
	w = doJSON(t, r, http.MethodPost, "/api/checkout", token, gin.H{
		"payment_method":   "cheque",
		"shipping_address": gin.H{"full_name": "Asha"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWishlistToggle(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/wishlist/toggle", token, gin.H{"product_id": "p1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"added":true`)

	w = doJSON(t, r, http.MethodPost, "/api/wishlist/toggle", token, gin.H{"product_id": "p1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"added":false`)

	w = doJSON(t, r, http.MethodPost, "/api/wishlist/toggle", token, gin.H{"product_id": "fantome"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviews(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/products/p1/reviews", token, gin.H{
		"rating":  5,
		"comment": "Superbe qualité",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/products/p1/reviews", token, gin.H{
		"rating":  9,
		"comment": "hors bornes",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/products/p1/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Superbe qualité")
	assert.Contains(t, w.Body.String(), `"user_name":"Asha"`)
}

func TestAdminGate(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r)

	// Utilisateur standard : accès refusé.
	w := doJSON(t, r, http.MethodGet, "/api/admin/analytics", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminAnalytics(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "admin@luxe.store")
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Root",
		"email":    "admin@luxe.store",
		"password": "motdepasse",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Token   string `json:"token"`
		IsAdmin bool   `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.IsAdmin)

	w = doJSON(t, r, http.MethodGet, "/api/admin/analytics", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"total_products":2`)
	assert.Contains(t, w.Body.String(), `"total_users":1`)
}
