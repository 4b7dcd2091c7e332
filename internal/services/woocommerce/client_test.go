package woocommerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cataloger/internal/apperrors"
	"cataloger/internal/logger"
	"cataloger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(server.URL, "key", "secret", 7, logger.New("error"))
	return client, server
}

func TestListCategoriesSendsAuthAndQuery(t *testing.T) {
	var gotUser, gotPath, gotPerPage string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _, _ = r.BasicAuth()
		gotPath = r.URL.Path
		gotPerPage = r.URL.Query().Get("per_page")
		json.NewEncoder(w).Encode([]Category{{ID: 1, Name: "Tools", Slug: "tools"}})
	}))

	categories, err := client.ListCategories(context.Background(), ListOptions{PerPage: 50})
	require.NoError(t, err)

	assert.Equal(t, "key", gotUser)
	assert.Equal(t, "/wp-json/wc/v3/products/categories", gotPath)
	assert.Equal(t, "50", gotPerPage)
	require.Len(t, categories, 1)
	assert.Equal(t, "Tools", categories[0].Name)
}

func TestListProductsRemoteError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"code": "woocommerce_rest_cannot_view", "message": "Sorry, you cannot list resources."})
	}))

	_, err := client.ListProducts(context.Background(), ListOptions{})

	var remoteErr *apperrors.RemoteAPIError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusUnauthorized, remoteErr.StatusCode)
	assert.Equal(t, "Sorry, you cannot list resources.", remoteErr.Message)
}

func TestGetCategoryDegradesToNil(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	category, err := client.GetCategory(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, category)
}

func TestListBrandsUsesBrandAttribute(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode([]Brand{{ID: 3, Name: "Acme"}})
	}))

	brands, err := client.ListBrands(context.Background(), ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, "/wp-json/wc/v3/products/attributes/7/terms", gotPath)
	require.Len(t, brands, 1)
}

func TestListAttributesWithTermsFansOut(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wp-json/wc/v3/products/attributes":
			json.NewEncoder(w).Encode([]Attribute{{ID: 1, Name: "Color"}, {ID: 2, Name: "Size"}})
		case "/wp-json/wc/v3/products/attributes/1/terms":
			json.NewEncoder(w).Encode([]AttributeTerm{{ID: 11, Name: "Red"}})
		case "/wp-json/wc/v3/products/attributes/2/terms":
			json.NewEncoder(w).Encode([]AttributeTerm{{ID: 21, Name: "L"}, {ID: 22, Name: "M"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	attributes, err := client.ListAttributesWithTerms(context.Background())
	require.NoError(t, err)

	require.Len(t, attributes, 2)
	assert.Equal(t, "Color", attributes[0].Attribute.Name)
	assert.Len(t, attributes[0].Terms, 1)
	assert.Len(t, attributes[1].Terms, 2)
}

func uploadFixtureProduct() *models.Product {
	content := "<p>body</p>"
	price := 1500
	return &models.Product{
		ID:      "p1",
		Title:   "Widget",
		Content: &content,
		Price:   &price,
		Images:  []string{"https://img/1.jpg"},
	}
}

func TestUploadProductSimple(t *testing.T) {
	var created map[string]interface{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&created))
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 321, "permalink": "https://shop/widget"})
	}))

	result, err := client.UploadProduct(context.Background(), uploadFixtureProduct(), []int64{5}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(321), result.ExternalID)
	assert.Equal(t, "https://shop/widget", result.PreviewURL)
	assert.Equal(t, "simple", created["type"])
	assert.Equal(t, "1500", created["regular_price"])

	images := created["images"].([]interface{})
	first := images[0].(map[string]interface{})
	assert.Equal(t, "Widget", first["alt"], "alt text echoes the title")
}

func TestUploadProductCreatesVariationsSecond(t *testing.T) {
	var calls []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		switch r.URL.Path {
		case "/wp-json/wc/v3/products":
			var payload map[string]interface{}
			json.NewDecoder(r.Body).Decode(&payload)
			assert.Equal(t, "variable", payload["type"])
			json.NewEncoder(w).Encode(map[string]interface{}{"id": 5, "permalink": "https://shop/p"})
		case "/wp-json/wc/v3/products/5/variations/batch":
			var batch struct {
				Create []map[string]interface{} `json:"create"`
			}
			json.NewDecoder(r.Body).Decode(&batch)
			assert.Len(t, batch.Create, 2)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{}"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	variants := []UploadVariant{{Name: "Red", Price: 10}, {Name: "Blue", Price: 12}}
	_, err := client.UploadProduct(context.Background(), uploadFixtureProduct(), nil, variants)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/wp-json/wc/v3/products",
		"/wp-json/wc/v3/products/5/variations/batch",
	}, calls, "parent record first, variations second")
}

func TestUploadProductVariationFailureLeavesParent(t *testing.T) {
	parentCreated := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wp-json/wc/v3/products":
			parentCreated = true
			json.NewEncoder(w).Encode(map[string]interface{}{"id": 5, "permalink": "https://shop/p"})
		default:
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "batch failed"})
		}
	}))

	_, err := client.UploadProduct(context.Background(), uploadFixtureProduct(), nil, []UploadVariant{{Name: "Red", Price: 10}})

	var remoteErr *apperrors.RemoteAPIError
	require.ErrorAs(t, err, &remoteErr)
	assert.True(t, parentCreated, "the parent record already exists remotely")
}
