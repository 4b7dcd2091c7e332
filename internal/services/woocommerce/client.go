package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cataloger/internal/apperrors"
	"cataloger/internal/logger"
	"cataloger/internal/models"
)

// Client is a stateless wrapper around the WooCommerce v3 REST API. Every
// operation is a single Basic-auth HTTP call; retry policy belongs to
// callers.
type Client struct {
	baseURL          string
	consumerKey      string
	consumerSecret   string
	brandAttributeID int
	httpClient       *http.Client
	logger           *logger.Logger
}

func NewClient(baseURL, consumerKey, consumerSecret string, brandAttributeID int, logger *logger.Logger) *Client {
	return &Client{
		baseURL:          baseURL,
		consumerKey:      consumerKey,
		consumerSecret:   consumerSecret,
		brandAttributeID: brandAttributeID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	endpoint := fmt.Sprintf("%s/wp-json/wc/v3/%s", c.baseURL, path)

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return &apperrors.RemoteAPIError{Message: fmt.Sprintf("failed to marshal request: %v", err)}
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return &apperrors.RemoteAPIError{Message: fmt.Sprintf("failed to create request: %v", err)}
	}

	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	req.Header.Set("Content-Type", "application/json")
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apperrors.RemoteAPIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		var apiErr apiError
		message := string(respBody)
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			message = apiErr.Message
		}
		return &apperrors.RemoteAPIError{Message: message, StatusCode: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &apperrors.RemoteAPIError{Message: fmt.Sprintf("failed to decode response: %v", err), StatusCode: resp.StatusCode}
		}
	}

	return nil
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Category > 0 {
		q.Set("category", strconv.FormatInt(o.Category, 10))
	}
	if o.Type != "" {
		q.Set("type", o.Type)
	}
	if o.OrderBy != "" {
		q.Set("orderby", o.OrderBy)
	}
	if o.Order != "" {
		q.Set("order", o.Order)
	}
	return q
}

// ListCategories fetches product categories.
func (c *Client) ListCategories(ctx context.Context, opts ListOptions) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "products/categories", opts.values(), nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory fetches a single category. It degrades to nil on any failure.
func (c *Client) GetCategory(ctx context.Context, id int64) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("products/categories/%d", id), nil, nil, &category); err != nil {
		c.logger.Debug("category %d lookup failed: %v", id, err)
		return nil, nil
	}
	return &category, nil
}

// ListBrands fetches brands, modeled as the terms of the configured brand
// attribute.
func (c *Client) ListBrands(ctx context.Context, opts ListOptions) ([]Brand, error) {
	var brands []Brand
	path := fmt.Sprintf("products/attributes/%d/terms", c.brandAttributeID)
	if err := c.do(ctx, http.MethodGet, path, opts.values(), nil, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// ListProducts fetches product summaries.
func (c *Client) ListProducts(ctx context.Context, opts ListOptions) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "products", opts.values(), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListProductVariations fetches all variations of a variable product.
func (c *Client) ListProductVariations(ctx context.Context, productID int64, opts ListOptions) ([]Variation, error) {
	var variations []Variation
	path := fmt.Sprintf("products/%d/variations", productID)
	if err := c.do(ctx, http.MethodGet, path, opts.values(), nil, &variations); err != nil {
		return nil, err
	}
	return variations, nil
}

// GetProductVariation fetches a single variation. It degrades to nil on any
// failure.
func (c *Client) GetProductVariation(ctx context.Context, productID, variationID int64) (*Variation, error) {
	var variation Variation
	path := fmt.Sprintf("products/%d/variations/%d", productID, variationID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &variation); err != nil {
		c.logger.Debug("variation %d/%d lookup failed: %v", productID, variationID, err)
		return nil, nil
	}
	return &variation, nil
}

// ListAttributesWithTerms fetches every global attribute and, in a secondary
// call per attribute, its full term list.
func (c *Client) ListAttributesWithTerms(ctx context.Context) ([]AttributeWithTerms, error) {
	var attributes []Attribute
	if err := c.do(ctx, http.MethodGet, "products/attributes", nil, nil, &attributes); err != nil {
		return nil, err
	}

	result := make([]AttributeWithTerms, 0, len(attributes))
	for _, attr := range attributes {
		var terms []AttributeTerm
		path := fmt.Sprintf("products/attributes/%d/terms", attr.ID)
		q := url.Values{}
		q.Set("per_page", "100")
		if err := c.do(ctx, http.MethodGet, path, q, nil, &terms); err != nil {
			return nil, err
		}
		result = append(result, AttributeWithTerms{Attribute: attr, Terms: terms})
	}
	return result, nil
}

// UploadProduct creates the product on the commerce platform and, when
// variants are supplied, creates its variations in a second batch call.
// If the batch call fails after the parent was created, the parent still
// exists remotely; the caller sees the batch error.
func (c *Client) UploadProduct(ctx context.Context, product *models.Product, categoryIDs []int64, variants []UploadVariant) (*UploadResult, error) {
	payload := c.buildProductPayload(product, categoryIDs, variants)

	var created struct {
		ID        int64  `json:"id"`
		Permalink string `json:"permalink"`
	}
	if err := c.do(ctx, http.MethodPost, "products", nil, payload, &created); err != nil {
		return nil, err
	}

	if len(variants) > 0 {
		batch := map[string]interface{}{
			"create": buildVariationEntries(variants),
		}
		path := fmt.Sprintf("products/%d/variations/batch", created.ID)
		if err := c.do(ctx, http.MethodPost, path, nil, batch, nil); err != nil {
			c.logger.Error("variation batch failed for product %d, parent record remains: %v", created.ID, err)
			return nil, err
		}
	}

	return &UploadResult{ExternalID: created.ID, PreviewURL: created.Permalink}, nil
}

func (c *Client) buildProductPayload(product *models.Product, categoryIDs []int64, variants []UploadVariant) map[string]interface{} {
	payload := map[string]interface{}{
		"name":   product.Title,
		"status": "draft",
		"type":   "simple",
	}

	if product.Content != nil {
		payload["description"] = *product.Content
	}
	if product.ShortDescription != nil {
		payload["short_description"] = *product.ShortDescription
	}
	if product.Price != nil {
		payload["regular_price"] = strconv.Itoa(*product.Price)
	}

	if len(categoryIDs) > 0 {
		categories := make([]map[string]int64, len(categoryIDs))
		for i, id := range categoryIDs {
			categories[i] = map[string]int64{"id": id}
		}
		payload["categories"] = categories
	}

	if len(product.Images) > 0 {
		images := make([]map[string]string, len(product.Images))
		for i, src := range product.Images {
			// Alt text echoes the product title.
			images[i] = map[string]string{"src": src, "alt": product.Title}
		}
		payload["images"] = images
	}

	if len(variants) > 0 {
		options := make([]string, len(variants))
		for i, v := range variants {
			options[i] = v.Name
		}
		payload["type"] = "variable"
		payload["attributes"] = []map[string]interface{}{
			{
				"name":      "Variant",
				"visible":   true,
				"variation": true,
				"options":   options,
			},
		}
	}

	return payload
}

func buildVariationEntries(variants []UploadVariant) []map[string]interface{} {
	entries := make([]map[string]interface{}, len(variants))
	for i, v := range variants {
		entries[i] = map[string]interface{}{
			"regular_price": strconv.Itoa(v.Price),
			"attributes": []map[string]string{
				{"name": "Variant", "option": v.Name},
			},
		}
	}
	return entries
}
