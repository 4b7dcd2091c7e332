package woocommerce

// Category represents a WooCommerce product category.
type Category struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Parent int64  `json:"parent"`
	Count  int    `json:"count"`
}

// Brand is a term of the configured brand attribute.
type Brand struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// Product is the summary shape returned by the products list endpoint.
type Product struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	Type         string             `json:"type"`
	Status       string             `json:"status"`
	Permalink    string             `json:"permalink"`
	Price        string             `json:"price"`
	RegularPrice string             `json:"regular_price"`
	DateCreated  string             `json:"date_created"`
	Categories   []Category         `json:"categories"`
	Attributes   []ProductAttribute `json:"attributes"`
}

type ProductAttribute struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Variation bool     `json:"variation"`
	Visible   bool     `json:"visible"`
	Options   []string `json:"options"`
}

// Variation is one purchasable option combination of a variable product.
type Variation struct {
	ID           int64                `json:"id"`
	Price        string               `json:"price"`
	RegularPrice string               `json:"regular_price"`
	Status       string               `json:"status"`
	Attributes   []VariationAttribute `json:"attributes"`
}

type VariationAttribute struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Option string `json:"option"`
}

// Attribute is a global product attribute.
type Attribute struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type AttributeTerm struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// AttributeWithTerms pairs an attribute with its full term list.
type AttributeWithTerms struct {
	Attribute Attribute       `json:"attribute"`
	Terms     []AttributeTerm `json:"terms"`
}

// UploadVariant is a single-attribute variant to create under an uploaded
// product.
type UploadVariant struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// UploadResult is the outcome of a successful product upload.
type UploadResult struct {
	ExternalID int64  `json:"external_id"`
	PreviewURL string `json:"preview_url"`
}

// ListOptions narrows list endpoints; zero values are omitted from the query.
type ListOptions struct {
	Page     int
	PerPage  int
	Search   string
	Category int64
	Type     string
	OrderBy  string
	Order    string
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
