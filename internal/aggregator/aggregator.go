package aggregator

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"cataloger/internal/apperrors"
	"cataloger/internal/cache"
	"cataloger/internal/logger"
	"cataloger/internal/services/woocommerce"

	"golang.org/x/sync/errgroup"
)

const (
	maxCategoryIDs = 10

	// Newest variable products inspected per category.
	groupedProductLimit   = 2
	suggestedProductLimit = 3

	fanOutLimit = 4

	suggestedCacheTTL = 10 * time.Minute
)

// CommerceSource is the slice of the commerce client the aggregator needs.
type CommerceSource interface {
	ListProducts(ctx context.Context, opts woocommerce.ListOptions) ([]woocommerce.Product, error)
	ListProductVariations(ctx context.Context, productID int64, opts woocommerce.ListOptions) ([]woocommerce.Variation, error)
}

// SuggestedVariant is a deduplicated (name, price) upload suggestion.
type SuggestedVariant struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// optionPair is one non-empty attribute option observed on a variation.
type optionPair struct {
	Attribute string
	Option    string
	Price     int
}

// Aggregator fans out per-category variation queries and merges the results.
// A failing category is omitted, never fatal.
type Aggregator struct {
	source CommerceSource
	cache  *cache.Cache
	logger *logger.Logger
}

func New(source CommerceSource, cache *cache.Cache, logger *logger.Logger) *Aggregator {
	return &Aggregator{
		source: source,
		cache:  cache,
		logger: logger,
	}
}

func validateCategoryIDs(ids []int64) error {
	if len(ids) == 0 {
		return apperrors.NewValidation("at least one category id is required")
	}
	if len(ids) > maxCategoryIDs {
		return apperrors.NewValidation("at most %d category ids are allowed, got %d", maxCategoryIDs, len(ids))
	}
	return nil
}

// collect fetches every category's option pairs concurrently. Results land
// in input-order slots so the later merge is deterministic regardless of
// completion order; a category whose fetch sequence fails contributes nil.
func (a *Aggregator) collect(ctx context.Context, categoryIDs []int64, productLimit int) [][]optionPair {
	results := make([][]optionPair, len(categoryIDs))

	g := &errgroup.Group{}
	g.SetLimit(fanOutLimit)
	for i, id := range categoryIDs {
		i, id := i, id
		g.Go(func() error {
			pairs, err := a.fetchCategory(ctx, id, productLimit)
			if err != nil {
				a.logger.Error("skipping category %d: %v", id, err)
				return nil
			}
			results[i] = pairs
			return nil
		})
	}
	g.Wait()

	return results
}

// fetchCategory pulls the newest variable products of one category and every
// variation of each, and extracts the non-empty attribute options.
func (a *Aggregator) fetchCategory(ctx context.Context, categoryID int64, productLimit int) ([]optionPair, error) {
	products, err := a.source.ListProducts(ctx, woocommerce.ListOptions{
		Category: categoryID,
		Type:     "variable",
		OrderBy:  "date",
		Order:    "desc",
		PerPage:  productLimit,
	})
	if err != nil {
		return nil, err
	}

	var pairs []optionPair
	for _, product := range products {
		variations, err := a.source.ListProductVariations(ctx, product.ID, woocommerce.ListOptions{PerPage: 100})
		if err != nil {
			return nil, err
		}
		for _, variation := range variations {
			price := parsePrice(variation.Price)
			for _, attr := range variation.Attributes {
				if attr.Option == "" {
					continue
				}
				pairs = append(pairs, optionPair{
					Attribute: attr.Name,
					Option:    attr.Option,
					Price:     price,
				})
			}
		}
	}
	return pairs, nil
}

// GroupedOptions buckets option values under their attribute name, per
// category, deduplicated in first-seen order.
func (a *Aggregator) GroupedOptions(ctx context.Context, categoryIDs []int64) (map[int64]map[string][]string, error) {
	if err := validateCategoryIDs(categoryIDs); err != nil {
		return nil, err
	}

	collected := a.collect(ctx, categoryIDs, groupedProductLimit)

	grouped := make(map[int64]map[string][]string, len(categoryIDs))
	for i, id := range categoryIDs {
		buckets := make(map[string][]string)
		seen := make(map[string]bool)
		for _, pair := range collected[i] {
			key := pair.Attribute + "\x00" + pair.Option
			if seen[key] {
				continue
			}
			seen[key] = true
			buckets[pair.Attribute] = append(buckets[pair.Attribute], pair.Option)
		}
		grouped[id] = buckets
	}
	return grouped, nil
}

// SuggestedVariants flattens all categories' options into (name, price)
// pairs, deduplicated by name keeping the first-seen price, sorted by name.
func (a *Aggregator) SuggestedVariants(ctx context.Context, categoryIDs []int64) ([]SuggestedVariant, error) {
	if err := validateCategoryIDs(categoryIDs); err != nil {
		return nil, err
	}

	cacheKey := suggestedCacheKey(categoryIDs)
	if a.cache != nil {
		if data := a.cache.Get(ctx, cacheKey); data != nil {
			var cached []SuggestedVariant
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	collected := a.collect(ctx, categoryIDs, suggestedProductLimit)

	seen := make(map[string]bool)
	variants := []SuggestedVariant{}
	for _, pairs := range collected {
		for _, pair := range pairs {
			if seen[pair.Option] {
				continue
			}
			seen[pair.Option] = true
			variants = append(variants, SuggestedVariant{Name: pair.Option, Price: pair.Price})
		}
	}

	sort.Slice(variants, func(i, j int) bool {
		return variants[i].Name < variants[j].Name
	})

	if a.cache != nil {
		if data, err := json.Marshal(variants); err == nil {
			a.cache.Set(ctx, cacheKey, data, suggestedCacheTTL)
		}
	}

	return variants, nil
}

func suggestedCacheKey(categoryIDs []int64) string {
	ids := append([]int64(nil), categoryIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("variants:suggested:%s", strings.Join(parts, ","))
}

func parsePrice(raw string) int {
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int(f)
}
