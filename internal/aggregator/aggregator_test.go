package aggregator

import (
	"context"
	"sync"
	"testing"

	"cataloger/internal/apperrors"
	"cataloger/internal/logger"
	"cataloger/internal/services/woocommerce"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource serves canned products and variations per category and can
// fail selected categories.
type stubSource struct {
	mu         sync.Mutex
	products   map[int64][]woocommerce.Product
	variations map[int64][]woocommerce.Variation
	failList   map[int64]bool
	calls      int
}

func (s *stubSource) ListProducts(ctx context.Context, opts woocommerce.ListOptions) ([]woocommerce.Product, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.failList[opts.Category] {
		return nil, &apperrors.RemoteAPIError{Message: "boom", StatusCode: 500}
	}
	return s.products[opts.Category], nil
}

func (s *stubSource) ListProductVariations(ctx context.Context, productID int64, opts woocommerce.ListOptions) ([]woocommerce.Variation, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.variations[productID], nil
}

func variation(attr, option, price string) woocommerce.Variation {
	return woocommerce.Variation{
		Price: price,
		Attributes: []woocommerce.VariationAttribute{
			{Name: attr, Option: option},
		},
	}
}

func newTestAggregator(source CommerceSource) *Aggregator {
	return New(source, nil, logger.New("error"))
}

func TestSuggestedVariantsDedupAndSort(t *testing.T) {
	source := &stubSource{
		products: map[int64][]woocommerce.Product{
			1: {{ID: 10, Type: "variable"}},
			2: {{ID: 20, Type: "variable"}},
		},
		variations: map[int64][]woocommerce.Variation{
			10: {variation("Color", "Red", "10"), variation("Color", "Blue", "12")},
			20: {variation("Color", "Red", "99")},
		},
	}

	variants, err := newTestAggregator(source).SuggestedVariants(context.Background(), []int64{1, 2})
	require.NoError(t, err)

	// Sorted by name, first-seen price kept.
	assert.Equal(t, []SuggestedVariant{
		{Name: "Blue", Price: 12},
		{Name: "Red", Price: 10},
	}, variants)
}

func TestSuggestedVariantsPartialFailure(t *testing.T) {
	source := &stubSource{
		products: map[int64][]woocommerce.Product{
			1: {{ID: 10, Type: "variable"}},
			3: {{ID: 30, Type: "variable"}},
		},
		variations: map[int64][]woocommerce.Variation{
			10: {variation("Size", "L", "5")},
			30: {variation("Size", "M", "7")},
		},
		failList: map[int64]bool{2: true},
	}

	variants, err := newTestAggregator(source).SuggestedVariants(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, []SuggestedVariant{
		{Name: "L", Price: 5},
		{Name: "M", Price: 7},
	}, variants)
}

func TestSuggestedVariantsTooManyCategories(t *testing.T) {
	source := &stubSource{}

	ids := make([]int64, 11)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	_, err := newTestAggregator(source).SuggestedVariants(context.Background(), ids)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, source.calls, "no network call may precede validation")
}

func TestSuggestedVariantsEmptyCategory(t *testing.T) {
	source := &stubSource{products: map[int64][]woocommerce.Product{}}

	variants, err := newTestAggregator(source).SuggestedVariants(context.Background(), []int64{5})
	require.NoError(t, err)
	assert.Empty(t, variants)
}

func TestSuggestedVariantsSkipsEmptyOptions(t *testing.T) {
	source := &stubSource{
		products: map[int64][]woocommerce.Product{
			1: {{ID: 10, Type: "variable"}},
		},
		variations: map[int64][]woocommerce.Variation{
			10: {variation("Color", "", "10"), variation("Color", "Green", "11")},
		},
	}

	variants, err := newTestAggregator(source).SuggestedVariants(context.Background(), []int64{1})
	require.NoError(t, err)
	assert.Equal(t, []SuggestedVariant{{Name: "Green", Price: 11}}, variants)
}

func TestGroupedOptions(t *testing.T) {
	source := &stubSource{
		products: map[int64][]woocommerce.Product{
			1: {{ID: 10, Type: "variable"}},
		},
		variations: map[int64][]woocommerce.Variation{
			10: {
				variation("Color", "Red", "10"),
				variation("Color", "Red", "15"),
				variation("Color", "Blue", "12"),
				variation("Size", "L", "9"),
			},
		},
	}

	grouped, err := newTestAggregator(source).GroupedOptions(context.Background(), []int64{1})
	require.NoError(t, err)

	require.Contains(t, grouped, int64(1))
	assert.Equal(t, []string{"Red", "Blue"}, grouped[1]["Color"], "in-bucket dedup preserves first-seen order")
	assert.Equal(t, []string{"L"}, grouped[1]["Size"])
}

func TestGroupedOptionsRejectsEmptyInput(t *testing.T) {
	source := &stubSource{}

	_, err := newTestAggregator(source).GroupedOptions(context.Background(), nil)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}
