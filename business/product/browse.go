package product

import (
	"context"
	"sort"
	"strings"

	"smartMarket/domain"
)

const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortNewest    = "newest"
	SortPopular   = "popular"

	TrendingDefault  = "trending"
	TrendingNew      = "new"
	TrendingBest     = "best"
	TrendingDiscount = "discount"

	AllCategories = "all"

	defaultMaxPrice        = 10000
	defaultCategoryLimit   = 10
	defaultFeaturedLimit   = 8
	defaultDiscountedLimit = 6
	trendingLimit          = 8
	suggestionLimit        = 5
	suggestionMinLength    = 2
)

func (s *productService) FilterProducts(ctx context.Context, opts domain.ProductFilter) ([]domain.Product, error) {
	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	if opts.MaxPrice <= 0 {
		opts.MaxPrice = defaultMaxPrice
	}

	filtered := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if opts.Category != "" && opts.Category != AllCategories && p.Category != opts.Category {
			continue
		}
		if p.Price < opts.MinPrice || p.Price > opts.MaxPrice {
			continue
		}
		if opts.MinRating > 0 && p.Rating < opts.MinRating {
			continue
		}
		filtered = append(filtered, p)
	}

	return sortProducts(filtered, opts.SortBy), nil
}

func sortProducts(products []domain.Product, sortBy string) []domain.Product {
	var less func(a, b domain.Product) bool

	switch sortBy {
	case SortPriceLow:
		less = func(a, b domain.Product) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b domain.Product) bool { return a.Price > b.Price }
	case SortRating:
		less = func(a, b domain.Product) bool { return a.Rating > b.Rating }
	case SortNewest:
		less = func(a, b domain.Product) bool { return a.ID > b.ID }
	case SortPopular:
		less = func(a, b domain.Product) bool { return a.Reviews > b.Reviews }
	default:
		less = func(a, b domain.Product) bool { return a.Featured && !b.Featured }
	}

	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
	return products
}

// SearchProducts keeps products whose combined text contains every query term.
// A blank query returns the whole catalog.
func (s *productService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return catalog, nil
	}

	out := make([]domain.Product, 0)
	for _, p := range catalog {
		text := strings.ToLower(strings.Join([]string{
			p.Name, p.Description, p.Category, strings.Join(p.Tags, " "),
		}, " "))

		matched := true
		for _, term := range terms {
			if !strings.Contains(text, term) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, p)
		}
	}
	return out, nil
}

// Suggestions returns up to five quick matches for a search box.
func (s *productService) Suggestions(ctx context.Context, query string) ([]domain.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < suggestionMinLength {
		return []domain.Product{}, nil
	}

	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, suggestionLimit)
	for _, p := range catalog {
		if len(out) == suggestionLimit {
			break
		}
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			tagContains(p.Tags, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func tagContains(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// ByCategory matches the product category or an exact tag. "all" matches everything.
func (s *productService) ByCategory(ctx context.Context, category string, limit int) ([]domain.Product, error) {
	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultCategoryLimit
	}

	out := make([]domain.Product, 0)
	for _, p := range catalog {
		if category == AllCategories || p.Category == category || p.HasTag(category) {
			out = append(out, p)
		}
	}
	return truncate(out, limit), nil
}

func (s *productService) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}

	out := make([]domain.Product, 0)
	for _, p := range catalog {
		if p.Featured {
			out = append(out, p)
		}
	}
	return truncate(out, limit), nil
}

func (s *productService) Discounted(ctx context.Context, limit int) ([]domain.Product, error) {
	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultDiscountedLimit
	}

	return truncate(discounted(catalog), limit), nil
}

func discounted(catalog []domain.Product) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range catalog {
		if p.Discount > 0 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Discount > out[j].Discount })
	return out
}

// Trending returns one of the homepage product rows.
func (s *productService) Trending(ctx context.Context, filter string) ([]domain.Product, error) {
	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	switch filter {
	case TrendingNew:
		out := make([]domain.Product, 0)
		for _, p := range catalog {
			if p.HasTag("new") {
				out = append(out, p)
			}
		}
		s.shuffle(out)
		return out, nil
	case TrendingBest:
		return truncate(sortProducts(catalog, SortRating), trendingLimit), nil
	case TrendingDiscount:
		return discounted(catalog), nil
	default:
		return truncate(sortProducts(catalog, SortPopular), trendingLimit), nil
	}
}

func (s *productService) Stats(ctx context.Context) (domain.CatalogStats, error) {
	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return domain.CatalogStats{}, err
	}

	stats := domain.CatalogStats{TotalProducts: len(catalog)}
	if len(catalog) == 0 {
		return stats, nil
	}

	categories := make(map[string]struct{})
	var priceSum, ratingSum float64
	for _, p := range catalog {
		categories[p.Category] = struct{}{}
		priceSum += p.Price
		ratingSum += p.Rating
		stats.TotalStock += p.Stock
	}

	stats.Categories = len(categories)
	stats.AveragePrice = priceSum / float64(len(catalog))
	stats.AverageRating = ratingSum / float64(len(catalog))
	return stats, nil
}

func truncate(products []domain.Product, limit int) []domain.Product {
	if len(products) > limit {
		return products[:limit]
	}
	return products
}
