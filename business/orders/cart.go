package orders

import (
	"sort"
	"time"

	"smartMarket/domain"
)

const (
	FreeShippingThreshold = 100.0
	StandardShipping      = 9.99
	TaxRate               = 0.08

	deliveryDays       = 3
	frequentItemsLimit = 5
)

// addItem merges quantity into an existing line or appends a new one.
func addItem(items []domain.CartItem, product domain.Product, quantity int, now time.Time) []domain.CartItem {
	for i := range items {
		if items[i].ProductID == product.ID {
			items[i].Quantity += quantity
			return items
		}
	}

	return append(items, domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Image:     product.Image,
		Price:     product.Price,
		Discount:  product.Discount,
		Quantity:  quantity,
		AddedAt:   now,
	})
}

func removeItem(items []domain.CartItem, productID uint64) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

// updateQuantity sets the quantity of an existing line; quantity <= 0 removes it.
// Products not in the cart are ignored.
func updateQuantity(items []domain.CartItem, productID uint64, quantity int) []domain.CartItem {
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			return removeItem(items, productID)
		}
		items[i].Quantity = quantity
		return items
	}
	return items
}

func totalItems(items []domain.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums discounted line totals.
func Subtotal(items []domain.CartItem) float64 {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.UnitPrice() * float64(item.Quantity)
	}
	return subtotal
}

// ShippingCost is free strictly above the threshold.
func ShippingCost(subtotal float64) float64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return StandardShipping
}

func Tax(subtotal float64) float64 {
	return subtotal * TaxRate
}

func Summarize(items []domain.CartItem) domain.CartSummary {
	subtotal := Subtotal(items)
	shipping := ShippingCost(subtotal)
	tax := Tax(subtotal)

	return domain.CartSummary{
		Items:           len(items),
		TotalItems:      totalItems(items),
		Subtotal:        subtotal,
		Shipping:        shipping,
		Tax:             tax,
		Total:           subtotal + shipping + tax,
		HasFreeShipping: subtotal > FreeShippingThreshold,
	}
}

// Analytics reports list-price spend per category, in first-seen order, and the
// five lines with the highest quantity.
func Analytics(items []domain.CartItem) domain.CartAnalytics {
	analytics := domain.CartAnalytics{
		CategoryDistribution: []domain.CategoryShare{},
		FrequentItems:        []domain.FrequentItem{},
	}

	index := make(map[string]int)
	for _, item := range items {
		value := item.Price * float64(item.Quantity)
		analytics.TotalSpent += value

		i, ok := index[item.Category]
		if !ok {
			i = len(analytics.CategoryDistribution)
			index[item.Category] = i
			analytics.CategoryDistribution = append(analytics.CategoryDistribution, domain.CategoryShare{Category: item.Category})
		}
		analytics.CategoryDistribution[i].Items++
		analytics.CategoryDistribution[i].Value += value
	}

	if n := totalItems(items); n > 0 {
		analytics.AverageItemPrice = analytics.TotalSpent / float64(n)
	}

	byQuantity := make([]domain.CartItem, len(items))
	copy(byQuantity, items)
	sort.SliceStable(byQuantity, func(i, j int) bool {
		return byQuantity[i].Quantity > byQuantity[j].Quantity
	})
	if len(byQuantity) > frequentItemsLimit {
		byQuantity = byQuantity[:frequentItemsLimit]
	}
	for _, item := range byQuantity {
		analytics.FrequentItems = append(analytics.FrequentItems, domain.FrequentItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Total:    item.Price * float64(item.Quantity),
		})
	}

	return analytics
}
