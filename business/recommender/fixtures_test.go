package recommender

import (
	"context"
	"sync"

	"smartMarket/domain"
)

func testCatalog() []domain.Product {
	return []domain.Product{
		{
			ID: 1, Name: "iPhone 15 Pro Max", Price: 1299.99, Category: "electronics",
			Rating: 4.8, Reviews: 1284, Stock: 50,
			Description: "Latest Apple smartphone with A17 Pro chip",
			Tags:        []string{"apple", "smartphone", "premium"}, Featured: true,
		},
		{
			ID: 2, Name: "MacBook Pro M3", Price: 2399.99, Category: "electronics",
			Rating: 4.9, Reviews: 892, Stock: 25,
			Description: "Professional laptop with M3 chip",
			Tags:        []string{"apple", "laptop", "professional"},
		},
		{
			ID: 3, Name: "Samsung Galaxy S24", Price: 999.99, Category: "electronics",
			Rating: 4.7, Reviews: 1567, Stock: 100,
			Description: "Android flagship with AI features",
			Tags:        []string{"samsung", "android", "smartphone"},
		},
		{
			ID: 4, Name: "Nike Air Max 270", Price: 149.99, Category: "fashion",
			Rating: 4.6, Reviews: 2345, Stock: 200,
			Description: "Comfortable running shoes",
			Tags:        []string{"nike", "shoes", "sports"}, Discount: 15,
		},
		{
			ID: 5, Name: "Sony WH-1000XM5", Price: 399.99, Category: "electronics",
			Rating: 4.8, Reviews: 1789, Stock: 75,
			Description: "Noise cancelling headphones",
			Tags:        []string{"sony", "headphones", "audio"},
		},
		{
			ID: 6, Name: "Dyson V15 Detect", Price: 699.99, Category: "home",
			Rating: 4.7, Reviews: 987, Stock: 40,
			Description: "Cordless vacuum cleaner",
			Tags:        []string{"dyson", "home", "cleaning"},
		},
	}
}

// plainProduct has no reason-triggering attributes and a neutral price.
func plainProduct(id uint64, category string) domain.Product {
	return domain.Product{
		ID: id, Name: "Item", Description: "thing", Category: category,
		Price: 100, Rating: 4.0, Reviews: 100, Tags: []string{"generic"},
	}
}

type fakeCatalog struct {
	products []domain.Product
	err      error
}

func (f *fakeCatalog) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

type memoryPrefs struct {
	mu       sync.Mutex
	profiles map[string]domain.PreferenceProfile
	loadErr  error
	saveErr  error
	saves    int
}

func newMemoryPrefs() *memoryPrefs {
	return &memoryPrefs{profiles: make(map[string]domain.PreferenceProfile)}
}

func (m *memoryPrefs) LoadProfile(ctx context.Context, userKey string) (*domain.PreferenceProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	p, ok := m.profiles[userKey]
	if !ok {
		return nil, nil
	}
	cp := cloneProfile(p)
	return &cp, nil
}

func (m *memoryPrefs) SaveProfile(ctx context.Context, userKey string, profile domain.PreferenceProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.profiles[userKey] = cloneProfile(profile)
	return nil
}

func (m *memoryPrefs) get(userKey string) (domain.PreferenceProfile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userKey]
	return p, ok
}
