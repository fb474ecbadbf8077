package orders

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartMarket/domain"
	"smartMarket/pkg/logger"
)

type CartRepository interface {
	// LoadCart returns an empty cart when nothing is stored for userKey.
	LoadCart(ctx context.Context, userKey string) (domain.Cart, error)
	SaveCart(ctx context.Context, cart domain.Cart) error
}

type OrdersRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) error
	GetOrder(ctx context.Context, userKey, orderID string) (domain.Order, error)
	GetAllOrders(ctx context.Context, userKey string) ([]domain.Order, error)
}

type ProductFinder interface {
	GetProductByID(ctx context.Context, id uint64) (*domain.Product, error)
}

// InteractionRecorder receives a purchase event for every checked out line.
type InteractionRecorder interface {
	RecordInteraction(ctx context.Context, userKey string, ev domain.Interaction) (domain.PreferenceProfile, error)
}

type OrdersService struct {
	cartRepo     CartRepository
	orderRepo    OrdersRepository
	products     ProductFinder
	interactions InteractionRecorder // optional

	mu    sync.Mutex // serializes cart read-modify-write
	now   func() time.Time
	newID func(time.Time) string
}

func NewOrdersService(cartRepo CartRepository, orderRepo OrdersRepository, products ProductFinder, interactions InteractionRecorder) *OrdersService {
	return &OrdersService{
		cartRepo:     cartRepo,
		orderRepo:    orderRepo,
		products:     products,
		interactions: interactions,
		now:          time.Now,
		newID:        newOrderID,
	}
}

// newOrderID returns "ORD-<unix millis>-<9 uppercase alphanumerics>".
func newOrderID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:9]
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}

func view(items []domain.CartItem) domain.CartView {
	if items == nil {
		items = []domain.CartItem{}
	}
	return domain.CartView{Items: items, Summary: Summarize(items)}
}

func (s *OrdersService) loadItems(ctx context.Context, userKey string) ([]domain.CartItem, error) {
	cart, err := s.cartRepo.LoadCart(ctx, userKey)
	if err != nil {
		logger.Error("failed to load cart", "user_key", userKey, "error", err)
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart.Items, nil
}

func (s *OrdersService) saveItems(ctx context.Context, userKey string, items []domain.CartItem) error {
	cart := domain.Cart{UserKey: userKey, Items: items, UpdatedAt: s.now()}
	if err := s.cartRepo.SaveCart(ctx, cart); err != nil {
		logger.Error("failed to save cart", "user_key", userKey, "error", err)
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// mutate applies fn to the stored cart under the service lock and persists the result.
func (s *OrdersService) mutate(ctx context.Context, userKey string, fn func([]domain.CartItem) ([]domain.CartItem, error)) (domain.CartView, error) {
	if err := ctx.Err(); err != nil {
		return domain.CartView{}, fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadItems(ctx, userKey)
	if err != nil {
		return domain.CartView{}, err
	}

	items, err = fn(items)
	if err != nil {
		return domain.CartView{}, err
	}

	if err := s.saveItems(ctx, userKey, items); err != nil {
		return domain.CartView{}, err
	}

	return view(items), nil
}

func (s *OrdersService) GetCart(ctx context.Context, userKey string) (domain.CartView, error) {
	if err := ctx.Err(); err != nil {
		return domain.CartView{}, fmt.Errorf("context error: %w", err)
	}

	items, err := s.loadItems(ctx, userKey)
	if err != nil {
		return domain.CartView{}, err
	}
	return view(items), nil
}

// AddItem adds quantity of a catalog product; quantity <= 0 adds one.
func (s *OrdersService) AddItem(ctx context.Context, userKey string, productID uint64, quantity int) (domain.CartView, error) {
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return domain.CartView{}, err
	}

	return s.mutate(ctx, userKey, func(items []domain.CartItem) ([]domain.CartItem, error) {
		return addItem(items, *product, quantity, s.now()), nil
	})
}

// UpdateQuantity sets a line's quantity; quantity <= 0 removes the line.
func (s *OrdersService) UpdateQuantity(ctx context.Context, userKey string, productID uint64, quantity int) (domain.CartView, error) {
	return s.mutate(ctx, userKey, func(items []domain.CartItem) ([]domain.CartItem, error) {
		return updateQuantity(items, productID, quantity), nil
	})
}

func (s *OrdersService) RemoveItem(ctx context.Context, userKey string, productID uint64) (domain.CartView, error) {
	return s.mutate(ctx, userKey, func(items []domain.CartItem) ([]domain.CartItem, error) {
		return removeItem(items, productID), nil
	})
}

func (s *OrdersService) ClearCart(ctx context.Context, userKey string) (domain.CartView, error) {
	return s.mutate(ctx, userKey, func([]domain.CartItem) ([]domain.CartItem, error) {
		return []domain.CartItem{}, nil
	})
}

func (s *OrdersService) Analytics(ctx context.Context, userKey string) (domain.CartAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return domain.CartAnalytics{}, fmt.Errorf("context error: %w", err)
	}

	items, err := s.loadItems(ctx, userKey)
	if err != nil {
		return domain.CartAnalytics{}, err
	}
	return Analytics(items), nil
}

// Checkout turns the cart into a processing order, empties the cart and reports a
// purchase interaction for each line.
func (s *OrdersService) Checkout(ctx context.Context, userKey, paymentMethod, shippingAddress string) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	paymentMethod = strings.TrimSpace(paymentMethod)
	shippingAddress = strings.TrimSpace(shippingAddress)
	if paymentMethod == "" || shippingAddress == "" {
		return domain.Order{}, domain.ErrInvalidOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadItems(ctx, userKey)
	if err != nil {
		CheckoutsTotal.WithLabelValues("error").Inc()
		return domain.Order{}, err
	}
	if len(items) == 0 {
		CheckoutsTotal.WithLabelValues("empty").Inc()
		return domain.Order{}, domain.ErrCartEmpty
	}

	now := s.now()
	order := domain.Order{
		ID:                s.newID(now),
		UserKey:           userKey,
		Items:             items,
		Summary:           Summarize(items),
		PaymentMethod:     paymentMethod,
		ShippingAddress:   shippingAddress,
		Status:            domain.OrderStatusProcessing,
		CreatedAt:         now,
		EstimatedDelivery: now.AddDate(0, 0, deliveryDays),
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		CheckoutsTotal.WithLabelValues("error").Inc()
		logger.Error("failed to create order", "user_key", userKey, "error", err)
		return domain.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	CheckoutsTotal.WithLabelValues("ok").Inc()
	OrderValue.Observe(order.Summary.Total)
	logger.Info("order created", "id", order.ID, "user_key", userKey, "total", order.Summary.Total)

	// the order is placed; a cart that fails to clear is logged, not reported
	if err := s.saveItems(ctx, userKey, []domain.CartItem{}); err != nil {
		logger.Warn("order placed but cart was not cleared", "id", order.ID)
	}

	if s.interactions != nil {
		for _, item := range items {
			ev := domain.Interaction{Type: domain.InteractionPurchase, ProductID: item.ProductID, OccurredAt: now}
			if _, err := s.interactions.RecordInteraction(ctx, userKey, ev); err != nil {
				logger.Warn("failed to record purchase", "user_key", userKey, "product_id", item.ProductID, "error", err)
			}
		}
	}

	return order, nil
}

func (s *OrdersService) GetOrder(ctx context.Context, userKey, orderID string) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}
	return s.orderRepo.GetOrder(ctx, userKey, orderID)
}

// GetAllOrders returns the user's orders, newest first.
func (s *OrdersService) GetAllOrders(ctx context.Context, userKey string) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	return s.orderRepo.GetAllOrders(ctx, userKey)
}
