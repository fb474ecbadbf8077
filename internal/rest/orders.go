package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"smartMarket/domain"
	"smartMarket/internal/middleware"
	"smartMarket/pkg/logger"
)

type (
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
	}

	OrdersService interface {
		GetCart(ctx context.Context, userKey string) (domain.CartView, error)
		AddItem(ctx context.Context, userKey string, productID uint64, quantity int) (domain.CartView, error)
		UpdateQuantity(ctx context.Context, userKey string, productID uint64, quantity int) (domain.CartView, error)
		RemoveItem(ctx context.Context, userKey string, productID uint64) (domain.CartView, error)
		ClearCart(ctx context.Context, userKey string) (domain.CartView, error)
		Analytics(ctx context.Context, userKey string) (domain.CartAnalytics, error)
		Checkout(ctx context.Context, userKey, paymentMethod, shippingAddress string) (domain.Order, error)
		GetOrder(ctx context.Context, userKey, orderID string) (domain.Order, error)
		GetAllOrders(ctx context.Context, userKey string) ([]domain.Order, error)
	}

	CartItemInput struct {
		ProductID uint64 `json:"product_id" validate:"required"`
		Quantity  int    `json:"quantity" validate:"gte=0"`
	}

	// a quantity of 0 or less removes the line
	UpdateInput struct {
		Quantity *int `json:"quantity" validate:"required"`
	}

	CheckoutInput struct {
		PaymentMethod   string `json:"payment_method" validate:"required"`
		ShippingAddress string `json:"shipping_address" validate:"required"`
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
	}
}

func ordersErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCartEmpty), errors.Is(err, domain.ErrInvalidOrder), errors.Is(err, domain.ErrInvalidProduct):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func productIDParam(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("product_id"), 10, 64)
}

// GET /api/v1/cart
func (h *OrdersHandler) GetCart(c echo.Context) error {
	cart, err := h.ordersService.GetCart(c.Request().Context(), middleware.UserKey(c))
	if err != nil {
		return c.JSON(ordersErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cart))
}

// POST /api/v1/cart/items
func (h *OrdersHandler) AddItem(c echo.Context) error {
	var request CartItemInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate cart item", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	cart, err := h.ordersService.AddItem(c.Request().Context(), middleware.UserKey(c), request.ProductID, request.Quantity)
	if err != nil {
		logger.Error("Failed to add cart item", err)
		return c.JSON(ordersErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(cart))
}

// PUT /api/v1/cart/items/:product_id
func (h *OrdersHandler) UpdateItem(c echo.Context) error {
	productID, err := productIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var request UpdateInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	cart, err := h.ordersService.UpdateQuantity(c.Request().Context(), middleware.UserKey(c), productID, *request.Quantity)
	if err != nil {
		logger.Error("Failed to update cart item", err)
		return c.JSON(ordersErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cart))
}

// DELETE /api/v1/cart/items/:product_id
func (h *OrdersHandler) RemoveItem(c echo.Context) error {
	productID, err := productIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	cart, err := h.ordersService.RemoveItem(c.Request().Context(), middleware.UserKey(c), productID)
	if err != nil {
		return c.JSON(ordersErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cart))
}

// DELETE /api/v1/cart
func (h *OrdersHandler) ClearCart(c echo.Context) error {
	cart, err := h.ordersService.ClearCart(c.Request().Context(), middleware.UserKey(c))
	if err != nil {
		return c.JSON(ordersErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cart))
}

// GET /api/v1/cart/analytics
func (h *OrdersHandler) Analytics(c echo.Context) error {
	analytics, err := h.ordersService.Analytics(c.Request().Context(), middleware.UserKey(c))
	if err != nil {
		return c.JSON(ordersErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(analytics))
}

// POST /api/v1/orders
func (h *OrdersHandler) Checkout(c echo.Context) error {
	userKey := middleware.UserKey(c)

	var request CheckoutInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate checkout request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	order, err := h.ordersService.Checkout(c.Request().Context(), userKey, request.PaymentMethod, request.ShippingAddress)
	if err != nil {
		logger.Error("Failed to checkout", "user_key", userKey, "error", err)
		return c.JSON(ordersErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

// GET /api/v1/orders
func (h *OrdersHandler) GetAllOrders(c echo.Context) error {
	orders, err := h.ordersService.GetAllOrders(c.Request().Context(), middleware.UserKey(c))
	if err != nil {
		logger.Error("Failed to get all orders", err)
		return c.JSON(ordersErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}

// GET /api/v1/orders/:id
func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	order, err := h.ordersService.GetOrder(c.Request().Context(), middleware.UserKey(c), c.Param("id"))
	if err != nil {
		logger.Error("Failed to get order by id", err)
		return c.JSON(ordersErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}
