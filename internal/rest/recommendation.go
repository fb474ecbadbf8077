package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"smartMarket/business/recommender"
	"smartMarket/domain"
	"smartMarket/internal/middleware"
	"smartMarket/pkg/logger"
)

type (
	RecommendationHandler struct {
		engine       RecommendationService
		defaultCount int
		timeout      time.Duration
	}

	RecommendationService interface {
		Recommend(ctx context.Context, userKey string, count int) ([]domain.ScoredProduct, error)
		DebugRecommend(ctx context.Context, userKey string, count int) ([]domain.DebugRecommendation, error)
		Categories(ctx context.Context, userKey string) ([]string, error)
		SearchAsync(ctx context.Context, userKey, query string) (<-chan recommender.SearchOutcome, error)
	}

	searchResponse struct {
		Query   string                 `json:"query"`
		Results []domain.ScoredProduct `json:"results"`
	}
)

func NewRecommendationHandler(engine RecommendationService, defaultCount int, timeout time.Duration) *RecommendationHandler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RecommendationHandler{
		engine:       engine,
		defaultCount: defaultCount,
		timeout:      timeout,
	}
}

// GET /api/v1/recommendations?n=6
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	userKey := middleware.UserKey(c)

	recs, err := h.engine.Recommend(c.Request().Context(), userKey, queryInt(c, "n", h.defaultCount))
	if err != nil {
		logger.Error("Failed to recommend", "user_key", userKey, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations/debug?n=6
func (h *RecommendationHandler) DebugRecommend(c echo.Context) error {
	recs, err := h.engine.DebugRecommend(c.Request().Context(), middleware.UserKey(c), queryInt(c, "n", h.defaultCount))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations/categories
func (h *RecommendationHandler) Categories(c echo.Context) error {
	categories, err := h.engine.Categories(c.Request().Context(), middleware.UserKey(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(categories))
}

// GET /api/v1/recommendations/search?q=
// The query is validated before the (possibly slow) search starts, so a blank query
// fails fast with 400.
func (h *RecommendationHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	outcomes, err := h.engine.SearchAsync(ctx, middleware.UserKey(c), query)
	if err != nil {
		if errors.Is(err, recommender.ErrInvalidQuery) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	select {
	case out, ok := <-outcomes:
		if !ok {
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: "search ended without a result"})
		}
		if out.Err != nil {
			if errors.Is(out.Err, context.DeadlineExceeded) {
				return c.JSON(http.StatusGatewayTimeout, ResponseError{Message: out.Err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: out.Err.Error()})
		}
		return c.JSON(http.StatusOK, fres.Response.StatusOK(searchResponse{Query: out.Query, Results: out.Results}))
	case <-ctx.Done():
		return c.JSON(http.StatusGatewayTimeout, ResponseError{Message: ctx.Err().Error()})
	}
}
