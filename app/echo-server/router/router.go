package router

import (
	"smartMarket/internal/middleware"
	"smartMarket/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/search", handler.Search)
	products.GET("/suggestions", handler.Suggestions)
	products.GET("/trending", handler.Trending)
	products.GET("/featured", handler.Featured)
	products.GET("/discounted", handler.Discounted)
	products.GET("/stats", handler.Stats)
	products.GET("/category/:category", handler.ByCategory)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct)
	products.PUT("/:id", handler.UpdateProduct)
	products.DELETE("/:id", handler.DeleteProduct)
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations", middleware.Session())
	reco.GET("", handler.Recommend)
	reco.GET("/debug", handler.DebugRecommend)
	reco.GET("/categories", handler.Categories)
	reco.GET("/search", handler.Search)
}

func SetPreferenceRoutes(api *echo.Group, handler *rest.PreferenceHandler) {
	prefs := api.Group("/preferences", middleware.Session())
	prefs.GET("", handler.GetProfile)
	prefs.POST("/interactions", handler.RecordInteraction)
	prefs.DELETE("", handler.Reset)
}

func SetMetricsRoute(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func SetCartRoutes(api *echo.Group, handler *rest.OrdersHandler) {
	cart := api.Group("/cart", middleware.Session())
	cart.GET("", handler.GetCart)
	cart.DELETE("", handler.ClearCart)
	cart.GET("/analytics", handler.Analytics)
	cart.POST("/items", handler.AddItem)
	cart.PUT("/items/:product_id", handler.UpdateItem)
	cart.DELETE("/items/:product_id", handler.RemoveItem)
}

func SetOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler) {
	orders := api.Group("/orders", middleware.Session())
	orders.POST("", handler.Checkout)
	orders.GET("", handler.GetAllOrders)
	orders.GET("/:id", handler.GetOrderByID)
}
