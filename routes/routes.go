package routes

import (
	"net/http"

	"cwarett/auth"
	"cwarett/cart"
	"cwarett/middleware"
	"cwarett/orders"
	"cwarett/products"
	"cwarett/ratelim"
	"cwarett/subscriptions"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", products.GetProducts)
	router.GET("/api/products/:productid", products.GetProduct)
	router.GET("/api/categories", products.GetCategories)

	router.POST("/api/products", middleware.Authenticate(middleware.RequireRole("admin", products.CreateProduct)))
	router.PUT("/api/products/:productid", middleware.Authenticate(middleware.RequireRole("admin", products.EditProduct)))
	router.DELETE("/api/products/:productid", middleware.Authenticate(middleware.RequireRole("admin", products.DeleteProduct)))
}

func AddSubscriptionRoutes(router *httprouter.Router) {
	router.GET("/api/subscriptions/:productid", subscriptions.GetPlans)
	router.POST("/api/subscriptions/:productid", middleware.Authenticate(middleware.RequireRole("admin", subscriptions.CreatePlan)))
	router.PUT("/api/subscriptions/:productid/:planid", middleware.Authenticate(middleware.RequireRole("admin", subscriptions.EditPlan)))
	router.DELETE("/api/subscriptions/:productid/:planid", middleware.Authenticate(middleware.RequireRole("admin", subscriptions.DeletePlan)))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.POST("/api/orders", ratelim.RateLimit(orders.CreateOrder))
	router.GET("/api/orders", middleware.Authenticate(middleware.RequireRole("admin", orders.GetOrders)))
	router.PUT("/api/orders/:orderid", middleware.Authenticate(middleware.RequireRole("admin", orders.EditOrder)))
	router.DELETE("/api/orders/:orderid", middleware.Authenticate(middleware.RequireRole("admin", orders.DeleteOrder)))
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handler) {
	router.GET("/api/cart", h.GetCart)
	router.POST("/api/cart", ratelim.RateLimit(h.AddToCart))
	router.PATCH("/api/cart/item/:itemid", h.UpdateCartItem)
	router.DELETE("/api/cart/item/:itemid", h.RemoveCartItem)
	router.DELETE("/api/cart", h.ClearCart)
	router.POST("/api/cart/checkout", ratelim.RateLimit(h.Checkout))
}
