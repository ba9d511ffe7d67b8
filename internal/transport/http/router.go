package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/handlers"
	"github.com/Skotchmaster/storefront/internal/jwtmiddleware"
)

type Deps struct {
	JWTSecret      []byte
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	api.POST("/token", d.AuthHandler.Token)
	api.POST("/register", d.AuthHandler.Register)

	// the catalog is only served to logged-in customers
	catalog := api.Group("", jwtmiddleware.RequireAuth(d.JWTSecret))
	catalog.GET("/products", d.ProductHandler.GetProducts)
	catalog.GET("/products/:id", d.ProductHandler.GetProduct)
	catalog.GET("/categories", d.ProductHandler.GetCategories)

	if d.SearchHandler != nil {
		catalog.GET("/search", d.SearchHandler.Search)
	}

	orders := api.Group("/orders", jwtmiddleware.RequireAuth(d.JWTSecret))
	orders.POST("", d.OrderHandler.CreateOrder)

	admin := api.Group("/admin", jwtmiddleware.RequireAdmin(d.JWTSecret))
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
}
