package handler

import (
	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/http/middleware"
	"reviewapi/internal/model"
	"reviewapi/internal/service"
)

// Dependencies groups what the HTTP layer needs from the rest of the application.
type Dependencies struct {
	// Probes back GET /health; all of them must pass.
	Probes      []Probe
	Auth        service.AuthService
	Consumers   service.ConsumerService
	Retailers   service.RetailerService
	Products    service.ProductService
	Reviews     service.ReviewService
	Collections service.CollectionService
	Files       service.FileService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: binding and validation here, business rules in services.
func RegisterRoutes(app *fiber.App, d Dependencies) {
	app.Get("/health", HealthCheck(d.Probes...))
	app.Get("/healthz", LivenessProbe())
	app.Get(service.UploadsPrefix+"*", ServeUpload(d.Files))

	authed := middleware.Authorize(d.Auth)
	admin := middleware.RequireRole(model.RoleAdmin)
	retailerOrAdmin := middleware.RequireRole(model.RoleRetailer, model.RoleAdmin)
	consumerOrAdmin := middleware.RequireRole(model.RoleConsumer, model.RoleAdmin)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", Login(d.Auth))
	auth.Post("/register/consumer", RegisterConsumer(d.Auth))
	auth.Post("/register/retailer", RegisterRetailer(d.Auth))
	auth.Post("/logout", authed, Logout(d.Auth))
	auth.Get("/current-user", authed, CurrentUser(d.Auth))

	adm := api.Group("/admin", authed, admin)
	adm.Post("/consumers", CreateConsumer(d.Consumers))
	adm.Get("/consumers", ListConsumers(d.Consumers))
	adm.Get("/paginated_consumers", PaginatedConsumers(d.Consumers))
	adm.Get("/consumers/username/:username", GetConsumerByUsername(d.Consumers))
	adm.Get("/consumers/auth/:authId", GetConsumerByAuthID(d.Consumers))
	adm.Put("/consumers/auth/:id/profile-picture", UpdateConsumerProfilePicture(d.Consumers))
	adm.Get("/consumers/:id", GetConsumer(d.Consumers))
	adm.Put("/consumers/:id", UpdateConsumer(d.Consumers))
	adm.Delete("/consumers/:id", DeleteConsumer(d.Consumers))

	adm.Post("/retailers", CreateRetailer(d.Retailers))
	adm.Get("/retailers", ListRetailers(d.Retailers))
	adm.Get("/paginated_retailers", PaginatedRetailers(d.Retailers))
	adm.Get("/retailers/username/:username", GetRetailerByUsername(d.Retailers))
	adm.Get("/retailers/auth/:authId", GetRetailerByAuthID(d.Retailers))
	adm.Put("/retailers/auth/:id/profile-picture", UpdateRetailerProfilePicture(d.Retailers))
	adm.Get("/retailers/:id", GetRetailer(d.Retailers))
	adm.Put("/retailers/:id", UpdateRetailer(d.Retailers))
	adm.Delete("/retailers/:id", DeleteRetailer(d.Retailers))

	consumers := api.Group("/consumers", authed)
	consumers.Post("/", CreateConsumer(d.Consumers))
	consumers.Get("/", ListConsumers(d.Consumers))
	consumers.Get("/username/:username", GetConsumerByUsername(d.Consumers))
	consumers.Get("/auth/:authId", GetConsumerByAuthID(d.Consumers))
	consumers.Put("/auth/:id/profile-picture", UpdateConsumerProfilePicture(d.Consumers))
	consumers.Get("/:id", GetConsumer(d.Consumers))
	consumers.Put("/:id", UpdateConsumer(d.Consumers))
	consumers.Delete("/:id", DeleteConsumer(d.Consumers))

	retailers := api.Group("/retailers", authed, retailerOrAdmin)
	retailers.Get("/username/:username", GetRetailerByUsername(d.Retailers))
	retailers.Get("/auth/:authId", GetRetailerByAuthID(d.Retailers))
	retailers.Put("/auth/:id/profile-picture", UpdateRetailerProfilePicture(d.Retailers))
	retailers.Get("/:id", GetRetailer(d.Retailers))
	retailers.Put("/:id", UpdateRetailer(d.Retailers))
	retailers.Delete("/:id", admin, DeleteRetailer(d.Retailers))

	// Public reads share the group with guarded writes, so guards are per route.
	products := api.Group("/products")
	products.Get("/", ListProducts(d.Products))
	products.Get("/isLiked", IsProductLiked(d.Products))
	products.Get("/author/:authorId", ListProductsByRetailer(d.Products))
	products.Post("/like", authed, LikeProduct(d.Products))
	products.Post("/unlike", authed, UnlikeProduct(d.Products))
	products.Post("/", authed, retailerOrAdmin, CreateProduct(d.Products))
	products.Get("/:id", GetProduct(d.Products))
	products.Put("/:id", authed, retailerOrAdmin, UpdateProduct(d.Products))
	products.Delete("/:id", authed, retailerOrAdmin, DeleteProduct(d.Products))
	products.Post("/:id/image", authed, retailerOrAdmin, UploadProductImage(d.Products))

	reviews := api.Group("/reviews")
	reviews.Get("/paginated", ListReviews(d.Reviews))
	reviews.Get("/author/:authorId", ListReviewsByAuthor(d.Reviews))
	reviews.Post("/", authed, CreateReview(d.Reviews))
	reviews.Get("/:id", GetReview(d.Reviews))
	reviews.Put("/:id", authed, UpdateReview(d.Reviews))
	reviews.Delete("/:id", authed, DeleteReview(d.Reviews))
	reviews.Post("/:id/image", authed, UploadReviewImage(d.Reviews))
	reviews.Post("/:id/like", authed, LikeReview(d.Reviews))
	reviews.Post("/:id/unlike", authed, UnlikeReview(d.Reviews))
	reviews.Get("/:id/islikedby/:userId", IsReviewLikedBy(d.Reviews))

	api.Get("/uploads/presign", authed, PresignUpload(d.Files))

	collections := api.Group("/collections", authed, consumerOrAdmin)
	collections.Post("/review/save", SaveReview(d.Collections))
	collections.Post("/review/unsave", UnsaveReview(d.Collections))
	collections.Post("/product/save", SaveProduct(d.Collections))
	collections.Post("/product/unsave", UnsaveProduct(d.Collections))
	collections.Get("/:consumerAuthId/reviews", SavedReviews(d.Collections))
	collections.Get("/:consumerAuthId/products", SavedProducts(d.Collections))
}
