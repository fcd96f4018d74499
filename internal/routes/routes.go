package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/scholarstream/internal/config"
	"github.com/example/scholarstream/internal/handlers"
	"github.com/example/scholarstream/internal/middleware"
	"github.com/example/scholarstream/internal/models"
	"github.com/example/scholarstream/internal/services"
	"github.com/example/scholarstream/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *mongo.Database, cfg *config.Config, verifier middleware.TokenVerifier, checkout services.CheckoutProvider) {
	users := store.NewUserRepo(db)
	scholarships := store.NewScholarshipRepo(db)
	applications := store.NewApplicationRepo(db)
	reviews := store.NewReviewRepo(db)
	payments := store.NewPaymentRepo(db)
	stories := store.NewStoryRepo(db)

	paymentService := services.NewPaymentService(checkout, applications, payments, cfg.SiteDomain)

	userHandler := handlers.NewUserHandler(users)
	scholarshipHandler := handlers.NewScholarshipHandler(scholarships)
	applicationHandler := handlers.NewApplicationHandler(applications)
	reviewHandler := handlers.NewReviewHandler(reviews)
	analyticsHandler := handlers.NewAnalyticsHandler(users, scholarships, applications)
	paymentHandler := handlers.NewPaymentHandler(paymentService, payments)
	storyHandler := handlers.NewStoryHandler(stories)

	authed := middleware.Authenticate(verifier)
	adminOnly := middleware.RequireRole(users, models.RoleAdmin)
	moderatorOnly := middleware.RequireRole(users, models.RoleModerator)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ScholarStream server")
	})

	// User routes
	app.Get("/users", authed, userHandler.List)
	app.Get("/admin-users", authed, userHandler.AdminList)
	app.Get("/users/:email/role", userHandler.Role)
	app.Post("/users", userHandler.Create)
	app.Patch("/users/:id", authed, adminOnly, userHandler.SetRole)
	app.Delete("/admin-user/:id", authed, adminOnly, userHandler.Delete)

	// Scholarship routes
	app.Get("/scholarships", scholarshipHandler.List)
	app.Get("/scholarship-home", scholarshipHandler.Home)
	app.Get("/selected-scholarships/:id", scholarshipHandler.Get)
	app.Get("/search-scholarships", scholarshipHandler.Search)
	app.Post("/scholarships", authed, adminOnly, scholarshipHandler.Create)
	app.Patch("/scholarships/:id", authed, adminOnly, scholarshipHandler.Update)
	app.Delete("/scholarships/:id", authed, adminOnly, scholarshipHandler.Delete)

	// Application routes
	app.Get("/applications", authed, applicationHandler.List)
	app.Post("/applications", applicationHandler.Create)
	app.Patch("/application/:id", authed, moderatorOnly, applicationHandler.SetFeedback)
	app.Patch("/application/application-status/:id", authed, moderatorOnly, applicationHandler.SetStatus)
	app.Delete("/application/:id", authed, applicationHandler.Delete)

	// Review routes
	app.Get("/review/:scholarshipId", reviewHandler.ByScholarship)
	app.Get("/my-review", reviewHandler.Mine)
	app.Post("/review", authed, reviewHandler.Create)
	app.Patch("/review/:id", authed, reviewHandler.Update)
	app.Delete("/review/:id", authed, reviewHandler.Delete)

	// Admin analytics
	app.Get("/analytics/users", authed, adminOnly, analyticsHandler.Users)
	app.Get("/analytics/scholarships", authed, adminOnly, analyticsHandler.Scholarships)
	app.Get("/analytics/application-fees", authed, adminOnly, analyticsHandler.ApplicationFees)
	app.Get("/analytics/application/university", authed, adminOnly, analyticsHandler.ByUniversity)
	app.Get("/analytics/application/scholarship", authed, adminOnly, analyticsHandler.ByScholarship)

	// Payment routes. Confirmation endpoints are unauthenticated: the
	// session identifier from the provider redirect is the only credential.
	app.Post("/create-checkout-session", paymentHandler.CreateCheckout)
	app.Patch("/payment-success", paymentHandler.Success)
	app.Patch("/payment-cancelled", paymentHandler.Cancelled)
	app.Get("/payment-success/:transactionId", paymentHandler.GetByTransaction)

	// Success stories
	app.Get("/story", storyHandler.List)
}
