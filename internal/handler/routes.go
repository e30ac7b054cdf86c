package handler

import (
	"quiz-hub/internal/domain"
	"quiz-hub/internal/middleware"
	"quiz-hub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles every HTTP handler the API serves.
type Handlers struct {
	Auth    *AuthHandler
	Tenant  *TenantHandler
	User    *UserHandler
	Quiz    *QuizHandler
	Attempt *AttemptHandler
	Backup  *BackupHandler
	Remote  *RemoteHandler
	Records *RecordsHandler
}

// RegisterRoutes mounts the API under /api plus the /health and /metrics
// endpoints.
func RegisterRoutes(app *fiber.App, h Handlers, authService service.AuthService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	protected := middleware.Protected(authService)
	productAdminOnly := middleware.RequireRole(domain.RoleProductAdmin)
	ids := middleware.ValidateIDParams("id")

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/register", h.Auth.Register)
	auth.Post("/logout", protected, h.Auth.Logout)
	auth.Get("/me", protected, h.Auth.Me)

	tenants := api.Group("/tenants", protected)
	tenants.Get("", h.Tenant.ListTenants)
	tenants.Post("", productAdminOnly, h.Tenant.CreateTenant)
	tenants.Get("/:id", ids, h.Tenant.GetTenant)
	tenants.Put("/:id", ids, h.Tenant.UpdateTenant)
	tenants.Post("/:id/approve", ids, productAdminOnly, h.Tenant.ApproveTenant)
	tenants.Post("/:id/reject", ids, productAdminOnly, h.Tenant.RejectTenant)
	tenants.Delete("/:id", ids, productAdminOnly, h.Tenant.DeleteTenant)

	users := api.Group("/users", protected)
	users.Get("", h.User.ListUsers)
	users.Post("", h.User.CreateUser)
	users.Get("/:id", ids, h.User.GetUser)
	users.Put("/:id", ids, h.User.UpdateUser)
	users.Put("/:id/status", ids, h.User.SetUserStatus)
	users.Delete("/:id", ids, h.User.DeleteUser)

	quizzes := api.Group("/quizzes", protected)
	quizzes.Get("", h.Quiz.ListQuizSets)
	quizzes.Get("/published", h.Quiz.GetPublishedQuizzes)
	quizzes.Post("", h.Quiz.CreateQuizSet)
	quizzes.Get("/:id", ids, h.Quiz.GetQuizSet)
	quizzes.Put("/:id", ids, h.Quiz.UpdateQuizSet)
	quizzes.Post("/:id/publish", ids, h.Quiz.PublishQuiz)
	quizzes.Post("/:id/unpublish", ids, h.Quiz.UnpublishQuiz)
	quizzes.Delete("/:id", ids, h.Quiz.DeleteQuizSet)
	quizzes.Get("/:id/best-score", ids, h.Attempt.BestScore)

	attempts := api.Group("/attempts", protected)
	attempts.Post("", h.Attempt.SubmitAttempt)
	attempts.Get("", h.Attempt.ListResults)
	attempts.Get("/:id", ids, h.Attempt.GetAttemptReview)
	attempts.Delete("/:id", ids, h.Attempt.DeleteResult)

	api.Get("/stats", protected, h.Attempt.Statistics)

	backup := api.Group("/backup", protected, productAdminOnly)
	backup.Get("/export", h.Backup.Export)
	backup.Post("/import", h.Backup.Import)
	backup.Post("/reset", h.Backup.Reset)

	remote := api.Group("/admin/remote", protected, productAdminOnly)
	remote.Get("/config", h.Remote.GetConfig)
	remote.Put("/config", h.Remote.UpdateConfig)
	remote.Post("/test-connection", h.Remote.TestConnection)
	remote.Post("/initialize-schema", h.Remote.InitializeSchema)
	remote.Post("/migrate-data", h.Remote.MigrateData)
	remote.Get("/health", h.Remote.Health)

	records := remote.Group("/records")
	records.Get("/tenants", h.Records.ListTenants)
	records.Post("/tenants", h.Records.CreateTenant)
	records.Delete("/tenants/:id", h.Records.DeleteTenant)
	records.Get("/users", h.Records.ListUsers)
	records.Post("/users", h.Records.CreateUser)
	records.Delete("/users/:id", h.Records.DeleteUser)
	records.Get("/quiz-sets", h.Records.ListQuizSets)
	records.Post("/quiz-sets", h.Records.CreateQuizSet)
	records.Delete("/quiz-sets/:id", h.Records.DeleteQuizSet)
	records.Get("/test-results", h.Records.ListTestResults)
	records.Post("/test-results", h.Records.SaveTestResult)
}
