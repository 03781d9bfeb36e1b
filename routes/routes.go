package routes

import (
	"chef-marketplace-api/handlers"
	"chef-marketplace-api/middleware"
	"chef-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	r.GET("/", handlers.Welcome)
	r.GET("/health", handlers.Health)
	r.GET("/state-machine", handlers.GetStateMachineInfo)
	r.POST("/jwt", handlers.IssueToken)

	// Meals
	r.GET("/meals", handlers.ListMeals)
	r.POST("/meals", handlers.CreateMeal)
	r.GET("/meals/six", handlers.FeaturedMeals)
	r.GET("/meals/chef/:email", handlers.ChefMeals)
	r.GET("/meal-details/:id", handlers.GetMeal)
	r.PATCH("/meals/:id", handlers.UpdateMeal)
	r.DELETE("/meals/:id", handlers.DeleteMeal)

	// Users
	r.GET("/user/:email", handlers.GetUser)
	r.POST("/users", handlers.CreateUser)

	// Reviews
	r.GET("/reviews", handlers.ListReviews)
	r.GET("/reviews/:mealId", handlers.MealReviews)
	r.POST("/reviews", handlers.CreateReview)
	r.PATCH("/reviews/:id", handlers.UpdateReview)
	r.DELETE("/reviews/:id", handlers.DeleteReview)

	// Favorites
	r.POST("/favorites", handlers.AddFavorite)
	r.GET("/favorites/:email", handlers.UserFavorites)
	r.DELETE("/favorites/:id", handlers.DeleteFavorite)

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		auth.POST("/role-requests", handlers.SubmitRoleRequest)

		auth.POST("/orders", handlers.PlaceOrder)
		auth.GET("/orders/:email", handlers.GetCustomerOrders)
		auth.GET("/orders/chef/:chefId", handlers.GetChefOrders)
		auth.PATCH("/orders/:id", handlers.UpdateOrderStatus)

		auth.POST("/create-payment-intent", handlers.CreatePaymentIntent)
		auth.POST("/payments", handlers.RecordPayment)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/role-requests", handlers.ListRoleRequests)
		admin.PATCH("/role-requests/:id", handlers.ResolveRoleRequest)
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.PATCH("/users/fraud/:id", handlers.AdminMarkFraud)
		admin.GET("/admin-stats", handlers.AdminStats)
	}
}
