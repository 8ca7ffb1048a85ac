package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/julio-sa/DieTI/config"
	"github.com/julio-sa/DieTI/controllers"
	"github.com/julio-sa/DieTI/middlewares"
	"github.com/julio-sa/DieTI/services"
	"github.com/julio-sa/DieTI/utils"
)

// SetupRouter wires services, controllers and routes. Everything hangs off
// the single db handle passed in; there are no package-level store globals.
func SetupRouter(cfg *config.Config, db *gorm.DB, mailer *utils.Mailer) *gin.Engine {
	intakeSvc := services.NewIntakeService(db)
	searchSvc := services.NewSearchService(db)
	catalogSvc := services.NewCatalogService(db)
	recipeSvc := services.NewRecipeService(db)
	rolloverSvc := services.NewRolloverService(db, intakeSvc)

	var resetMailer services.ResetMailer
	if mailer != nil {
		resetMailer = mailer
	}
	authSvc := services.NewAuthService(db, cfg.JWTSecret, resetMailer)

	search := controllers.NewSearchController(searchSvc)
	catalog := controllers.NewCatalogController(catalogSvc)
	food := controllers.NewFoodController(intakeSvc)
	intake := controllers.NewIntakeController(intakeSvc)
	recipes := controllers.NewRecipeController(recipeSvc)
	cron := controllers.NewCronController(rolloverSvc)
	auth := controllers.NewAuthController(authSvc)
	user := controllers.NewUserController(authSvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "name": "DieTI TACO API"})
	})

	r.GET("/search/combined", search.Combined)
	r.GET("/taco_table/:food_id", catalog.FoodByCode)

	foodGroup := r.Group("/food")
	{
		foodGroup.POST("/add", food.Add)
		foodGroup.PUT("/update/:food_id", food.Update)
		foodGroup.DELETE("/delete/:food_id", food.Delete)
		foodGroup.GET("/daily", food.Daily)
		foodGroup.GET("/history/:date", food.History)
	}

	intakeGroup := r.Group("/intake")
	{
		intakeGroup.GET("/today", intake.Today)
		intakeGroup.POST("/add", intake.Add)
		intakeGroup.GET("/history", intake.History)
	}

	recipeGroup := r.Group("/recipes")
	{
		recipeGroup.POST("/save", recipes.Save)
		recipeGroup.GET("/list", recipes.List)
		recipeGroup.PUT("/update/:recipe_id", recipes.Update)
		recipeGroup.DELETE("/delete/:recipe_id", recipes.Delete)
	}

	r.POST("/cron/rollover", cron.RolloverDailyFood)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/sign-up", auth.SignUp)
		authGroup.POST("/sign-in", auth.SignIn)
		authGroup.POST("/validate-credentials", auth.ValidateCredentials)
		authGroup.POST("/forgot-password", auth.ForgotPassword)
		authGroup.POST("/reset-password", auth.ResetPassword)
	}

	userGroup := r.Group("/user")
	userGroup.Use(middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		userGroup.GET("/profile", user.GetProfile)
		userGroup.PUT("/profile", user.UpdateProfile)
	}

	return r
}
