package router

import (
	"time"

	"lottopos/internal/config"
	"lottopos/internal/handler"
	"lottopos/internal/middleware"
	"lottopos/internal/model"
	"lottopos/internal/repository"
	"lottopos/internal/service"
	"lottopos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)
	bookRepo := repository.NewBookRepository(db)
	salesRepo := repository.NewSalesEntryRepository(db)
	shiftRepo := repository.NewShiftRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	gameSvc := service.NewGameService(gameRepo, bookRepo, rdb)
	bookSvc := service.NewBookService(bookRepo, gameRepo)
	salesSvc := service.NewSalesEntryService(bookRepo, gameRepo, salesRepo)
	shiftSvc := service.NewShiftService(shiftRepo, salesRepo, bookRepo, salesSvc)
	reportSvc := service.NewReportService(shiftRepo, salesRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	gamesH := handler.NewGamesHandler(gameSvc)
	booksH := handler.NewBooksHandler(bookSvc, salesSvc)
	shiftsH := handler.NewShiftsHandler(shiftSvc)
	reportsH := handler.NewReportsHandler(reportSvc, dispatcher)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required, used by the counter scanner
	r.GET("/v1/price/:number", gamesH.PriceCheck)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleEmployee)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		// Shifts — every operator settles shifts; full book sale is admin only
		v1.POST("/shifts", anyRole, shiftsH.Submit)
		v1.GET("/shifts/:id", anyRole, shiftsH.Get)
		v1.POST("/shifts/full-book-sale", adminOnly, shiftsH.FullBookSale)

		// Books — reads and scan for everyone, lifecycle writes admin only
		v1.GET("/books", anyRole, booksH.List)
		v1.GET("/books/:id", anyRole, booksH.Get)
		v1.POST("/books/scan", anyRole, booksH.Scan)
		books := v1.Group("/books", adminOnly)
		{
			books.POST("", booksH.Add)
			books.PUT("/:id", booksH.Edit)
			books.DELETE("/:id", booksH.Delete)
			books.PATCH("/:id/activate", booksH.Activate)
			books.PATCH("/:id/deactivate", booksH.Deactivate)
		}

		// Games — catalogue reads for everyone, writes admin only
		v1.GET("/games", anyRole, gamesH.List)
		v1.GET("/games/:id", anyRole, gamesH.Get)
		games := v1.Group("/games", adminOnly)
		{
			games.POST("", gamesH.Create)
			games.PUT("/:id", gamesH.Update)
			games.PATCH("/:id/expire", gamesH.Expire)
			games.PATCH("/:id/reactivate", gamesH.Reactivate)
		}

		// Reports — admin only
		reports := v1.Group("/reports", adminOnly)
		{
			reports.GET("/shifts", reportsH.Shifts)
			reports.GET("/sales", reportsH.Sales)
			reports.POST("/email", reportsH.Email)
		}

		// Users — admin only
		users := v1.Group("/users", adminOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
