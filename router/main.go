package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/config"
	"github.com/sahilchouksey/edulisting-api/database"
	"github.com/sahilchouksey/edulisting-api/handlers"
	approvalhandler "github.com/sahilchouksey/edulisting-api/handlers/approval"
	authhandler "github.com/sahilchouksey/edulisting-api/handlers/auth"
	categoryhandler "github.com/sahilchouksey/edulisting-api/handlers/category"
	chathandler "github.com/sahilchouksey/edulisting-api/handlers/chat"
	coursehandler "github.com/sahilchouksey/edulisting-api/handlers/course"
	jobhandler "github.com/sahilchouksey/edulisting-api/handlers/job"
	leadhandler "github.com/sahilchouksey/edulisting-api/handlers/lead"
	otphandler "github.com/sahilchouksey/edulisting-api/handlers/otp"
	programhandler "github.com/sahilchouksey/edulisting-api/handlers/program"
	reviewhandler "github.com/sahilchouksey/edulisting-api/handlers/review"
	sitemaphandler "github.com/sahilchouksey/edulisting-api/handlers/sitemap"
	specialisationhandler "github.com/sahilchouksey/edulisting-api/handlers/specialisation"
	universityhandler "github.com/sahilchouksey/edulisting-api/handlers/university"
	"github.com/sahilchouksey/edulisting-api/services/geoip"
	"github.com/sahilchouksey/edulisting-api/services/otp"
	"github.com/sahilchouksey/edulisting-api/services/storage"
	"github.com/sahilchouksey/edulisting-api/utils/auth"
	"github.com/sahilchouksey/edulisting-api/utils/cache"
	"github.com/sahilchouksey/edulisting-api/utils/middleware"
	"gorm.io/gorm"
)

// Dependencies carries the shared services handlers are built from.
type Dependencies struct {
	Store      database.Storage
	Env        *config.EnviornmentVariable
	OTPService *otp.Service
}

// SetupRoutes registers every route on the app.
func SetupRoutes(app *fiber.App, deps Dependencies) error {
	db, ok := deps.Store.GetDB().(*gorm.DB)
	if !ok {
		return fiber.NewError(fiber.StatusInternalServerError, "unsupported database store")
	}
	env := deps.Env

	files, err := buildFileStore(env)
	if err != nil {
		return err
	}

	// Local uploads are served straight off disk
	if env.STORAGE_DRIVER == "local" {
		app.Static("/uploads", env.UPLOAD_DIR)
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: env.JWT_SECRET,
		Expiry: 24 * time.Hour,
		Issuer: env.JWT_ISSUER,
	})
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	geoClient := geoip.NewClient(env.GEOIP_BASE_URL)

	// Redis backs only OTP send throttling; without it sends are unthrottled.
	var otpThrottle fiber.Handler
	if env.REDIS_URL != "" {
		redisCache, err := cache.NewRedisCache(env.REDIS_URL)
		if err != nil {
			log.Printf("redis unavailable, otp throttling disabled: %v", err)
		} else {
			otpThrottle = middleware.NewOTPThrottle(redisCache).Limit(3, 10*time.Minute)
		}
	}
	if otpThrottle == nil {
		otpThrottle = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Handlers
	healthHandler := handlers.NewHealthHandler(deps.Store)
	cronLogHandler := handlers.NewCronLogHandler(db)
	authHandler := authhandler.NewAuthHandler(db, jwtManager)
	universityHandler := universityhandler.NewUniversityHandler(db, files)
	courseHandler := coursehandler.NewCourseHandler(db, files)
	specialisationHandler := specialisationhandler.NewSpecialisationHandler(db, files)
	programHandler := programhandler.NewProgramHandler(db, files)
	specialisationProgramHandler := programhandler.NewSpecialisationProgramHandler(db)
	categoryHandler := categoryhandler.NewCategoryHandler(db, files)
	approvalHandler := approvalhandler.NewApprovalHandler(db, files)
	placementHandler := approvalhandler.NewPlacementHandler(db, files)
	leadHandler := leadhandler.NewLeadHandler(db, geoClient, deps.OTPService)
	chatHandler := chathandler.NewChatHandler(db, geoClient)
	jobHandler := jobhandler.NewJobHandler(db)
	reviewHandler := reviewhandler.NewReviewHandler(db)
	otpHandler := otphandler.NewOTPHandler(deps.OTPService)
	sitemapHandler := sitemaphandler.NewSitemapHandler(db)

	app.Get("/health", healthHandler.Check)

	v1 := app.Group("/api/v1")

	// Auth
	authGroup := v1.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", authMiddleware.Required(), authHandler.Profile)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)

	admin := authMiddleware.RequireAdmin()

	// Universities
	universities := v1.Group("/universities")
	universities.Get("/", universityHandler.ListUniversities)
	universities.Get("/slug/:slug", universityHandler.GetUniversityBySlug)
	universities.Get("/filter/approval/:id", universityHandler.FilterByApproval)
	universities.Get("/filter/placement/:id", universityHandler.FilterByPlacement)
	universities.Get("/:id", universityHandler.GetUniversity)
	universities.Post("/", admin, universityHandler.CreateUniversity)
	universities.Post("/update", admin, universityHandler.UpdateUniversity)
	universities.Delete("/:id", admin, universityHandler.ToggleUniversity)

	// Courses
	courses := v1.Group("/courses")
	courses.Get("/", courseHandler.ListCourses)
	courses.Get("/slug/:slug", courseHandler.GetCourseBySlug)
	courses.Get("/filter/university/:id", courseHandler.FilterByUniversity)
	courses.Get("/filter/category/:id", courseHandler.FilterByCategory)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Post("/", admin, courseHandler.CreateCourse)
	courses.Post("/update", admin, courseHandler.UpdateCourse)
	courses.Delete("/:id", admin, courseHandler.ToggleCourse)

	// Specialisations
	specialisations := v1.Group("/specialisations")
	specialisations.Get("/", specialisationHandler.ListSpecialisations)
	specialisations.Get("/slug/:slug", specialisationHandler.GetSpecialisationBySlug)
	specialisations.Get("/filter/course/:id", specialisationHandler.FilterByCourse)
	specialisations.Get("/filter/university/:id", specialisationHandler.FilterByUniversity)
	specialisations.Get("/:id", specialisationHandler.GetSpecialisation)
	specialisations.Post("/", admin, specialisationHandler.CreateSpecialisation)
	specialisations.Post("/update", admin, specialisationHandler.UpdateSpecialisation)
	specialisations.Delete("/:id", admin, specialisationHandler.ToggleSpecialisation)

	// Programs
	programs := v1.Group("/programs")
	programs.Get("/", programHandler.ListPrograms)
	programs.Get("/slug/:slug", programHandler.GetProgramBySlug)
	programs.Get("/filter/university/:id", programHandler.FilterByUniversity)
	programs.Get("/:id", programHandler.GetProgram)
	programs.Post("/", admin, programHandler.CreateProgram)
	programs.Post("/update", admin, programHandler.UpdateProgram)
	programs.Delete("/:id", admin, programHandler.ToggleProgram)

	// Specialisation programs
	specialisationPrograms := v1.Group("/specialisation-programs")
	specialisationPrograms.Get("/", specialisationProgramHandler.ListSpecialisationPrograms)
	specialisationPrograms.Get("/slug/:slug", specialisationProgramHandler.GetSpecialisationProgramBySlug)
	specialisationPrograms.Post("/", admin, specialisationProgramHandler.CreateSpecialisationProgram)
	specialisationPrograms.Post("/update", admin, specialisationProgramHandler.UpdateSpecialisationProgram)
	specialisationPrograms.Delete("/:id", admin, specialisationProgramHandler.ToggleSpecialisationProgram)

	// Categories
	categories := v1.Group("/categories")
	categories.Get("/", categoryHandler.ListCategories)
	categories.Get("/slug/:slug", categoryHandler.GetCategoryBySlug)
	categories.Post("/", admin, categoryHandler.CreateCategory)
	categories.Post("/update", admin, categoryHandler.UpdateCategory)
	categories.Delete("/:id", admin, categoryHandler.ToggleCategory)

	// Approvals and placement partners
	approvals := v1.Group("/approvals")
	approvals.Get("/", approvalHandler.ListApprovals)
	approvals.Post("/", admin, approvalHandler.CreateApproval)
	approvals.Post("/update", admin, approvalHandler.UpdateApproval)
	approvals.Delete("/:id", admin, approvalHandler.ToggleApproval)

	placements := v1.Group("/placements")
	placements.Get("/", placementHandler.ListPlacements)
	placements.Post("/", admin, placementHandler.CreatePlacement)
	placements.Post("/update", admin, placementHandler.UpdatePlacement)
	placements.Delete("/:id", admin, placementHandler.TogglePlacement)

	// Leads (public submit/verify, admin list/delete)
	leads := v1.Group("/leads")
	leads.Post("/", otpThrottle, leadHandler.CreateLead)
	leads.Post("/verify", leadHandler.VerifyLead)
	leads.Get("/", admin, leadHandler.ListLeads)
	leads.Delete("/:id", admin, leadHandler.DeleteLead)

	// Chat widget
	chat := v1.Group("/chat")
	chat.Post("/", chatHandler.CreateMessage)
	chat.Get("/", admin, chatHandler.ListMessages)
	chat.Delete("/:id", admin, chatHandler.DeleteMessage)

	// Jobs
	jobs := v1.Group("/jobs")
	jobs.Get("/", jobHandler.ListJobs)
	jobs.Get("/slug/:slug", jobHandler.GetJobBySlug)
	jobs.Post("/", admin, jobHandler.CreateJob)
	jobs.Post("/update", admin, jobHandler.UpdateJob)
	jobs.Delete("/:id", admin, jobHandler.ToggleJob)

	// Reviews
	reviews := v1.Group("/reviews")
	reviews.Get("/", reviewHandler.ListReviews)
	reviews.Post("/", reviewHandler.CreateReview)
	reviews.Delete("/:id", admin, reviewHandler.ToggleReview)

	// OTP
	otpGroup := v1.Group("/otp")
	otpGroup.Post("/send", otpThrottle, otpHandler.SendOTP)
	otpGroup.Post("/verify", otpHandler.VerifyOTP)

	// Sitemap
	v1.Get("/sitemap", sitemapHandler.GetSitemap)

	// Background job logs
	v1.Get("/cron-logs", admin, cronLogHandler.ListCronLogs)

	return nil
}

func buildFileStore(env *config.EnviornmentVariable) (storage.Store, error) {
	if env.STORAGE_DRIVER == "spaces" {
		return storage.NewSpacesStore(storage.SpacesConfig{
			AccessKey: env.SPACES_ACCESS_KEY,
			SecretKey: env.SPACES_SECRET_KEY,
			Bucket:    env.SPACES_BUCKET,
			Region:    env.SPACES_REGION,
			Endpoint:  env.SPACES_ENDPOINT,
			CDNURL:    env.SPACES_CDN_URL,
		})
	}
	return storage.NewLocalStore(env.UPLOAD_DIR, env.UPLOAD_BASE_URL)
}
