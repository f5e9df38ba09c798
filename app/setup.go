package app

import (
	"fmt"
	"os"
	"time"

	"github.com/sahilchouksey/edulisting-api/api"
	"github.com/sahilchouksey/edulisting-api/config"
	"github.com/sahilchouksey/edulisting-api/database"
	"github.com/sahilchouksey/edulisting-api/router"
	"github.com/sahilchouksey/edulisting-api/services/cron"
	"github.com/sahilchouksey/edulisting-api/services/otp"
	"github.com/sahilchouksey/edulisting-api/utils/middleware"
	"gorm.io/gorm"
)

const otpTTL = 5 * time.Minute

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	// OTP: in-process code store plus SMS delivery
	otpStore := otp.NewStore(otpTTL)
	otpService := otp.NewService(otpStore, otp.NewGateway(otp.GatewayConfig{
		BaseURL:  getEnv.SMS_BASE_URL,
		APIKey:   getEnv.SMS_API_KEY,
		SenderID: getEnv.SMS_SENDER_ID,
	}))

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		db, ok := store.GetDB().(*gorm.DB)
		if !ok {
			print("Warning: Failed to get database connection for cron jobs\n")
		} else {
			cronManager = cron.NewCronManager(db, otpStore)
			if err := cronManager.Start(); err != nil {
				print("Warning: Failed to start cron jobs\n")
				print("Error: ", err.Error(), "\n")
				// Don't fail the app, just log the warning
			}
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: 300,
		RateLimitWindow:   time.Minute,
	})

	// Setup Routes
	if err := router.SetupRoutes(app, router.Dependencies{
		Store:      store,
		Env:        getEnv,
		OTPService: otpService,
	}); err != nil {
		return err
	}

	// Get the PORT & Start the Server
	return server.Run()
}
