package main

import (
	"context"
	"fmt"
	common_api "go-payroll/internal/common/api"
	"go-payroll/internal/config"
	"go-payroll/internal/database"
	"go-payroll/internal/features/audit"
	"go-payroll/internal/features/datasource"
	"go-payroll/internal/features/report"
	"go-payroll/internal/features/schedule"
	"go-payroll/internal/features/settings"
	"go-payroll/internal/features/system"
	"go-payroll/internal/features/template"
	"go-payroll/internal/logger"
	"go-payroll/internal/middleware"
	"go-payroll/pkg/utils"
	"log"
	"time"

	_ "go-payroll/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Use custom CORS middleware
	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for i, route := range routes {
		log.Printf("Setting up route %d: %T\n", i+1, route)
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
// StartServer now needs Config to know which port to listen on
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(lc fx.Lifecycle, templateRepo template.TemplateRepository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				// Use a background context with timeout for index creation
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				// Only the Mongo store manages its own indexes
				if mongoRepo, ok := templateRepo.(*template.MongoTemplateRepository); ok {
					if err := mongoRepo.EnsureIndexes(ctx); err != nil {
						log.Printf("Failed to ensure template indexes: %v", err)
					}
				}
			}()
			return nil
		},
	})
}

// @title           Payroll Reports API
// @version         1.0
// @description     Report template engine for payroll and workforce data
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.email   support@swagger.io

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			audit.NewAuditRepository,
			template.NewTemplateRepository,
			settings.NewSettingsRepository,
			schedule.NewScheduleRepository,

			audit.NewAuditService,
			template.NewTemplateService,
			settings.NewSettingsService,
			datasource.NewDataSourceService,
			report.NewHTMLRenderer,
			report.NewReportService,
			schedule.NewScheduleService,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(s datasource.DataSourceService) report.RowResolver { return s },

			// Initialize Controller
			template.NewTemplateController,
			report.NewReportController,
			settings.NewSettingsController,
			audit.NewAuditController,
			schedule.NewScheduleController,
			system.NewDebugController,

			// Initialize API Routes
			AsRoute(template.NewTemplateApi),
			AsRoute(report.NewReportApi),
			AsRoute(settings.NewSettingsApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(schedule.NewScheduleApi),
			AsRoute(system.NewDebugApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, scheduleService schedule.ScheduleService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return scheduleService.InitializeScheduler(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return scheduleService.StopScheduler()
					},
				})
			},
			InitializeIndexes,
		),
	)

	app.Run()
}
