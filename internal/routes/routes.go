package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vet-backoffice/internal/audit"
	"github.com/BruksfildServices01/vet-backoffice/internal/config"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/customer"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/dashboard"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/image"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/ownership"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/pet"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/treatment"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/user"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/visit"
	"github.com/BruksfildServices01/vet-backoffice/internal/handlers"
	"github.com/BruksfildServices01/vet-backoffice/internal/middleware"
	"github.com/BruksfildServices01/vet-backoffice/internal/session"
	"github.com/BruksfildServices01/vet-backoffice/internal/storage"
	"github.com/BruksfildServices01/vet-backoffice/internal/timezone"
	ucAuth "github.com/BruksfildServices01/vet-backoffice/internal/usecase/auth"
	ucCustomer "github.com/BruksfildServices01/vet-backoffice/internal/usecase/customer"
	ucDashboard "github.com/BruksfildServices01/vet-backoffice/internal/usecase/dashboard"
	ucImage "github.com/BruksfildServices01/vet-backoffice/internal/usecase/image"
	ucPet "github.com/BruksfildServices01/vet-backoffice/internal/usecase/pet"
	ucTreatment "github.com/BruksfildServices01/vet-backoffice/internal/usecase/treatment"
	ucVisit "github.com/BruksfildServices01/vet-backoffice/internal/usecase/visit"
)

// Repositories is one storage backend: gorm/postgres or the memory store.
type Repositories struct {
	Ownership  ownership.Repository
	Users      user.Repository
	Customers  customer.Repository
	Pets       pet.Repository
	Treatments treatment.Repository
	Visits     visit.Repository
	Images     image.Repository
	Dashboard  dashboard.Repository
}

type Deps struct {
	Config    *config.Config
	Repos     Repositories
	Objects   storage.ObjectStore
	Sessions  *session.Manager
	Audit     *audit.Dispatcher
	AuditLogs handlers.AuditLogLister

	// StatsCache is nil when Redis is not configured.
	StatsCache dashboard.Cache
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	loc := timezone.Location(cfg.ClinicTimezone)

	// ======================================================
	// USE CASES
	// ======================================================
	chain := ownership.NewChain(d.Repos.Ownership)

	authUC := ucAuth.NewService(d.Repos.Users, d.Sessions, d.Audit, cfg.EmailDomainCheck)
	customerUC := ucCustomer.NewService(chain, d.Repos.Customers, d.Repos.Pets, d.Audit)
	petUC := ucPet.NewService(chain, d.Repos.Pets, d.Audit)
	treatmentUC := ucTreatment.NewService(d.Repos.Treatments, d.Audit)

	createVisitUC := ucVisit.NewCreateVisit(chain, d.Repos.Visits, d.Repos.Treatments, d.Audit)
	completeVisitUC := ucVisit.NewCompleteVisit(chain, d.Repos.Visits, d.Audit)
	cancelVisitUC := ucVisit.NewCancelVisit(chain, d.Repos.Visits, d.Audit)
	listVisitsUC := ucVisit.NewListVisits(chain, d.Repos.Visits)
	visitUC := ucVisit.NewService(chain, d.Repos.Visits, d.Repos.Treatments, d.Audit)

	imageUC := ucImage.NewService(chain, d.Repos.Images, d.Objects, d.Audit, ucImage.Options{
		MaxBytes:     cfg.UploadMaxBytes,
		ProbeEnabled: cfg.ImageProbeEnabled,
		ProbeBytes:   cfg.ImageProbeBytes,
	})

	dashboardUC := ucDashboard.NewService(d.Repos.Dashboard, d.StatsCache, cfg.ClinicTimezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(authUC, d.Sessions)
	customerHandler := handlers.NewCustomerHandler(customerUC)
	petHandler := handlers.NewPetHandler(petUC, imageUC)
	treatmentHandler := handlers.NewTreatmentHandler(treatmentUC)
	visitHandler := handlers.NewVisitHandler(
		createVisitUC,
		completeVisitUC,
		cancelVisitUC,
		listVisitsUC,
		visitUC,
		imageUC,
		loc,
	)
	imageHandler := handlers.NewImageHandler(imageUC)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, loc)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Sessions))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", authHandler.Me)

			secured.GET("/dashboard/stats", dashboardHandler.Stats)
			secured.GET("/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// CATALOG
			// ------------------------------
			secured.GET("/treatments", treatmentHandler.List)
			secured.POST("/treatments", treatmentHandler.Create)
			secured.PATCH("/treatments/:treatmentId", treatmentHandler.Update)
			secured.DELETE("/treatments/:treatmentId", treatmentHandler.Delete)

			secured.GET("/pets", petHandler.Search)
			secured.GET("/visits", visitHandler.ListAll)

			// ------------------------------
			// CUSTOMERS
			// ------------------------------
			secured.GET("/customers", customerHandler.List)
			secured.POST("/customers", customerHandler.Create)

			customerGroup := secured.Group("/customers/:customerId")
			{
				customerGroup.GET("", customerHandler.Get)
				customerGroup.PATCH("", customerHandler.Update)
				customerGroup.DELETE("", customerHandler.Delete)

				customerGroup.GET("/pets", petHandler.List)
				customerGroup.POST("/pets", petHandler.Create)
			}

			// ------------------------------
			// PETS
			// ------------------------------
			petGroup := customerGroup.Group("/pets/:petId")
			{
				petGroup.GET("", petHandler.Get)
				petGroup.PATCH("", petHandler.Update)
				petGroup.DELETE("", petHandler.Delete)

				petGroup.POST("/images/upload-url", imageHandler.UploadURL)
				petGroup.POST("/images", imageHandler.Register)
				petGroup.GET("/images", imageHandler.List)
				petGroup.DELETE("/images/:imageId", imageHandler.Delete)

				petGroup.GET("/visits", visitHandler.ListByPet)
				petGroup.POST("/visits", visitHandler.Create)
			}

			// ------------------------------
			// VISITS
			// ------------------------------
			visitGroup := petGroup.Group("/visits/:visitId")
			{
				visitGroup.GET("", visitHandler.Get)
				visitGroup.PATCH("", visitHandler.Update)
				visitGroup.DELETE("", visitHandler.Delete)
				visitGroup.POST("/complete", visitHandler.Complete)
				visitGroup.POST("/cancel", visitHandler.Cancel)

				visitGroup.GET("/treatments", visitHandler.ListTreatments)
				visitGroup.POST("/treatments", visitHandler.AddTreatment)
				visitGroup.PATCH("/treatments/:visitTreatmentId", visitHandler.UpdateTreatment)
				visitGroup.DELETE("/treatments/:visitTreatmentId", visitHandler.RemoveTreatment)

				visitGroup.GET("/notes", visitHandler.ListNotes)
				visitGroup.POST("/notes", visitHandler.AddNote)
				visitGroup.PATCH("/notes/:noteId", visitHandler.UpdateNote)
				visitGroup.DELETE("/notes/:noteId", visitHandler.DeleteNote)

				visitGroup.POST("/images/upload-url", imageHandler.UploadURL)
				visitGroup.POST("/images", imageHandler.Register)
				visitGroup.GET("/images", imageHandler.List)
				visitGroup.DELETE("/images/:imageId", imageHandler.Delete)
			}
		}
	}
}
