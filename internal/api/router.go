package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/handlers"
	custommiddleware "github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/middleware"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/auth"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/config"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/service"
)

// Services carries the constructed service layer into the router.
type Services struct {
	System      *service.SystemService
	Team        *service.TeamService
	Property    *service.PropertyService
	Valuation   *service.ValuationService
	Portfolio   *service.PortfolioService
	Performance *service.PerformanceService
	Contact     *service.ContactService
	Vendor      *service.VendorService
	WorkOrder   *service.WorkOrderService
	Turnover    *service.TurnoverService
	SkipTrace   *service.SkipTraceService
	Deposit     *service.DepositService
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services Services, issuer auth.TokenIssuer, logger *zap.Logger, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// Credential endpoints get a much tighter limiter than the rest of the
	// API; they are the brute-force target.
	generalLimiter := rate.NewLimiter(rate.Every(100*time.Millisecond), 30)
	credentialLimiter := rate.NewLimiter(rate.Every(time.Second), 5)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace stays open for load balancer probes.
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		authHandler := handlers.NewAuthHandler(services.Team)
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RateLimit(credentialLimiter))
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		})

		// Everything below requires a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireAuth(issuer))
			r.Use(custommiddleware.RateLimit(generalLimiter))

			r.Get("/auth/me", authHandler.Me)

			// Team management namespace; owner only.
			r.Route("/team", func(r chi.Router) {
				r.Use(custommiddleware.RequireOwner)
				teamHandler := handlers.NewTeamHandler(services.Team)
				r.Get("/members", teamHandler.Members)
				r.Post("/members", teamHandler.Invite)
				r.Route("/members/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Delete("/", teamHandler.Remove)
				})
			})

			valuationHandler := handlers.NewValuationHandler(services.Valuation)

			r.Route("/properties", func(r chi.Router) {
				propertyHandler := handlers.NewPropertyHandler(services.Property)
				r.Get("/", propertyHandler.Properties)
				r.Post("/", propertyHandler.CreateProperty)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", propertyHandler.GetProperty)
					r.Put("/", propertyHandler.UpdateProperty)
					r.Post("/retire", propertyHandler.RetireProperty)
					r.Get("/valuations", valuationHandler.PropertyValuations)
					r.Post("/valuations", valuationHandler.CreateValuation)
				})
			})

			r.Route("/valuations", func(r chi.Router) {
				r.Post("/refresh", valuationHandler.RefreshEstimates)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Delete("/", valuationHandler.DeleteValuation)
				})
			})

			portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio)
			performanceHandler := handlers.NewPerformanceHandler(services.Performance)

			r.Route("/portfolio", func(r chi.Router) {
				r.Get("/performance", performanceHandler.PortfolioPerformance)
				r.Get("/benchmark", performanceHandler.Benchmark)
				r.Route("/entries", func(r chi.Router) {
					r.Get("/", portfolioHandler.Entries)
					r.Post("/", portfolioHandler.CreateEntry)
					r.Route("/{uuid}", func(r chi.Router) {
						r.Use(custommiddleware.ValidateUUIDMiddleware)
						r.Get("/", portfolioHandler.GetEntry)
						r.Put("/", portfolioHandler.UpdateEntry)
						r.Delete("/", portfolioHandler.DeactivateEntry)
						r.Get("/records", portfolioHandler.MonthlyRecords)
						r.Put("/records", portfolioHandler.UpsertMonthlyRecord)
						r.Delete("/records/{month}", portfolioHandler.DeleteMonthlyRecord)
						r.Get("/mortgages", portfolioHandler.Mortgages)
						r.Post("/mortgages", portfolioHandler.CreateMortgage)
						r.Get("/performance", performanceHandler.EntryPerformance)
						r.Get("/projection", performanceHandler.EntryProjection)
					})
				})
			})

			r.Route("/mortgages/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", portfolioHandler.UpdateMortgage)
				r.Delete("/", portfolioHandler.DeleteMortgage)
			})

			r.Route("/contacts", func(r chi.Router) {
				contactHandler := handlers.NewContactHandler(services.Contact)
				r.Get("/", contactHandler.Contacts)
				r.Post("/", contactHandler.CreateContact)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", contactHandler.GetContact)
					r.Put("/", contactHandler.UpdateContact)
					r.Delete("/", contactHandler.DeleteContact)
				})
			})

			r.Route("/vendors", func(r chi.Router) {
				vendorHandler := handlers.NewVendorHandler(services.Vendor)
				r.Get("/", vendorHandler.Vendors)
				r.Post("/", vendorHandler.CreateVendor)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", vendorHandler.GetVendor)
					r.Put("/", vendorHandler.UpdateVendor)
					r.Delete("/", vendorHandler.DeleteVendor)
				})
			})

			r.Route("/workorders", func(r chi.Router) {
				workOrderHandler := handlers.NewWorkOrderHandler(services.WorkOrder)
				r.Get("/", workOrderHandler.WorkOrders)
				r.Post("/", workOrderHandler.CreateWorkOrder)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", workOrderHandler.GetWorkOrder)
					r.Put("/", workOrderHandler.UpdateWorkOrder)
					r.Delete("/", workOrderHandler.DeleteWorkOrder)
					r.Patch("/status", workOrderHandler.UpdateStatus)
				})
			})

			r.Route("/turnovers", func(r chi.Router) {
				turnoverHandler := handlers.NewTurnoverHandler(services.Turnover)
				r.Get("/", turnoverHandler.Turnovers)
				r.Post("/", turnoverHandler.CreateTurnover)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", turnoverHandler.GetTurnover)
					r.Post("/advance", turnoverHandler.AdvanceTurnover)
				})
			})

			r.Route("/skiptraces", func(r chi.Router) {
				skipTraceHandler := handlers.NewSkipTraceHandler(services.SkipTrace)
				r.Get("/", skipTraceHandler.SkipTraces)
				r.Post("/run", skipTraceHandler.Run)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", skipTraceHandler.GetSkipTrace)
				})
			})

			r.Route("/deposits", func(r chi.Router) {
				depositHandler := handlers.NewDepositHandler(services.Deposit)
				r.Get("/", depositHandler.Deposits)
				r.Post("/", depositHandler.CreateDeposit)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", depositHandler.GetDeposit)
					r.Get("/charges", depositHandler.Charges)
					r.Post("/charges", depositHandler.AddCharge)
					r.Get("/settlement/preview", depositHandler.PreviewSettlement)
					r.Post("/settle", depositHandler.Settle)
				})
			})
		})
	})

	return r
}
