package boardapi

import (
	"github.com/Abraxas-365/hireflow/pkg/iam/auth"
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all board routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	// Public routes
	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)

	// Everything else requires a bearer token
	api := app.Group("/api", authMiddleware.Authenticate())

	// Me
	api.Get("/me", handlers.Me)
	api.Get("/me/messages", handlers.Messages)
	api.Get("/me/interviews",
		auth.RequireScope(auth.ScopeInterviewsRead),
		handlers.MyInterviews,
	)
	api.Get("/me/documents",
		auth.RequireScope(auth.ScopeDocumentsRead),
		handlers.ListDocuments,
	)
	api.Post("/me/documents",
		auth.RequireScope(auth.ScopeDocumentsWrite),
		handlers.UploadDocument,
	)
	api.Get("/me/documents/:name",
		auth.RequireScope(auth.ScopeDocumentsRead),
		handlers.DownloadDocument,
	)
	api.Delete("/me/documents/:name",
		auth.RequireScope(auth.ScopeDocumentsWrite),
		handlers.RemoveDocument,
	)

	// Postings
	postings := api.Group("/postings")
	postings.Get("/",
		auth.RequireScope(auth.ScopePostingsRead),
		handlers.ListPostings,
	)
	postings.Post("/",
		auth.RequireScope(auth.ScopePostingsWrite),
		handlers.CreatePosting,
	)
	postings.Get("/:id",
		auth.RequireScope(auth.ScopePostingsRead),
		handlers.GetPosting,
	)
	postings.Post("/:id/close",
		auth.RequireScope(auth.ScopePostingsClose),
		handlers.ClosePosting,
	)
	postings.Post("/:id/notify-rejected",
		auth.RequireScope(auth.ScopePostingsNotify),
		handlers.NotifyRejected,
	)
	postings.Post("/:id/rounds/advance",
		auth.RequireScope(auth.ScopeInterviewsSchedule),
		handlers.AdvanceRound,
	)
	postings.Post("/:id/rounds",
		auth.RequireScope(auth.ScopeInterviewsSchedule),
		handlers.AddRound,
	)
	postings.Get("/:id/applications",
		auth.RequireScope(auth.ScopeApplicationsReview),
		handlers.ListPostingApplications,
	)
	postings.Post("/:id/applications/:applicant/hire",
		auth.RequireScope(auth.ScopeApplicationsHire),
		handlers.Hire,
	)
	postings.Post("/:id/applications/:applicant/interview/match",
		auth.RequireScope(auth.ScopeInterviewsSchedule),
		handlers.MatchInterview,
	)
	postings.Put("/:id/applications/:applicant/interview",
		auth.RequireScope(auth.ScopeInterviewsConduct),
		handlers.UpdateInterview,
	)

	// Applications
	applications := api.Group("/applications")
	applications.Post("/",
		auth.RequireScope(auth.ScopeApplicationsWrite),
		handlers.CreateApplication,
	)
	applications.Get("/",
		auth.RequireScope(auth.ScopeApplicationsRead),
		handlers.ListMyApplications,
	)
	applications.Get("/:postingId",
		auth.RequireScope(auth.ScopeApplicationsRead),
		handlers.GetMyApplication,
	)
	applications.Delete("/:postingId",
		auth.RequireScope(auth.ScopeApplicationsWrite),
		handlers.DeleteApplication,
	)
	applications.Post("/:postingId/submit",
		auth.RequireScope(auth.ScopeApplicationsWrite),
		handlers.SubmitApplication,
	)
	applications.Post("/:postingId/withdraw",
		auth.RequireScope(auth.ScopeApplicationsWrite),
		handlers.WithdrawApplication,
	)
	applications.Get("/:postingId/documents",
		auth.RequireScope(auth.ScopeDocumentsRead),
		handlers.ListDocuments,
	)
	applications.Post("/:postingId/documents/copy",
		auth.RequireScope(auth.ScopeDocumentsWrite),
		handlers.CopyDocument,
	)
	applications.Post("/:postingId/documents",
		auth.RequireScope(auth.ScopeDocumentsWrite),
		handlers.UploadDocument,
	)
	applications.Get("/:postingId/documents/:name",
		auth.RequireScope(auth.ScopeDocumentsRead),
		handlers.DownloadDocument,
	)
	applications.Delete("/:postingId/documents/:name",
		auth.RequireScope(auth.ScopeDocumentsWrite),
		handlers.RemoveDocument,
	)

	// Clock
	clock := api.Group("/clock")
	clock.Get("/",
		auth.RequireScope(auth.ScopeClockRead),
		handlers.Clock,
	)
	clock.Post("/tick",
		auth.RequireScope(auth.ScopeClockAdvance),
		handlers.Tick,
	)
	clock.Post("/advance",
		auth.RequireScope(auth.ScopeClockAdvance),
		handlers.AdvanceClock,
	)
}
