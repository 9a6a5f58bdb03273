package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/face-attendance/internal/web/handlers"
)

func (s *Server) setupRoutes(enroller handlers.Enroller, recognizer handlers.Recognizer, lister handlers.AttendanceLister, directory handlers.UserDirectory) {
	// Create handlers
	enrollHandler := handlers.NewEnrollHandler(enroller)
	recognizeHandler := handlers.NewRecognizeHandler(recognizer)
	attendanceHandler := handlers.NewAttendanceHandler(lister)
	usersHandler := handlers.NewUsersHandler(directory)

	// Health check
	s.router.Get("/api/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/uploadAndEnroll", enrollHandler.UploadAndEnroll)
		r.Post("/markAttendance", recognizeHandler.MarkAttendance)

		r.Get("/getAttendance", attendanceHandler.GetAttendance)
		r.Get("/attendanceRecent", attendanceHandler.Recent)

		r.Get("/listUsers", usersHandler.List)
		r.Get("/usersSummary", usersHandler.Summary)
	})
}
