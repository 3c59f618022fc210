package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trackr/internal/adapter/http/handlers"
	"trackr/internal/adapter/http/middleware"
	"trackr/internal/core/ports"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Projects     *handlers.ProjectHandler
	Tasks        *handlers.TaskHandler
	Participants *handlers.ParticipantHandler
	Activities   *handlers.ActivityHandler
}

type Guards struct {
	Principals  ports.PrincipalResolver
	Members     ports.ParticipantService
	ProjectList *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, h Handlers, g Guards) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
	}

	projects := api.Group("/projects")
	projects.Use(middleware.AuthMiddleware(g.Principals))
	{
		projects.GET("", g.ProjectList.Middleware(), h.Projects.ListProjects)
		projects.POST("", h.Projects.CreateProject)
	}

	project := projects.Group("/:" + middleware.ProjectIDParam)
	project.Use(middleware.ProjectAccessMiddleware(g.Members))
	{
		project.GET("", h.Projects.GetProject)
		project.PATCH("", h.Projects.UpdateProject)
		project.DELETE("", h.Projects.DeleteProject)

		project.GET("/activities", h.Activities.ListProjectActivities)

		project.GET("/participants", h.Participants.ListParticipants)
		project.POST("/participants", h.Participants.AddParticipant)
		project.PATCH("/participants", h.Participants.UpdateParticipantRole)
		project.DELETE("/participants", h.Participants.RemoveParticipant)

		project.POST("/tasks", h.Tasks.CreateTask)
		project.GET("/tasks", h.Tasks.ListTasks)
		project.GET("/tasks/:taskId", h.Tasks.GetTask)
		project.PATCH("/tasks/:taskId", h.Tasks.UpdateTask)
		project.DELETE("/tasks/:taskId", h.Tasks.DeleteTask)
		project.POST("/tasks/:taskId/subtasks", h.Tasks.CreateSubTask)
		project.GET("/tasks/:taskId/subtasks", h.Tasks.ListSubTasks)
	}
}
