package app

import (
	"callcenter_english_backend/docs"
	"callcenter_english_backend/internal/config"
	"callcenter_english_backend/internal/middleware"
	"callcenter_english_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerUserRoutes(authGroup, c)
		a.registerLearningRoutes(authGroup, c)
		a.registerAIRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/signup", c.auth.Signup)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/tts/voices", c.tts.Voices)
		public.GET("/tts/health", c.tts.Health)
		public.GET("/ai/health", c.ai.Health)
	}
}

func (a *App) registerUserRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/users/profile", c.user.GetProfile)
	group.PUT("/users/profile", c.user.UpdateProfile)
	group.POST("/users/initialize-progress", c.user.InitializeProgress)

	group.GET("/progress", c.progress.GetProgress)
	group.PUT("/progress", c.progress.UpdateProgress)
	group.GET("/progress/skills", c.progress.GetSkills)
	group.POST("/progress/skills", c.progress.UpsertSkill)
	group.GET("/progress/recommendations", c.progress.GetRecommendations)
}

func (a *App) registerLearningRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/lessons", c.lesson.List)
	group.GET("/lessons/:lessonId", c.lesson.Get)
	group.GET("/lessons/:lessonId/progress", c.lesson.GetProgress)
	group.POST("/lessons/:lessonId/complete", c.lesson.Complete)

	group.GET("/quizzes", c.quiz.Results)
	group.GET("/quizzes/stats", c.quiz.Stats)
	group.POST("/quizzes/:quizId/submit", c.quiz.Submit)

	group.GET("/assessments/status", c.assessment.Status)
	group.POST("/assessments/:assessmentType/submit", c.assessment.Submit)
	group.GET("/assessments/certification", c.assessment.GetCertification)
	group.POST("/assessments/certification/issue", c.assessment.IssueCertification)
}

func (a *App) registerAIRoutes(group *gin.RouterGroup, c *controllers) {
	group.POST("/ai/speaking-session", c.ai.StartSession)
	group.POST("/ai/speaking-session/:sessionId/submit", c.ai.SubmitSession)
	group.GET("/ai/speaking-sessions", c.ai.Sessions)
	group.GET("/ai/scenarios", c.ai.Scenarios)
	group.POST("/ai/scenario/:scenarioId/attempt", c.ai.AttemptScenario)
	group.POST("/ai/ask-tutor", c.ai.AskTutor)
	group.POST("/ai/generate-quiz", c.ai.GenerateQuiz)

	group.POST("/tts/generate", c.tts.Generate)
	group.GET("/tts/scenario/:scenarioId", c.tts.ScenarioAudio)
	group.GET("/tts/lesson/:lessonId", c.tts.LessonAudio)
	group.POST("/tts/feedback", c.tts.FeedbackAudio)
	group.POST("/tts/quiz-question", c.tts.QuizQuestionAudio)
}
