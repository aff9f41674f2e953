package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-api/internal/middleware"
	"github.com/yourusername/assessment-api/pkg/locale"
)

// Handlers объединяет обработчики всех разделов API
type Handlers struct {
	Auth     *AuthHandler
	Survey   *SurveyHandler
	Question *QuestionHandler
	Result   *ResultHandler
	Export   *ExportHandler
	Group    *GroupHandler
	Profile  *ProfileHandler
}

// RouterDeps содержит middleware, общие для маршрутов
type RouterDeps struct {
	Auth    *middleware.AuthMiddleware
	Locales *locale.Resolver
	// LoginLimit ограничивает попытки входа; nil - без ограничения
	LoginLimit gin.HandlerFunc
}

// RegisterRoutes регистрирует маршруты /api
func RegisterRoutes(router gin.IRouter, h Handlers, deps RouterDeps) {
	requireAuth := deps.Auth.RequireAuth()
	requireCSRF := deps.Auth.RequireCSRF()
	superuserOnly := deps.Auth.SuperuserOnly()

	api := router.Group("/api")
	api.Use(middleware.Locale(deps.Locales), middleware.RequireJSON())

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		if deps.LoginLimit != nil {
			authGroup.POST("/login", deps.LoginLimit, h.Auth.Login)
		} else {
			authGroup.POST("/login", h.Auth.Login)
		}
		authGroup.POST("/logout", requireAuth, requireCSRF, h.Auth.Logout)
	}

	authed := api.Group("")
	authed.Use(requireAuth, requireCSRF)

	authed.GET("/users/me", h.Auth.GetMe)

	surveys := authed.Group("/surveys")
	{
		surveys.GET("", h.Survey.ListSurveys)
		surveys.POST("", h.Survey.CreateSurvey)
		surveys.GET("/assigned", h.Survey.ListAssigned)
		surveys.GET("/slug/:slug", h.Survey.GetSurveyBySlug)

		surveyWithID := surveys.Group("/:id")
		surveyWithID.Use(middleware.ExtractUUIDParam("id", "surveyID"))
		{
			surveyWithID.GET("", h.Survey.GetSurvey)
			surveyWithID.PATCH("", h.Survey.UpdateSurvey)
			surveyWithID.DELETE("", h.Survey.DeleteSurvey)
			surveyWithID.PUT("/translations/:lang", h.Survey.UpsertTranslation)

			surveyWithID.GET("/admins", h.Survey.ListAdmins)
			surveyWithID.POST("/admins", h.Survey.AddAdmin)
			surveyWithID.DELETE("/admins/:user_id", h.Survey.RemoveAdmin)

			surveyWithID.GET("/questions", h.Question.ListQuestions)
			surveyWithID.POST("/questions", h.Question.CreateQuestion)

			surveyWithID.GET("/results/export", h.Export.ExportResults)
		}
	}

	questions := authed.Group("/questions/:id")
	questions.Use(middleware.ExtractUUIDParam("id", "questionID"))
	{
		questions.GET("", h.Question.GetQuestion)
		questions.PATCH("", h.Question.UpdateQuestion)
		questions.DELETE("", h.Question.DeleteQuestion)
		questions.PUT("/translations/:lang", h.Question.UpsertQuestionTranslation)
		questions.POST("/choices", h.Question.CreateChoice)
	}

	choices := authed.Group("/choices/:id")
	choices.Use(middleware.ExtractUUIDParam("id", "choiceID"))
	{
		choices.PATCH("", h.Question.UpdateChoice)
		choices.DELETE("", h.Question.DeleteChoice)
		choices.PUT("/translations/:lang", h.Question.UpsertChoiceTranslation)
	}

	results := authed.Group("/results")
	{
		// list_results
		results.GET("", h.Result.ListResults)
		results.POST("", h.Result.SubmitResult)

		resultWithID := results.Group("/:id")
		resultWithID.Use(middleware.ExtractUUIDParam("id", "resultID"))
		{
			resultWithID.GET("", h.Result.GetResult)
			resultWithID.DELETE("", superuserOnly, h.Result.DeleteResult)
			resultWithID.POST("/answers", h.Result.AddAnswer)
		}
	}

	groups := authed.Group("/groups")
	{
		groups.GET("", h.Group.ListGroups)
		groups.POST("", superuserOnly, h.Group.CreateGroup)

		groupWithID := groups.Group("/:id")
		groupWithID.Use(middleware.ExtractUUIDParam("id", "groupID"))
		{
			groupWithID.GET("", h.Group.GetGroup)
			groupWithID.PATCH("", superuserOnly, h.Group.UpdateGroup)
			groupWithID.PUT("/surveys", superuserOnly, h.Group.SetGroupSurveys)
			groupWithID.DELETE("", superuserOnly, h.Group.DeleteGroup)
		}
	}

	profiles := authed.Group("/profiles")
	{
		profiles.GET("/me", h.Profile.GetMyProfile)
		profiles.PUT("/:user_id", superuserOnly, middleware.ExtractUUIDParam("user_id", "userID"), h.Profile.SetAssignments)
	}
}
