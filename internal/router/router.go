package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"communityhub/internal/auth"
	"communityhub/internal/config"
	"communityhub/internal/handler"
)

// Register wires routes and middleware. Public reads need no token, member
// actions sit behind the JWT middleware, and admin mutations additionally
// carry the RequireAdmin predicate on the group declaration.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	industryHandler *handler.IndustryHandler,
	updateHandler *handler.UpdateHandler,
	contactHandler *handler.ContactHandler,
	pollHandler *handler.PollHandler,
	workshopHandler *handler.WorkshopHandler,
	feedbackHandler *handler.FeedbackHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static(cfg.UploadsBaseURL, cfg.UploadsDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/industries", industryHandler.List)
	api.GET("/industries/:id", industryHandler.Get)
	api.GET("/updates", updateHandler.List)
	api.GET("/updates/:id", updateHandler.Get)
	api.GET("/contacts", contactHandler.List)
	api.GET("/contacts/:id", contactHandler.Get)
	api.GET("/polls", pollHandler.List)
	api.GET("/polls/:id", pollHandler.Get)
	api.GET("/workshops", workshopHandler.List)
	api.GET("/workshops/:id", workshopHandler.Get)
	api.GET("/feedback/questions", feedbackHandler.ListQuestions)
	api.GET("/feedback/questions/:id", feedbackHandler.GetQuestion)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
	}))

	secured.GET("/me", authHandler.Me)

	secured.POST("/industries", industryHandler.Create)
	secured.PUT("/industries/:id", industryHandler.Update)
	secured.DELETE("/industries/:id", industryHandler.Delete)
	secured.POST("/industries/:id/images", industryHandler.UploadProductImage)

	secured.PUT("/polls/:id/vote", pollHandler.Vote)
	secured.GET("/polls/:id/results", pollHandler.Results)

	secured.POST("/workshops/:id/register", workshopHandler.Register)
	secured.DELETE("/workshops/:id/register", workshopHandler.Unregister)

	secured.POST("/feedback/responses", feedbackHandler.SubmitResponse)

	// Admin routes
	admin := secured.Group("", auth.RequireAdmin)

	admin.GET("/users", userHandler.List)
	admin.PUT("/users/:id/status", userHandler.SetStatus)

	admin.POST("/updates", updateHandler.Create)
	admin.PUT("/updates/:id", updateHandler.Update)
	admin.DELETE("/updates/:id", updateHandler.Delete)

	admin.POST("/contacts", contactHandler.Create)
	admin.PUT("/contacts/:id", contactHandler.Update)
	admin.DELETE("/contacts/:id", contactHandler.Delete)

	admin.POST("/polls", pollHandler.Create)
	admin.PUT("/polls/:id", pollHandler.Update)
	admin.DELETE("/polls/:id", pollHandler.Delete)

	admin.POST("/workshops", workshopHandler.Create)
	admin.PUT("/workshops/:id", workshopHandler.Update)
	admin.DELETE("/workshops/:id", workshopHandler.Delete)
	admin.GET("/workshops/:id/attendees", workshopHandler.Attendees)

	admin.GET("/feedback/questions/all", feedbackHandler.ListAllQuestions)
	admin.POST("/feedback/questions", feedbackHandler.CreateQuestion)
	admin.PUT("/feedback/questions/:id", feedbackHandler.UpdateQuestion)
	admin.DELETE("/feedback/questions/:id", feedbackHandler.DeleteQuestion)
	admin.GET("/feedback/responses", feedbackHandler.ListResponses)
	admin.PUT("/feedback/responses/:id/status", feedbackHandler.SetResponseStatus)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
