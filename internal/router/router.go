package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"atelier/internal/auth"
	"atelier/internal/handler"
	"atelier/internal/repository"
)

// Register wires routes and middleware. Every mutating route sits behind the
// two-stage gate: authenticate (valid session token, credential record loaded
// into context) then authorize (admin role), in that order.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	postHandler *handler.PostHandler,
	testimonialHandler *handler.TestimonialHandler,
	galleryHandler *handler.GalleryHandler,
	offeringHandler *handler.OfferingHandler,
	transformationHandler *handler.TransformationHandler,
	settingsHandler *handler.SettingsHandler,
	inquiryHandler *handler.InquiryHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password", authHandler.ResetPassword)

	api.GET("/projects", projectHandler.List)
	api.GET("/projects/featured", projectHandler.ListFeatured)
	api.GET("/projects/slug/:slug", projectHandler.GetBySlug)
	api.GET("/projects/:id", projectHandler.Get)

	api.GET("/posts", postHandler.List)
	api.GET("/posts/slug/:slug", postHandler.GetBySlug)
	api.GET("/posts/:id", postHandler.Get)

	api.GET("/testimonials", testimonialHandler.List)
	api.GET("/gallery", galleryHandler.List)
	api.GET("/gallery/:id", galleryHandler.Get)
	api.GET("/services", offeringHandler.List)
	api.GET("/services/:id", offeringHandler.Get)
	api.GET("/transformations/active", transformationHandler.GetActive)

	api.GET("/settings/site", settingsHandler.Site)
	api.GET("/settings/about", settingsHandler.About)
	api.GET("/settings/contact", settingsHandler.Contact)

	api.POST("/inquiries", inquiryHandler.Create)

	// Authenticated routes (any role)
	me := api.Group("/me", Authenticate(jwtService), LoadUser(users))
	me.GET("", authHandler.Me)
	me.PUT("", authHandler.UpdateProfile)
	me.PUT("/password", authHandler.ChangePassword)

	// Admin routes
	admin := api.Group("/admin", Authenticate(jwtService), LoadUser(users), RequireAdmin())

	admin.POST("/projects", projectHandler.Create)
	admin.PUT("/projects/:id", projectHandler.Update)
	admin.DELETE("/projects/:id", projectHandler.Delete)

	admin.GET("/posts", postHandler.ListAll)
	admin.POST("/posts", postHandler.Create)
	admin.PUT("/posts/:id", postHandler.Update)
	admin.DELETE("/posts/:id", postHandler.Delete)

	admin.GET("/testimonials", testimonialHandler.ListAll)
	admin.POST("/testimonials", testimonialHandler.Create)
	admin.PUT("/testimonials/:id", testimonialHandler.Update)
	admin.DELETE("/testimonials/:id", testimonialHandler.Delete)

	admin.POST("/gallery", galleryHandler.Create)
	admin.PUT("/gallery/:id", galleryHandler.Update)
	admin.DELETE("/gallery/:id", galleryHandler.Delete)

	admin.POST("/services", offeringHandler.Create)
	admin.PUT("/services/:id", offeringHandler.Update)
	admin.DELETE("/services/:id", offeringHandler.Delete)

	admin.GET("/transformations", transformationHandler.List)
	admin.GET("/transformations/:id", transformationHandler.Get)
	admin.POST("/transformations", transformationHandler.Create)
	admin.PUT("/transformations/:id", transformationHandler.Update)
	admin.PUT("/transformations/:id/activate", transformationHandler.SetActive)
	admin.DELETE("/transformations/:id", transformationHandler.Delete)

	admin.PUT("/settings/site", settingsHandler.UpdateSite)
	admin.PUT("/settings/about", settingsHandler.UpdateAbout)
	admin.PUT("/settings/contact", settingsHandler.UpdateContact)

	admin.GET("/inquiries", inquiryHandler.List)
	admin.GET("/inquiries/:id", inquiryHandler.Get)
	admin.PUT("/inquiries/:id/read", inquiryHandler.MarkRead)
	admin.DELETE("/inquiries/:id", inquiryHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
