package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	AuthHandler      *AuthHandler
	EditorHandler    *EditorHandler
	PortfolioHandler *PortfolioHandler
	ViewerHandler    *ViewerHandler
	AuthMiddleware   gin.HandlerFunc
	ErrorMiddleware  gin.HandlerFunc
	CORSOrigins      []string
}

// NewRouter wires every route. Editor and portfolio routes sit behind auth;
// the viewer routes and the auth surface are public.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(deps.ErrorMiddleware)

	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", deps.AuthHandler.SignUp)
			authGroup.POST("/login", deps.AuthHandler.Login)
			authGroup.GET("/confirm", deps.AuthHandler.ConfirmEmail)
			authGroup.POST("/reset", deps.AuthHandler.RequestPasswordReset)
			authGroup.POST("/reset/confirm", deps.AuthHandler.ConfirmPasswordReset)
		}

		private := api.Group("/")
		private.Use(deps.AuthMiddleware)
		{
			private.POST("/auth/logout", deps.AuthHandler.Logout)

			editorGroup := private.Group("/editor")
			{
				editorGroup.GET("", deps.EditorHandler.LoadEditor)
				editorGroup.PATCH("/hero", deps.EditorHandler.PatchHero)
				editorGroup.PATCH("/about", deps.EditorHandler.PatchAbout)
				editorGroup.PATCH("/skills", deps.EditorHandler.PatchSkills)
				editorGroup.PATCH("/projects", deps.EditorHandler.PatchProjects)
				editorGroup.PATCH("/contact", deps.EditorHandler.PatchContact)
				editorGroup.PATCH("/theme", deps.EditorHandler.PatchTheme)
				editorGroup.GET("/skills/suggest", deps.EditorHandler.SuggestSkills)
				editorGroup.POST("/avatar", deps.EditorHandler.UploadAvatar)
				editorGroup.POST("/projects/:index/image", deps.EditorHandler.UploadProjectImage)
				editorGroup.GET("/preview", deps.EditorHandler.Preview)
				editorGroup.GET("/preview/stream", deps.EditorHandler.PreviewStream)
			}

			portfolioGroup := private.Group("/portfolio")
			{
				portfolioGroup.POST("/save", deps.PortfolioHandler.SaveDraft)
				portfolioGroup.POST("/publish", deps.PortfolioHandler.Publish)
				portfolioGroup.DELETE("", deps.PortfolioHandler.Delete)
			}
		}

		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.GET("/portfolios", deps.ViewerHandler.ListJSON)
		api.GET("/portfolios/:slug", deps.ViewerHandler.ViewJSON)
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "spotme-api", "viewer": "/p/:slug"})
	})
	router.GET("/p/:slug", deps.ViewerHandler.ViewPage)

	return router
}
