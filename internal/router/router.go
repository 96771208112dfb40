// router.go
package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"neuroscreen/internal/config"
	"neuroscreen/internal/handlers"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
}

// Setup builds the gin engine around the assessment and results handlers.
func Setup(log *zap.Logger, assessment *handlers.AssessmentHandler, results *handlers.ResultsHandler) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400,
	})
	router.Use(sessions.Sessions("neuroscreen", store))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	// Session creation is rate limited per client IP; the remaining
	// endpoints are driven by an existing session.
	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 10,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")
	{
		api.POST("/sessions", limiter, assessment.Start)

		sessionRoutes := api.Group("/sessions/:id")
		{
			sessionRoutes.GET("/item", assessment.CurrentItem)
			sessionRoutes.POST("/response", assessment.SubmitResponse)
			sessionRoutes.POST("/previous", assessment.Previous)
			sessionRoutes.POST("/skip", assessment.Skip)
			sessionRoutes.POST("/tick", assessment.Tick)
			sessionRoutes.GET("/progress", assessment.Progress)
		}

		api.GET("/results", results.List)
		api.GET("/results/latest", results.Latest)
		api.GET("/results/insights", results.Insights)
	}

	router.GET("/results/chart", results.ScoreChart)

	return router
}
