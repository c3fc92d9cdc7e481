package api

import (
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Pricing    *h.PricingHandler
	Challenges *h.ChallengeHandler
	Leads      *h.LeadsHandler
	Engagement *h.EngagementHandler
	Content    *h.ContentHandler
}

func NewRouter(log *zap.Logger, corsOrigins []string, hs Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(corsOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = corsOrigins
	}
	r.Use(cors.New(corsCfg))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/routes", h.Routes)

		trips := api.Group("/trips")
		trips.POST("/price", hs.Pricing.Price)
		trips.POST("/quote", hs.Pricing.Quote)

		api.POST("/challenges", hs.Challenges.Create)

		leads := api.Group("/leads")
		leads.POST("/enquiry", hs.Leads.Enquiry)
		leads.POST("/booking-request", hs.Leads.BookingRequest)

		eng := api.Group("/engagement")
		eng.GET("/config", hs.Engagement.Config)
		eng.GET("/notifications/next", hs.Engagement.NextNotification)
		eng.POST("/sessions", hs.Engagement.OpenSession)
		eng.POST("/sessions/:id/events", hs.Engagement.ReportEvent)
		eng.DELETE("/sessions/:id", hs.Engagement.CloseSession)

		contentGroup := api.Group("/content")
		contentGroup.GET("/destinations", hs.Content.Destinations)
		contentGroup.GET("/trips/:slug", hs.Content.Trip)
		contentGroup.GET("/faqs", hs.Content.FAQs)
	}

	h.SetRouter(r)
	return r
}
