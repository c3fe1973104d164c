package server

import (
	"net/http"
	"time"

	httpHandler "youtube-fetcher/interfaces/http"
	"youtube-fetcher/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	jobHandler httpHandler.IJobHandler,
	youtubeHandler httpHandler.IYouTubeHandler,
	apiKey string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-API-Key"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("")
	api.Use(middleware.Auth(apiKey))

	api.POST("/search/scrape", jobHandler.EnqueueScrape)
	api.POST("/thumbnails/fetch", jobHandler.EnqueueThumbnails)
	api.GET("/jobs/:job_id", jobHandler.GetJobStatus)

	api.POST("/youtube/videos", youtubeHandler.GetVideoDescriptions)
	api.POST("/youtube/channels", youtubeHandler.GetChannelSubscribers)

	return router
}
