package router

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/microblog/config"
	_ "github.com/d60-Lab/microblog/docs"
	"github.com/d60-Lab/microblog/internal/api/handler"
	"github.com/d60-Lab/microblog/internal/metrics"
	"github.com/d60-Lab/microblog/pkg/logger"
)

// Setup 组装中间件与路由
func Setup(cfg *config.Config, h *handler.Handler, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(requestLogger(logger.Get()))
	r.Use(gin.Recovery())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	if cfg.Metrics.Enabled && m != nil {
		r.Use(observeRequests(m))
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}
	if cfg.Server.Gzip {
		r.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	r.GET("/health", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		users.POST("", h.CreateUser)
		users.GET("/:user_id", h.GetUser)
		users.PUT("/:user_id", h.UpdateUser)
		users.GET("/:user_id/tweets", h.UserTweets)
		users.POST("/:user_id/follow", h.Follow)
		users.DELETE("/:user_id/follow", h.Unfollow)
		users.GET("/:user_id/followers", h.ListFollowers)
		users.GET("/:user_id/following", h.ListFollowing)
		users.GET("/:user_id/timeline", h.Timeline)
		users.GET("/:user_id/mentions", h.Mentions)
		users.GET("/:user_id/activity", h.Activity)

		tweets := v1.Group("/tweets")
		tweets.POST("", h.CreateTweet)
		tweets.GET("/:tweet_id", h.GetTweet)
		tweets.DELETE("/:tweet_id", h.DeleteTweet)
		tweets.POST("/:tweet_id/retweet", h.Retweet)
		tweets.POST("/:tweet_id/quote", h.Quote)
		tweets.POST("/:tweet_id/like", h.Like)
		tweets.DELETE("/:tweet_id/like", h.Unlike)

		v1.GET("/hashtags/:tag/tweets", h.HashtagTweets)
		v1.GET("/trending", h.Trending)
	}
	return r
}
