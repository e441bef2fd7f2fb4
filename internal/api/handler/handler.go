package handler

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/d60-Lab/microblog/internal/graph"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

// Handler HTTP 处理器
type Handler struct {
	userService service.UserService
	relService  service.RelationshipService
	tweetSvc    service.TweetService
	feedService service.FeedService
	engine      *graph.Engine
}

func New(svc *service.Services) *Handler {
	registerValidators()
	return &Handler{
		userService: svc.Users,
		relService:  svc.Relation,
		tweetSvc:    svc.Tweets,
		feedService: svc.Feed,
		engine:      svc.Engine,
	}
}

var registerOnce sync.Once

// registerValidators 为 gin 的校验器注册 notblank 规则
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("notblank", validators.NotBlank)
		}
	})
}

// Health 健康检查
// @Summary 健康检查
// @Tags 运维
// @Produce json
// @Success 200 {object} response.Response{data=graph.Stats}
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok", "stats": h.engine.Stats()})
}
