package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/pkg/response"
)

type createTweetRequest struct {
	UserID  string  `json:"user_id" binding:"required"`
	Content *string `json:"content" binding:"required"`
}

type retweetRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type likeRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type unlikeQuery struct {
	UserID string `form:"user_id" binding:"required"`
}

// CreateTweet 发布原创帖子
// @Summary 发帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body createTweetRequest true "作者与正文"
// @Success 201 {object} response.Response{data=model.PostView}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/tweets [post]
func (h *Handler) CreateTweet(c *gin.Context) {
	var req createTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.tweetSvc.Create(c.Request.Context(), req.UserID, *req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, p)
}

// GetTweet 查询帖子
// @Summary 查询帖子
// @Tags 帖子
// @Produce json
// @Param tweet_id path string true "帖子ID"
// @Success 200 {object} response.Response{data=model.PostView}
// @Failure 404 {object} response.Response
// @Router /api/v1/tweets/{tweet_id} [get]
func (h *Handler) GetTweet(c *gin.Context) {
	p, err := h.tweetSvc.Get(c.Request.Context(), c.Param("tweet_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, p)
}

// DeleteTweet 删除帖子
// @Summary 删除帖子
// @Tags 帖子
// @Param tweet_id path string true "帖子ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/v1/tweets/{tweet_id} [delete]
func (h *Handler) DeleteTweet(c *gin.Context) {
	if err := h.tweetSvc.Delete(c.Request.Context(), c.Param("tweet_id")); err != nil {
		writeError(c, err)
		return
	}
	response.NoContent(c)
}

// Retweet 转发
// @Summary 转发
// @Tags 帖子
// @Accept json
// @Produce json
// @Param tweet_id path string true "原帖ID"
// @Param request body retweetRequest true "转发者"
// @Success 201 {object} response.Response{data=model.PostView}
// @Failure 404 {object} response.Response
// @Router /api/v1/tweets/{tweet_id}/retweet [post]
func (h *Handler) Retweet(c *gin.Context) {
	var req retweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.tweetSvc.Retweet(c.Request.Context(), req.UserID, c.Param("tweet_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, p)
}

// Quote 引用转发
// @Summary 引用转发
// @Tags 帖子
// @Accept json
// @Produce json
// @Param tweet_id path string true "原帖ID"
// @Param request body createTweetRequest true "引用者与评论"
// @Success 201 {object} response.Response{data=model.PostView}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/tweets/{tweet_id}/quote [post]
func (h *Handler) Quote(c *gin.Context) {
	var req createTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.tweetSvc.Quote(c.Request.Context(), req.UserID, c.Param("tweet_id"), *req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, p)
}

// Like 点赞
// @Summary 点赞
// @Tags 点赞
// @Accept json
// @Produce json
// @Param tweet_id path string true "帖子ID"
// @Param request body likeRequest true "点赞用户"
// @Success 200 {object} response.Response{data=map[string]int}
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/tweets/{tweet_id}/like [post]
func (h *Handler) Like(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	n, err := h.tweetSvc.Like(c.Request.Context(), req.UserID, c.Param("tweet_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"like_count": n})
}

// Unlike 取消点赞
// @Summary 取消点赞
// @Tags 点赞
// @Produce json
// @Param tweet_id path string true "帖子ID"
// @Param user_id query string true "点赞用户"
// @Success 200 {object} response.Response{data=map[string]int}
// @Failure 404 {object} response.Response
// @Router /api/v1/tweets/{tweet_id}/like [delete]
func (h *Handler) Unlike(c *gin.Context) {
	var q unlikeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	n, err := h.tweetSvc.Unlike(c.Request.Context(), q.UserID, c.Param("tweet_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"like_count": n})
}
