package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/pkg/response"
)

// Timeline 关注的人的帖子流
// @Summary 时间线
// @Tags 信息流
// @Produce json
// @Param user_id path string true "用户ID"
// @Success 200 {object} response.Response{data=[]model.PostView}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id}/timeline [get]
func (h *Handler) Timeline(c *gin.Context) {
	list, err := h.feedService.Timeline(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

// Mentions 提及某用户的帖子
// @Summary 提及
// @Tags 信息流
// @Produce json
// @Param user_id path string true "用户ID"
// @Success 200 {object} response.Response{data=[]model.PostView}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id}/mentions [get]
func (h *Handler) Mentions(c *gin.Context) {
	list, err := h.feedService.Mentions(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

// UserTweets 某用户发布的帖子
// @Summary 用户帖子
// @Tags 信息流
// @Produce json
// @Param user_id path string true "用户ID"
// @Success 200 {object} response.Response{data=[]model.PostView}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id}/tweets [get]
func (h *Handler) UserTweets(c *gin.Context) {
	list, err := h.feedService.PostsByAuthor(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

// HashtagTweets 话题下的帖子
// @Summary 话题帖子
// @Tags 信息流
// @Produce json
// @Param tag path string true "话题（可带 #）"
// @Success 200 {object} response.Response{data=[]model.PostView}
// @Router /api/v1/hashtags/{tag}/tweets [get]
func (h *Handler) HashtagTweets(c *gin.Context) {
	response.Success(c, h.feedService.PostsByHashtag(c.Request.Context(), c.Param("tag")))
}

// Trending 热门话题
// @Summary 热门话题
// @Tags 信息流
// @Produce json
// @Param limit query int false "返回条数" default(10)
// @Success 200 {object} response.Response{data=[]model.TrendingItem}
// @Failure 422 {object} response.Response
// @Router /api/v1/trending [get]
func (h *Handler) Trending(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	response.Success(c, h.feedService.Trending(c.Request.Context(), limit))
}

// Activity 某用户最近的活动
// @Summary 用户活动
// @Tags 信息流
// @Produce json
// @Param user_id path string true "用户ID"
// @Param limit query int false "返回条数" default(50)
// @Success 200 {object} response.Response{data=[]model.Activity}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id}/activity [get]
func (h *Handler) Activity(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	list, err := h.feedService.Activity(c.Request.Context(), c.Param("user_id"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

// queryLimit 解析可选的 limit 参数；缺省为 0，由服务层取默认值
func queryLimit(c *gin.Context) (int, bool) {
	s := c.Query("limit")
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		response.UnprocessableEntity(c, "limit must be a positive integer")
		return 0, false
	}
	return n, true
}
