package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/pkg/response"
)

type followRequest struct {
	TargetUserID string `json:"target_user_id" binding:"required"`
}

type unfollowQuery struct {
	TargetUserID string `form:"target_user_id" binding:"required"`
}

// Follow 建立关注
// @Summary 关注用户
// @Tags 关系链
// @Accept json
// @Produce json
// @Param user_id path string true "发起关注的用户ID"
// @Param request body followRequest true "被关注的用户"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/users/{user_id}/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.relService.Follow(c.Request.Context(), c.Param("user_id"), req.TargetUserID); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"detail": fmt.Sprintf("Now following '%s'", req.TargetUserID)})
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关系链
// @Produce json
// @Param user_id path string true "发起关注的用户ID"
// @Param target_user_id query string true "被关注的用户ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id}/follow [delete]
func (h *Handler) Unfollow(c *gin.Context) {
	var q unfollowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	if err := h.relService.Unfollow(c.Request.Context(), c.Param("user_id"), q.TargetUserID); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"detail": fmt.Sprintf("Unfollowed '%s'", q.TargetUserID)})
}

// ListFollowing 查询某用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Produce json
// @Param user_id path string true "用户ID"
// @Success 200 {object} response.Response{data=[]model.UserView}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	list, err := h.relService.ListFollowing(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

// ListFollowers 查询某用户的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Produce json
// @Param user_id path string true "用户ID"
// @Success 200 {object} response.Response{data=[]model.UserView}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	list, err := h.relService.ListFollowers(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}
