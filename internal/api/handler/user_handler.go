package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/pkg/response"
)

type createUserRequest struct {
	Username    string  `json:"username" binding:"required,notblank"`
	DisplayName string  `json:"display_name" binding:"required,notblank"`
	Bio         *string `json:"bio"`
}

type updateUserRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,notblank"`
	Bio         *string `json:"bio"`
}

// CreateUser 注册用户
// @Summary 注册用户
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body createUserRequest true "用户信息"
// @Success 201 {object} response.Response{data=model.UserView}
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.userService.CreateUser(c.Request.Context(), req.Username, req.DisplayName, req.Bio)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, u)
}

// GetUser 查询用户
// @Summary 查询用户
// @Tags 用户
// @Produce json
// @Param user_id path string true "用户ID"
// @Success 200 {object} response.Response{data=model.UserView}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.userService.GetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, u)
}

// UpdateUser 修改昵称或简介
// @Summary 修改用户资料
// @Tags 用户
// @Accept json
// @Produce json
// @Param user_id path string true "用户ID"
// @Param request body updateUserRequest true "待修改字段"
// @Success 200 {object} response.Response{data=model.UserView}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/users/{user_id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.userService.UpdateUser(c.Request.Context(), c.Param("user_id"), model.UserUpdate{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, u)
}
