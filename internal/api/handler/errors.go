package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/graph"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

// errorStatus 领域错误到 HTTP 状态码的映射，按顺序匹配
var errorStatus = []struct {
	err    error
	status int
}{
	{graph.ErrNotFound, http.StatusNotFound},
	{graph.ErrNotFollowing, http.StatusNotFound},
	{graph.ErrNotLiked, http.StatusNotFound},
	{service.ErrActivityDisabled, http.StatusNotFound},
	{graph.ErrDuplicateUsername, http.StatusConflict},
	{graph.ErrAlreadyFollowing, http.StatusConflict},
	{graph.ErrAlreadyLiked, http.StatusConflict},
	{graph.ErrSelfFollow, http.StatusBadRequest},
	{graph.ErrBodyTooLong, http.StatusBadRequest},
	{graph.ErrInvalidInput, http.StatusUnprocessableEntity},
}

func statusOf(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError 将服务层错误写为响应；未识别的错误按 500 处理并上报
func writeError(c *gin.Context, err error) {
	switch statusOf(err) {
	case http.StatusNotFound:
		response.NotFound(c, err.Error())
	case http.StatusConflict:
		response.Conflict(c, err.Error())
	case http.StatusBadRequest:
		response.BadRequest(c, err.Error())
	case http.StatusUnprocessableEntity:
		response.UnprocessableEntity(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

// bindError 请求体格式或字段校验失败
func bindError(c *gin.Context, err error) {
	response.UnprocessableEntity(c, err.Error())
}
