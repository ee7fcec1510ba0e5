package http

import "net/http"

// Response 统一响应结构
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// 预定义的响应码
const (
	CodeSuccess         = 0     // 成功
	CodeError           = -1    // 通用错误
	CodeInvalidParam    = 10001 // 参数错误
	CodeNotFound        = 10004 // 资源不存在
	CodeServerError     = 10005 // 服务器内部错误
	CodeTooManyRequests = 10006 // 请求过多
	CodeUnhealthy       = 50001 // 依赖服务不可用
)

const (
	MsgSuccess      = "success"
	MsgInvalidParam = "invalid parameters"
	MsgNotFound     = "not found"
	MsgServerError  = "internal server error"
)

func NewResponse(code int, message string, data any) *Response {
	return &Response{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// Success 成功响应
func (c *Context) Success(data any) {
	c.JSON(http.StatusOK, NewResponse(CodeSuccess, MsgSuccess, data))
}

// Fail 自定义状态码与业务码的错误响应，data 用于携带错误细节
func (c *Context) Fail(status, code int, message string, data any) {
	c.JSON(status, NewResponse(code, message, data))
}

// BadRequest 400 错误请求
func (c *Context) BadRequest(message string) {
	if message == "" {
		message = MsgInvalidParam
	}
	c.JSON(http.StatusBadRequest, NewResponse(CodeInvalidParam, message, nil))
}

// NotFound 404 资源不存在
func (c *Context) NotFound(message string) {
	if message == "" {
		message = MsgNotFound
	}
	c.JSON(http.StatusNotFound, NewResponse(CodeNotFound, message, nil))
}

// InternalServerError 500 服务器内部错误
func (c *Context) InternalServerError(message string) {
	if message == "" {
		message = MsgServerError
	}
	c.JSON(http.StatusInternalServerError, NewResponse(CodeServerError, message, nil))
}

// PageResponse 列表响应
type PageResponse struct {
	List  any `json:"list"`
	Total int `json:"total"`
	Size  int `json:"size"`
}

func (c *Context) SuccessWithList(list any, total, size int) {
	c.JSON(http.StatusOK, NewResponse(CodeSuccess, MsgSuccess, &PageResponse{List: list, Total: total, Size: size}))
}
