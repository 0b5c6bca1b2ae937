package httpapi

import "github.com/gin-gonic/gin"

type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(c *gin.Context, statusCode int, status string, data any, message string, err error) {
	resp := APIResponse{
		Status:  status,
		Message: message,
		Data:    data,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(statusCode, resp)
}

func success(c *gin.Context, statusCode int, data any, message string) {
	respond(c, statusCode, "success", data, message, nil)
}

func fail(c *gin.Context, statusCode int, err error, message string) {
	respond(c, statusCode, "error", nil, message, err)
}
