package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"user-service/internal/usecase/user"
	apperrors "user-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// Response messages
const (
	MsgUsersRetrieved  = "Users retrieved successfully"
	MsgUserRetrieved   = "User retrieved successfully"
	MsgUserCreated     = "User created successfully"
	MsgUserUpdated     = "User updated successfully"
	MsgUserDeleted     = "User deleted successfully"
	MsgInvalidBody     = "Invalid request body"
	MsgInternalFailure = "Internal server error"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// UserRequest is the body accepted by create and update.
// Values keep their decoded type so the usecase can report type errors per field.
type UserRequest struct {
	Name  any `json:"name" form:"name"`
	Email any `json:"email" form:"email"`
	Age   any `json:"age" form:"age"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

// Envelope wraps every API response
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

func toResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	}
}

// ListUsers handles GET /usuarios
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i := range resp.Users {
		users[i] = toResponse(&resp.Users[i])
	}

	count := resp.Count
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: MsgUsersRetrieved,
		Data:    users,
		Count:   &count,
	})
}

// GetUser handles GET /usuarios/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")

	u, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, Envelope{Success: true, Message: MsgUserRetrieved, Data: toResponse(u)})
}

// CreateUser handles POST /usuarios
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := bindUserRequest(c, &req); err != nil {
		h.log.Warn("invalid create user body", zap.Error(err))
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: MsgInvalidBody})
		return
	}

	u, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Envelope{Success: true, Message: MsgUserCreated, Data: toResponse(u)})
}

// UpdateUser handles PUT /usuarios/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")

	var req UserRequest
	if err := bindUserRequest(c, &req); err != nil {
		h.log.Warn("invalid update user body", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: MsgInvalidBody})
		return
	}

	u, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, Envelope{Success: true, Message: MsgUserUpdated, Data: toResponse(u)})
}

// DeleteUser handles DELETE /usuarios/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	u, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, Envelope{Success: true, Message: MsgUserDeleted, Data: toResponse(u)})
}

// bindUserRequest decodes a JSON or urlencoded body. An empty body binds to
// an empty request.
func bindUserRequest(c *gin.Context, req *UserRequest) error {
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		if v, ok := c.GetPostForm("name"); ok {
			req.Name = v
		}
		if v, ok := c.GetPostForm("email"); ok {
			req.Email = v
		}
		if v, ok := c.GetPostForm("age"); ok {
			req.Age = v
		}
		return nil
	default:
		if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
}

// handleError converts usecase errors to the response envelope
func (h *UserHandler) handleError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)
	resp := Envelope{Success: false, Message: err.Error()}

	var internal *apperrors.InternalError
	switch {
	case errors.As(err, &internal):
		resp.Message = internal.Message
		resp.Error = internal.Cause()
	case status == http.StatusInternalServerError:
		resp.Message = MsgInternalFailure
		resp.Error = err.Error()
	}

	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}

	c.JSON(status, resp)
}
