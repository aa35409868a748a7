package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"advanced-todo/internal/adapter/http/dto"
	"advanced-todo/internal/adapter/http/mapper"
	"advanced-todo/internal/adapter/http/middleware"
	"advanced-todo/internal/adapter/http/validation"
	"advanced-todo/internal/core/domain"
	"advanced-todo/internal/core/ports"
	"advanced-todo/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	var query dto.ListTasksQuery
	// Query parameters are all optional strings, binding cannot fail on shape.
	_ = c.ShouldBindQuery(&query)

	filter := domain.NewTaskFilter(query.Status, query.Search, query.Sort)
	tasks, err := h.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		h.serverError(c, "failed to list tasks", err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	raw, ok := h.readPayload(c)
	if !ok {
		return
	}

	input, err := validation.BuildCreateTaskInput(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgTitleRequired)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTitle) {
			abortWithError(c, http.StatusBadRequest, apierrors.MsgTitleRequired)
			return
		}
		h.serverError(c, "failed to create task", err)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := validation.ParseTaskID(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID)
		return
	}

	raw, ok := h.readPayload(c)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, validation.BuildUpdateTaskInput(raw))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNothingToUpdate):
			abortWithError(c, http.StatusBadRequest, apierrors.MsgNothingToUpdate)
		case errors.Is(err, domain.ErrInvalidTitle):
			abortWithError(c, http.StatusBadRequest, apierrors.MsgTitleEmpty)
		case errors.Is(err, domain.ErrInvalidStatus):
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidStatus)
		case errors.Is(err, domain.ErrTaskNotFound):
			abortWithError(c, http.StatusNotFound, apierrors.MsgTaskNotFound)
		default:
			h.serverError(c, "failed to update task", err, zap.Int64("task_id", taskID))
		}
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := validation.ParseTaskID(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID)
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			abortWithError(c, http.StatusNotFound, apierrors.MsgTaskNotFound)
			return
		}
		h.serverError(c, "failed to delete task", err, zap.Int64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, dto.DeleteTaskResponse{OK: true})
}

func (h *TaskHandler) readPayload(c *gin.Context) (map[string]json.RawMessage, bool) {
	body, err := c.GetRawData()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return nil, false
	}
	raw, err := validation.DecodePayload(body)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return nil, false
	}
	return raw, true
}

// serverError logs the cause and answers with a generic message; storage
// details never leave the process.
func (h *TaskHandler) serverError(c *gin.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err), zap.String("request_id", middleware.GetRequestID(c)))
	zap.L().Error(msg, fields...)
	_ = c.Error(err)
	abortWithError(c, http.StatusInternalServerError, apierrors.MsgServerError)
}

func abortWithError(c *gin.Context, status int, msgKey string) {
	c.AbortWithStatusJSON(status, apierrors.CreateError(status, msgKey, middleware.GetLang(c)))
}
