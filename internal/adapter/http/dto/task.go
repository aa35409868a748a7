package dto

type TaskItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ListTasksQuery is bound from GET /api/tasks query parameters.
type ListTasksQuery struct {
	Status string `form:"status"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
}

type DeleteTaskResponse struct {
	OK bool `json:"ok"`
}
