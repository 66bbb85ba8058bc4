// Package model provides data transfer objects for statistics module.
package model

// AssigneeStatistics is the workload of one team member.
type AssigneeStatistics struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	AssignedCount  int    `json:"assigned_count"`
	CompletedCount int    `json:"completed_count"`
}

// AssigneesStatisticsResponse represents response for assignees statistics.
type AssigneesStatisticsResponse struct {
	TeamID    string               `json:"team_id"`
	Assignees []AssigneeStatistics `json:"assignees"`
	Total     int                  `json:"total"`
}

// TaskStatistics summarizes the tasks of a team.
type TaskStatistics struct {
	TotalTasks             int     `json:"total_tasks"`
	TodoTasks              int     `json:"todo_tasks"`
	InProgressTasks        int     `json:"in_progress_tasks"`
	CompletedTasks         int     `json:"completed_tasks"`
	OverdueTasks           int     `json:"overdue_tasks"`
	UnassignedTasks        int     `json:"unassigned_tasks"`
	AverageSubtasksPerTask float64 `json:"average_subtasks_per_task"`
}

// TaskStatisticsResponse represents response for task statistics.
type TaskStatisticsResponse struct {
	TeamID     string         `json:"team_id"`
	Statistics TaskStatistics `json:"statistics"`
}

// Query selects the team to report on.
type Query struct {
	TeamID string `form:"team_id" binding:"required"`
}
