package tasks

// TaskStatus - статус задачи.
type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "InProgress"
	StatusCompleted  TaskStatus = "Completed"
	StatusCanceled   TaskStatus = "Canceled"
)

// Statuses - все статусы в порядке показа.
var Statuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCanceled}

// Valid сообщает, что статус входит в перечисление.
func (s TaskStatus) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// TaskPriority - приоритет задачи.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// Priorities - все приоритеты в порядке показа.
var Priorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid сообщает, что приоритет входит в перечисление.
func (p TaskPriority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// TaskItemDto - задача в том виде, в каком её отдаёт API (list/get).
//
// Содержит вычисляемые сервером поля (имена, даты создания/изменения),
// которых нет в командах. Даты - строки ISO 8601.
type TaskItemDto struct {
	ID                 string       `json:"id"`
	ProjectID          string       `json:"projectId"`
	ProjectName        string       `json:"projectName"`
	Title              string       `json:"title"`
	Description        *string      `json:"description"`
	DueDate            string       `json:"dueDate"`
	Status             TaskStatus   `json:"status"`
	Priority           TaskPriority `json:"priority"`
	CompletionDate     *string      `json:"completionDate"`
	AssignedToUserID   *string      `json:"assignedToUserId"`
	AssignedToUserName *string      `json:"assignedToUserName"`
	CreationDate       string       `json:"creationDate"`
	LastModifiedDate   string       `json:"lastModifiedDate"`
}
