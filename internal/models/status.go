package models

// PaymentStatus is the derived due state of one student
type PaymentStatus struct {
	StudentName string `json:"student_name"`
	GroupName   string `json:"group_name"`
	DueDate     string `json:"due_date"` // Format: YYYY-MM-DD
	DiffDays    int    `json:"diff_days"`
	Days        int    `json:"days"`
}

// PaymentStatusReport splits students into overdue and upcoming lists
type PaymentStatusReport struct {
	Today    string          `json:"today"` // date the lists were computed for
	Overdue  []PaymentStatus `json:"overdue"`
	Upcoming []PaymentStatus `json:"upcoming"`
}

// Empty reports whether nobody needs a reminder.
func (r PaymentStatusReport) Empty() bool {
	return len(r.Overdue) == 0 && len(r.Upcoming) == 0
}
