package models

// MonthlySummary represents the income and expense totals of one month
type MonthlySummary struct {
	Month     string  `json:"month"` // Format: YYYY-MM
	Income    float64 `json:"income"`
	Expenses  float64 `json:"expenses"`
	NetIncome float64 `json:"net_income"`
	Students  int     `json:"students"`
}

// GroupTotal is the income collected from one group
type GroupTotal struct {
	GroupName string  `json:"group_name"`
	Total     float64 `json:"total"`
}

// PaymentReport represents the filtered payments of a month
type PaymentReport struct {
	Month       string       `json:"month"`
	Search      string       `json:"search,omitempty"`
	Payments    []Payment    `json:"payments"`
	Count       int          `json:"count"`
	Total       float64      `json:"total"`
	GroupTotals []GroupTotal `json:"group_totals"`
}

// ExpenseReport represents the filtered expenses of a month
type ExpenseReport struct {
	Month    string    `json:"month"`
	Search   string    `json:"search,omitempty"`
	Expenses []Expense `json:"expenses"`
	Count    int       `json:"count"`
	Total    float64   `json:"total"`
}

// Analysis is a generated natural-language summary of a month
type Analysis struct {
	Month   string `json:"month"`
	Summary string `json:"summary"`
	Text    string `json:"text"`
}
