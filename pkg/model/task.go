package model

import "time"

// Task is the fixed-shape record exported for every Google Tasks item.
// Absent optional fields are left empty. ID is never empty.
type Task struct {
	ID      string `csv:"id" json:"id"`
	Title   string `csv:"title" json:"title"`
	Updated string `csv:"updated" json:"updated"`
	Notes   string `csv:"notes" json:"notes"`
	Status  string `csv:"status" json:"status"`
}

// TaskList represents a Google Tasks task list.
type TaskList struct {
	ID      string
	Title   string
	Updated time.Time
}
