package domain

import "time"

// Report is the printable rendering of an analysis, used by the terminal reporter
type Report struct {
	Title       string
	GeneratedAt time.Time
	Sections    []ReportSection
	TotalAmount float64
	Currency    string
}

// ReportSection groups related rows under a heading
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
	Notes   []string
}

// ReportDetail is a single row of a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
