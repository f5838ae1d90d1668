package domain

// Shift defines a recurring working window employees can be assigned to.
type Shift struct {
	ShiftID   string       `json:"shiftID"` // Primary Key (e.g., UUID)
	Name      string       `json:"name"`
	StartTime string       `json:"startTime"` // "HH:MM", wall-clock local time
	EndTime   string       `json:"endTime"`   // "HH:MM", may be before StartTime for overnight shifts
	Status    RecordStatus `json:"status"`
	AuditFields
}

// LeaveType defines a category of employee leave and its yearly allowance.
type LeaveType struct {
	LeaveTypeID string       `json:"leaveTypeID"` // Primary Key (e.g., UUID)
	Name        string       `json:"name"`
	MaxDays     int          `json:"maxDays"` // Allowance per year; 0 means unlimited
	Paid        bool         `json:"paid"`
	Status      RecordStatus `json:"status"`
	AuditFields
}
