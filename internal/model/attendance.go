package model

type AttendanceStatus string

const (
	Present AttendanceStatus = "Present"
	Absent  AttendanceStatus = "Absent"
	Late    AttendanceStatus = "Late"
)

type AttendanceRecord struct {
	BaseModel
	StudentID uint             `gorm:"index;type:bigint unsigned;not null" json:"studentId"`
	Student   *StudentProfile  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	SubjectID uint             `gorm:"index;type:bigint unsigned;not null" json:"subjectId"`
	Subject   *Subject         `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	// Date is stored as YYYY-MM-DD; day granularity is all the roster needs.
	Date      string           `gorm:"size:10;index;not null" json:"date"`
	Status    AttendanceStatus `gorm:"size:20;index;not null" json:"status"`
	Remarks   string           `gorm:"type:text" json:"remarks"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
