package models

import (
	"attendance/db"
	"errors"

	"gorm.io/gorm"
)

var ErrAlreadyRecorded = errors.New("attendance already recorded for this session")

// AttendanceRecord is an append-only fact. The composite unique index is
// what guarantees at most one record per (student, session), including under
// concurrent recognition calls: RecordAttendance inserts blindly and lets
// the database reject the loser of a race.
type AttendanceRecord struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64
	StudentID  uint64  `gorm:"index:uniq_student_session,unique;priority:1"`
	Student    Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	SessionID  string  `gorm:"type:varchar(150);index:uniq_student_session,unique;priority:2"`
	RecordedBy string  `gorm:"type:varchar(150)"`
}

// HasAttendance reports whether the student was already credited in the
// session. Purely advisory: RecordAttendance stays correct without it.
func HasAttendance(studentRowID uint64, sessionID string) (bool, error) {
	var count int64
	err := db.Instance.Model(&AttendanceRecord{}).
		Where("student_id = ? AND session_id = ?", studentRowID, sessionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func RecordAttendance(studentRowID uint64, sessionID, recordedBy string) (*AttendanceRecord, error) {
	record := AttendanceRecord{
		StudentID:  studentRowID,
		SessionID:  sessionID,
		RecordedBy: recordedBy,
	}
	err := db.Instance.Create(&record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrAlreadyRecorded
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// SessionAttendance lists the records of one session, oldest first.
func SessionAttendance(sessionID string) ([]AttendanceRecord, error) {
	var records []AttendanceRecord
	err := db.Instance.Preload("Student").
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&records).Error
	return records, err
}
