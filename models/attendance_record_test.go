package models

import (
	"errors"
	"testing"
)

func TestRecordAttendanceOncePerSession(t *testing.T) {
	student, err := EnrollStudent("S200", "Frank", testEmbedding(0.4), "")
	if err != nil {
		t.Fatalf("EnrollStudent() error = %v", err)
	}

	has, err := HasAttendance(student.ID, "period-1")
	if err != nil {
		t.Fatalf("HasAttendance() error = %v", err)
	}
	if has {
		t.Fatal("HasAttendance() = true before any record")
	}

	record, err := RecordAttendance(student.ID, "period-1", "teacher@example.com")
	if err != nil {
		t.Fatalf("RecordAttendance() error = %v", err)
	}
	if record.ID == 0 {
		t.Error("RecordAttendance() did not assign a row id")
	}

	_, err = RecordAttendance(student.ID, "period-1", "teacher@example.com")
	if !errors.Is(err, ErrAlreadyRecorded) {
		t.Fatalf("second RecordAttendance() error = %v, want ErrAlreadyRecorded", err)
	}

	// A different session is a fresh slate
	if _, err = RecordAttendance(student.ID, "period-2", "teacher@example.com"); err != nil {
		t.Errorf("RecordAttendance() in new session error = %v", err)
	}

	has, err = HasAttendance(student.ID, "period-1")
	if err != nil {
		t.Fatalf("HasAttendance() error = %v", err)
	}
	if !has {
		t.Error("HasAttendance() = false after recording")
	}
}

func TestSessionAttendance(t *testing.T) {
	a, err := EnrollStudent("S210", "Grace", testEmbedding(0.6), "")
	if err != nil {
		t.Fatalf("EnrollStudent() error = %v", err)
	}
	b, err := EnrollStudent("S211", "Heidi", testEmbedding(0.7), "")
	if err != nil {
		t.Fatalf("EnrollStudent() error = %v", err)
	}
	if _, err = RecordAttendance(a.ID, "period-3", "cam-1"); err != nil {
		t.Fatalf("RecordAttendance() error = %v", err)
	}
	if _, err = RecordAttendance(b.ID, "period-3", "cam-1"); err != nil {
		t.Fatalf("RecordAttendance() error = %v", err)
	}

	records, err := SessionAttendance("period-3")
	if err != nil {
		t.Fatalf("SessionAttendance() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("SessionAttendance() returned %d records, want 2", len(records))
	}
	if records[0].Student.StudentID != "S210" || records[1].Student.StudentID != "S211" {
		t.Errorf("SessionAttendance() order/preload wrong: %q then %q",
			records[0].Student.StudentID, records[1].Student.StudentID)
	}
}
