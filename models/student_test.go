package models

import (
	"attendance/faces"
	"errors"
	"math"
	"testing"
)

func testEmbedding(first float64) []float64 {
	e := make([]float64, faces.Dim)
	e[0] = first
	return e
}

func TestEnrollStudent(t *testing.T) {
	student, err := EnrollStudent("S100", "Alice", testEmbedding(0.5), "student/S100.jpg")
	if err != nil {
		t.Fatalf("EnrollStudent() error = %v", err)
	}
	if student.ID == 0 {
		t.Error("EnrollStudent() did not assign a row id")
	}

	_, err = EnrollStudent("S100", "Alice again", testEmbedding(0.7), "")
	if !errors.Is(err, ErrDuplicateStudent) {
		t.Errorf("duplicate enrollment error = %v, want ErrDuplicateStudent", err)
	}
}

func TestEnrollStudentRejectsBadEmbeddings(t *testing.T) {
	tests := []struct {
		name      string
		embedding []float64
	}{
		{"too short", make([]float64, faces.Dim-1)},
		{"too long", make([]float64, faces.Dim+1)},
		{"empty", nil},
		{"nan", func() []float64 { e := testEmbedding(0); e[5] = math.NaN(); return e }()},
		{"inf", func() []float64 { e := testEmbedding(0); e[5] = math.Inf(1); return e }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EnrollStudent("S101", "Bob", tt.embedding, "")
			if !errors.Is(err, ErrInvalidEmbedding) {
				t.Errorf("EnrollStudent() error = %v, want ErrInvalidEmbedding", err)
			}
		})
	}
}

func TestAllReferencesOrderAndRoundTrip(t *testing.T) {
	first, err := EnrollStudent("S110", "Carol", testEmbedding(0.1), "")
	if err != nil {
		t.Fatalf("EnrollStudent() error = %v", err)
	}
	second, err := EnrollStudent("S111", "Dave", testEmbedding(0.2), "")
	if err != nil {
		t.Fatalf("EnrollStudent() error = %v", err)
	}

	references, err := AllReferences()
	if err != nil {
		t.Fatalf("AllReferences() error = %v", err)
	}
	var posFirst, posSecond = -1, -1
	for i, ref := range references {
		if len(ref.Embedding) != faces.Dim {
			t.Fatalf("reference %s embedding length = %d, want %d", ref.StudentID, len(ref.Embedding), faces.Dim)
		}
		switch ref.RowID {
		case first.ID:
			posFirst = i
			if ref.Embedding[0] != 0.1 {
				t.Errorf("embedding round trip = %v, want 0.1", ref.Embedding[0])
			}
		case second.ID:
			posSecond = i
		}
	}
	if posFirst == -1 || posSecond == -1 {
		t.Fatal("enrolled students missing from AllReferences()")
	}
	if posFirst > posSecond {
		t.Error("AllReferences() not ordered by row id")
	}
}

func TestUpdateStudentEmbedding(t *testing.T) {
	if _, err := EnrollStudent("S120", "Eve", testEmbedding(0.3), ""); err != nil {
		t.Fatalf("EnrollStudent() error = %v", err)
	}
	updated, err := UpdateStudentEmbedding("S120", testEmbedding(0.9), "student/S120.jpg")
	if err != nil {
		t.Fatalf("UpdateStudentEmbedding() error = %v", err)
	}
	if updated.PhotoPath != "student/S120.jpg" {
		t.Errorf("PhotoPath = %q, want updated path", updated.PhotoPath)
	}

	_, err = UpdateStudentEmbedding("S120", make([]float64, 3), "")
	if !errors.Is(err, ErrInvalidEmbedding) {
		t.Errorf("UpdateStudentEmbedding() error = %v, want ErrInvalidEmbedding", err)
	}
}
