package models

import (
	"attendance/db"
	"attendance/faces"
	"attendance/utils"
	"errors"
	"math"

	"gorm.io/gorm"
)

var (
	ErrDuplicateStudent = errors.New("student already enrolled")
	ErrInvalidEmbedding = errors.New("invalid face embedding")
)

type Student struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	StudentID string `gorm:"type:varchar(100);index:uniq_student_id,unique"`
	Name      string `gorm:"type:varchar(300)"`
	Embedding []byte `gorm:"type:blob"` // little-endian float64, faces.Dim values
	PhotoPath string `gorm:"type:varchar(300)"`
}

// Reference is one roster entry in matching form.
type Reference struct {
	RowID     uint64
	StudentID string
	Name      string
	Embedding []float64
}

func validEmbedding(embedding []float64) bool {
	if len(embedding) != faces.Dim {
		return false
	}
	for _, v := range embedding {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// EnrollStudent creates the student together with their reference embedding.
// The embedding is immutable afterwards; re-enrollment goes through
// UpdateStudentEmbedding which replaces it as a whole.
func EnrollStudent(studentID, name string, embedding []float64, photoPath string) (*Student, error) {
	if !validEmbedding(embedding) {
		return nil, ErrInvalidEmbedding
	}
	student := Student{
		StudentID: studentID,
		Name:      name,
		Embedding: utils.Float64ArrayToByteArray(embedding),
		PhotoPath: photoPath,
	}
	err := db.Instance.Create(&student).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateStudent
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// UpdateStudentEmbedding replaces the reference embedding of an enrolled
// student (explicit re-enrollment).
func UpdateStudentEmbedding(studentID string, embedding []float64, photoPath string) (*Student, error) {
	if !validEmbedding(embedding) {
		return nil, ErrInvalidEmbedding
	}
	var student Student
	if err := db.Instance.First(&student, "student_id = ?", studentID).Error; err != nil {
		return nil, err
	}
	student.Embedding = utils.Float64ArrayToByteArray(embedding)
	if photoPath != "" {
		student.PhotoPath = photoPath
	}
	if err := db.Instance.Save(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// AllReferences returns the full roster in primary key order. The single
// SELECT gives callers an atomic snapshot: a concurrent enrollment is either
// fully visible or not at all. Entries with a corrupted embedding blob are
// reported via ErrInvalidEmbedding so a broken roster is distinguishable
// from an unknown face.
func AllReferences() ([]Reference, error) {
	var students []Student
	if err := db.Instance.Order("id ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	references := make([]Reference, 0, len(students))
	for _, s := range students {
		embedding := utils.ByteArrayToFloat64Array(s.Embedding)
		if !validEmbedding(embedding) {
			return nil, ErrInvalidEmbedding
		}
		references = append(references, Reference{
			RowID:     s.ID,
			StudentID: s.StudentID,
			Name:      s.Name,
			Embedding: embedding,
		})
	}
	return references, nil
}
