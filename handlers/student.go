package handlers

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"attendance/config"
	"attendance/db"
	"attendance/models"
	"attendance/storage"
	"attendance/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const thumbSize = 400

type StudentInfo struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
}

// extractReferenceEmbedding runs detection on an enrollment photo and
// returns the embedding of the first face found.
func extractReferenceEmbedding(c *gin.Context, photo []byte) ([]float64, bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(config.DETECT_TIMEOUT_SECONDS)*time.Second)
	defer cancel()
	observations, err := detector.Detect(ctx, photo)
	if err != nil {
		log.Printf("enrollment detection failed: %v", err)
		c.JSON(http.StatusInternalServerError, Response{"Face detection failed"})
		return nil, false
	}
	for _, obs := range observations {
		if obs.Embedding != nil {
			return obs.Embedding, true
		}
	}
	c.JSON(http.StatusBadRequest, NoFaceResponse)
	return nil, false
}

func savePhoto(studentID string, photo []byte) string {
	store := storage.GetDefaultStorage()
	if store == nil {
		return ""
	}
	path := storage.LocationStudents[1:] + "/" + studentID + "-" + uuid.NewString() + ".jpg"
	if _, err := store.Save(path, bytes.NewReader(photo)); err != nil {
		log.Printf("Error saving photo for %s: %v", studentID, err)
		return ""
	}
	// Thumbnail alongside, same path with a suffix
	var thumb bytes.Buffer
	if _, err := utils.CreateThumb(thumbSize, bytes.NewReader(photo), &thumb); err == nil {
		if _, err = store.Save(path+".thumb.jpg", &thumb); err != nil {
			log.Printf("Error saving thumbnail for %s: %v", studentID, err)
		}
	}
	return path
}

func readPhoto(c *gin.Context) (name, studentID string, photo []byte, ok bool) {
	name = c.PostForm("name")
	studentID = c.PostForm("student_id")
	file, err := c.FormFile("photo")
	if name == "" || studentID == "" || err != nil {
		c.JSON(http.StatusBadRequest, MissingFieldsResponse)
		return "", "", nil, false
	}
	reader, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, InvalidImageResponse)
		return "", "", nil, false
	}
	defer reader.Close()
	photo, err = io.ReadAll(reader)
	if err != nil {
		c.JSON(http.StatusBadRequest, InvalidImageResponse)
		return "", "", nil, false
	}
	return name, studentID, photo, true
}

// StudentRegister enrolls a student from a single reference photo.
func StudentRegister(c *gin.Context, user *models.User) {
	name, studentID, photo, ok := readPhoto(c)
	if !ok {
		return
	}
	embedding, ok := extractReferenceEmbedding(c, photo)
	if !ok {
		return
	}
	student, err := models.EnrollStudent(studentID, name, embedding, savePhoto(studentID, photo))
	if err == models.ErrDuplicateStudent {
		c.JSON(http.StatusConflict, Response{"Student already enrolled"})
		return
	}
	if err != nil {
		log.Printf("Error enrolling %s: %v", studentID, err)
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusCreated, StudentInfo{StudentID: student.StudentID, Name: student.Name})
}

// StudentReRegister replaces the reference embedding of an enrolled student.
func StudentReRegister(c *gin.Context, user *models.User) {
	name, studentID, photo, ok := readPhoto(c)
	if !ok {
		return
	}
	log.Printf("Re-enrolling %s (%s)", studentID, name)
	embedding, ok := extractReferenceEmbedding(c, photo)
	if !ok {
		return
	}
	student, err := models.UpdateStudentEmbedding(studentID, embedding, savePhoto(studentID, photo))
	if err != nil {
		log.Printf("Error re-enrolling %s: %v", studentID, err)
		c.JSON(http.StatusNotFound, Response{"Student not found"})
		return
	}
	c.JSON(http.StatusOK, StudentInfo{StudentID: student.StudentID, Name: student.Name})
}

func StudentList(c *gin.Context, user *models.User) {
	rows, err := db.Instance.Table("students").Select("student_id, name").Order("id ASC").Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []StudentInfo{}
	for rows.Next() {
		info := StudentInfo{}
		if err = rows.Scan(&info.StudentID, &info.Name); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}

type StudentPhotoRequest struct {
	ID    string `form:"id" binding:"required"`
	Thumb bool   `form:"thumb"`
}

func StudentPhoto(c *gin.Context, user *models.User) {
	r := StudentPhotoRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var student models.Student
	if db.Instance.First(&student, "student_id = ?", r.ID).Error != nil || student.PhotoPath == "" {
		c.JSON(http.StatusNotFound, Response{"Not found"})
		return
	}
	store := storage.GetDefaultStorage()
	if store == nil {
		c.JSON(http.StatusNotFound, Response{"Not found"})
		return
	}
	path := student.PhotoPath
	if r.Thumb {
		path += ".thumb.jpg"
	}
	store.Serve(path, c.Request, c.Writer)
}
