package handlers

import (
	"net/http"

	"attendance/models"

	"github.com/gin-gonic/gin"
)

type AttendanceListRequest struct {
	SessionID string `form:"session_id" binding:"required"`
}

type AttendanceInfo struct {
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	Timestamp  int64  `json:"timestamp"`
	RecordedBy string `json:"recorded_by"`
}

// AttendanceList returns all records of one session, oldest first.
func AttendanceList(c *gin.Context, user *models.User) {
	r := AttendanceListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	records, err := models.SessionAttendance(r.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := make([]AttendanceInfo, 0, len(records))
	for _, record := range records {
		result = append(result, AttendanceInfo{
			StudentID:  record.Student.StudentID,
			Name:       record.Student.Name,
			Timestamp:  record.CreatedAt,
			RecordedBy: record.RecordedBy,
		})
	}
	c.JSON(http.StatusOK, result)
}
