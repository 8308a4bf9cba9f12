package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"attendance/match"
	"attendance/models"
	"attendance/recognition"

	"github.com/gin-gonic/gin"
)

// RecognizeFrame accepts one camera frame and returns the per-face match
// results plus summary counts. Newly credited students are also pushed to
// the websocket subscribers of the session.
func RecognizeFrame(c *gin.Context, user *models.User) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, NoImageResponse)
		return
	}
	reader, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, InvalidImageResponse)
		return
	}
	image, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, InvalidImageResponse)
		return
	}

	sessionID := c.DefaultPostForm("session_id", "unknown_session")
	recordedBy := c.DefaultPostForm("recorded_by", user.Email)
	alreadyRecognized := map[string]bool{}
	for _, id := range c.PostFormArray("already_recognized") {
		alreadyRecognized[id] = true
	}

	summary, err := pipeline.ProcessFrame(c.Request.Context(), recognition.Frame{
		Image:             image,
		SessionID:         sessionID,
		RecordedBy:        recordedBy,
		AlreadyRecognized: alreadyRecognized,
	})
	switch {
	case err == nil:
	case errors.Is(err, recognition.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, InvalidImageResponse)
		return
	case errors.Is(err, recognition.ErrNoFaceDetected):
		c.JSON(http.StatusBadRequest, NoFaceResponse)
		return
	case errors.Is(err, match.ErrDimensionMismatch), errors.Is(err, models.ErrInvalidEmbedding):
		// A corrupted roster or a misconfigured embedder, not an unknown face
		log.Printf("recognition pipeline misconfigured: %v", err)
		c.JSON(http.StatusInternalServerError, Response{"Roster embedding mismatch"})
		return
	default:
		log.Printf("recognition failed: %v", err)
		c.JSON(http.StatusInternalServerError, Response{"Recognition failed"})
		return
	}

	BroadcastNewlyMarked(sessionID, summary)
	c.JSON(http.StatusOK, summary)
}
