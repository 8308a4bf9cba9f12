package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Frames = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_frames_total",
		Help: "Frames processed by the recognition pipeline, by outcome.",
	}, []string{"outcome"})

	Faces = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_faces_total",
		Help: "Matched faces, by classification.",
	}, []string{"status"})

	DetectAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_detect_attempts_total",
		Help: "Detection attempts, by ladder strategy.",
	}, []string{"strategy"})
)
