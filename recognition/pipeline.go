// Package recognition turns one camera frame into attendance decisions.
// It runs a ladder of detection strategies over the frame, matches every
// found face against a roster snapshot and credits each matched student at
// most once per session.
package recognition

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log"
	"time"

	"attendance/faces"
	"attendance/match"
	"attendance/metrics"
	"attendance/models"

	"github.com/google/uuid"
)

var (
	ErrInvalidImage   = errors.New("could not decode image")
	ErrNoFaceDetected = errors.New("no face detected")
)

// Store provides the roster snapshot and the attendance log. RecordAttendance
// must be atomic: when two concurrent calls target the same student and
// session, exactly one may succeed and the other must return
// models.ErrAlreadyRecorded.
type Store interface {
	AllReferences() ([]models.Reference, error)
	HasAttendance(studentRowID uint64, sessionID string) (bool, error)
	RecordAttendance(studentRowID uint64, sessionID, recordedBy string) error
}

// DBStore is the gorm-backed Store used in production.
type DBStore struct{}

func (DBStore) AllReferences() ([]models.Reference, error) {
	return models.AllReferences()
}

func (DBStore) HasAttendance(studentRowID uint64, sessionID string) (bool, error) {
	return models.HasAttendance(studentRowID, sessionID)
}

func (DBStore) RecordAttendance(studentRowID uint64, sessionID, recordedBy string) error {
	_, err := models.RecordAttendance(studentRowID, sessionID, recordedBy)
	return err
}

type Config struct {
	Threshold     float64       // accept a match only below this distance
	MaxFaces      int           // cap on faces matched per frame
	DetectTimeout time.Duration // per detection call
	Upscale       bool          // include the 2x upscale strategy
}

type Pipeline struct {
	detector   faces.Detector
	store      Store
	cfg        Config
	strategies []Strategy
}

func NewPipeline(detector faces.Detector, store Store, cfg Config) *Pipeline {
	return &Pipeline{
		detector:   detector,
		store:      store,
		cfg:        cfg,
		strategies: DefaultStrategies(cfg.Upscale),
	}
}

// Frame is one submitted image plus its session context. AlreadyRecognized
// carries student codes the client has already seen credited in this
// session, so repeated frames skip the attendance lookup for them.
type Frame struct {
	Image             []byte
	SessionID         string
	RecordedBy        string
	AlreadyRecognized map[string]bool
}

const (
	StatusNewlyMarked   = "newly_marked"
	StatusAlreadyMarked = "already_marked"
	StatusUnknown       = "unknown"
)

type Result struct {
	StudentID    string     `json:"student_id,omitempty"`
	Name         string     `json:"name"`
	Distance     *float64   `json:"distance"`
	Status       string     `json:"status"`
	FaceLocation *faces.Box `json:"face_location,omitempty"`
}

type Counts struct {
	TotalFaces    int `json:"total_faces_detected"`
	NewlyMarked   int `json:"newly_marked"`
	AlreadyMarked int `json:"already_marked"`
	UnknownFaces  int `json:"unknown_faces"`
}

// Summary is the per-frame aggregate. Results are ordered newly_marked
// first, then already_marked, then unknown.
type Summary struct {
	Results []Result `json:"results"`
	Counts  Counts   `json:"summary"`
}

// ProcessFrame runs the full pipeline for one frame. The roster is read once
// before matching, so every face in the frame sees the same candidate set
// even while enrollment happens concurrently. Cancellation abandons faces
// not yet processed; decisions already committed stay committed.
func (p *Pipeline) ProcessFrame(ctx context.Context, frame Frame) (*Summary, error) {
	frameID := uuid.NewString()[:8]
	img, _, err := image.Decode(bytes.NewReader(frame.Image))
	if err != nil {
		metrics.Frames.WithLabelValues("invalid_image").Inc()
		return nil, ErrInvalidImage
	}

	observations, strategy, err := p.detect(ctx, img)
	if err != nil {
		if errors.Is(err, ErrNoFaceDetected) {
			metrics.Frames.WithLabelValues("no_face").Inc()
		}
		return nil, err
	}
	log.Printf("frame %s: %d face(s) via %s strategy, session %s", frameID, len(observations), strategy, frame.SessionID)

	references, err := p.store.AllReferences()
	if err != nil {
		return nil, err
	}
	candidates := make([][]float64, len(references))
	for i, ref := range references {
		candidates[i] = ref.Embedding
	}

	if len(observations) > p.cfg.MaxFaces {
		log.Printf("frame %s: capping %d faces to %d", frameID, len(observations), p.cfg.MaxFaces)
		observations = observations[:p.cfg.MaxFaces]
	}

	var newly, already, unknown []Result
	seen := make(map[uint64]bool) // same student twice in one frame
	for _, obs := range observations {
		if ctx.Err() != nil {
			break
		}
		if obs.Embedding == nil {
			log.Printf("frame %s: dropping face at (%d,%d) without embedding", frameID, obs.Box.X, obs.Box.Y)
			continue
		}
		idx, distance, err := match.BestMatch(obs.Embedding, candidates, p.cfg.Threshold)
		if err != nil {
			return nil, err
		}
		box := obs.Box
		if idx == match.NoMatch {
			unknown = append(unknown, Result{
				Name:         "Unknown",
				Status:       StatusUnknown,
				FaceLocation: &box,
			})
			continue
		}
		ref := references[idx]
		result := Result{
			StudentID:    ref.StudentID,
			Name:         ref.Name,
			Distance:     &distance,
			FaceLocation: &box,
		}
		status, err := p.credit(&ref, frame, seen)
		if err != nil {
			return nil, err
		}
		result.Status = status
		if status == StatusNewlyMarked {
			newly = append(newly, result)
		} else {
			already = append(already, result)
		}
		seen[ref.RowID] = true
	}

	summary := &Summary{Results: make([]Result, 0, len(newly)+len(already)+len(unknown))}
	summary.Results = append(summary.Results, newly...)
	summary.Results = append(summary.Results, already...)
	summary.Results = append(summary.Results, unknown...)
	summary.Counts = Counts{
		TotalFaces:    len(newly) + len(already) + len(unknown),
		NewlyMarked:   len(newly),
		AlreadyMarked: len(already),
		UnknownFaces:  len(unknown),
	}
	metrics.Frames.WithLabelValues("ok").Inc()
	metrics.Faces.WithLabelValues(StatusNewlyMarked).Add(float64(len(newly)))
	metrics.Faces.WithLabelValues(StatusAlreadyMarked).Add(float64(len(already)))
	metrics.Faces.WithLabelValues(StatusUnknown).Add(float64(len(unknown)))
	return summary, nil
}

// credit decides newly_marked vs already_marked for one matched student.
// The insert relies on the (student, session) unique constraint, so a lost
// race against a concurrent frame surfaces as already_marked rather than an
// error.
func (p *Pipeline) credit(ref *models.Reference, frame Frame, seen map[uint64]bool) (string, error) {
	if seen[ref.RowID] || frame.AlreadyRecognized[ref.StudentID] {
		return StatusAlreadyMarked, nil
	}
	has, err := p.store.HasAttendance(ref.RowID, frame.SessionID)
	if err != nil {
		return "", err
	}
	if has {
		return StatusAlreadyMarked, nil
	}
	err = p.store.RecordAttendance(ref.RowID, frame.SessionID, frame.RecordedBy)
	if errors.Is(err, models.ErrAlreadyRecorded) {
		return StatusAlreadyMarked, nil
	}
	if err != nil {
		return "", err
	}
	return StatusNewlyMarked, nil
}

// detect walks the strategy ladder until an attempt yields at least one
// embedding. A failed detector call is retried once per strategy; a clean
// empty result moves straight to the next strategy.
func (p *Pipeline) detect(ctx context.Context, img image.Image) ([]faces.Observation, string, error) {
	for _, strategy := range p.strategies {
		encoded, err := encodeJPEG(strategy.Transform(img))
		if err != nil {
			log.Printf("strategy %s: encode failed: %v", strategy.Name, err)
			continue
		}
		for attempt := 0; attempt < 2; attempt++ {
			metrics.DetectAttempts.WithLabelValues(strategy.Name).Inc()
			detectCtx, cancel := context.WithTimeout(ctx, p.cfg.DetectTimeout)
			observations, err := p.detector.Detect(detectCtx, encoded)
			cancel()
			if err != nil {
				if ctx.Err() != nil {
					return nil, "", ctx.Err()
				}
				log.Printf("strategy %s attempt %d: %v", strategy.Name, attempt+1, err)
				continue
			}
			for _, obs := range observations {
				if obs.Embedding != nil {
					return observations, strategy.Name, nil
				}
			}
			break
		}
	}
	return nil, "", ErrNoFaceDetected
}
