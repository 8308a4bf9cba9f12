package faces

import (
	"context"
	"fmt"

	"github.com/Kagami/go-face"
)

// Recognizer is the go-face (dlib) backed Detector. It is constructed once
// at startup and injected wherever detection is needed; Close releases the
// underlying dlib resources.
type Recognizer struct {
	rec *face.Recognizer
	cnn bool
}

// NewRecognizer loads the dlib models from modelsDir. The directory must
// contain shape_predictor_5_face_landmarks.dat and
// dlib_face_recognition_resnet_model_v1.dat, plus mmod_human_face_detector.dat
// when cnn is enabled.
func NewRecognizer(modelsDir string, cnn bool) (*Recognizer, error) {
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("loading face models from %s: %w", modelsDir, err)
	}
	return &Recognizer{rec: rec, cnn: cnn}, nil
}

func (r *Recognizer) Close() {
	r.rec.Close()
}

type recognizeResult struct {
	faces []face.Face
	err   error
}

// Detect runs dlib face detection + embedding on a JPEG image. The dlib call
// cannot be interrupted; on context expiry Detect returns early and the
// in-flight call finishes in the background.
func (r *Recognizer) Detect(ctx context.Context, image []byte) ([]Observation, error) {
	done := make(chan recognizeResult, 1)
	go func() {
		var res recognizeResult
		if r.cnn {
			res.faces, res.err = r.rec.RecognizeCNN(image)
		} else {
			res.faces, res.err = r.rec.Recognize(image)
		}
		done <- res
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("face detection: %w", res.err)
		}
		observations := make([]Observation, 0, len(res.faces))
		for _, f := range res.faces {
			observations = append(observations, Observation{
				Box: Box{
					X:      f.Rectangle.Min.X,
					Y:      f.Rectangle.Min.Y,
					Width:  f.Rectangle.Dx(),
					Height: f.Rectangle.Dy(),
				},
				Embedding: descriptorToEmbedding(f.Descriptor),
			})
		}
		return observations, nil
	}
}

func descriptorToEmbedding(d face.Descriptor) []float64 {
	embedding := make([]float64, Dim)
	for i, v := range d {
		embedding[i] = float64(v)
	}
	return embedding
}
