package faces

import "context"

// Dim is the length of the face embeddings produced by the dlib resnet
// model and stored for every enrolled student.
const Dim = 128

type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Observation is one face found in a frame. Embedding is nil when the
// detector located the face but could not compute its embedding; such
// observations are dropped by the pipeline.
type Observation struct {
	Box        Box
	Confidence *float64
	Embedding  []float64
}

// Detector locates faces in an encoded image and computes their embeddings.
// Implementations must be deterministic for a fixed input and safe for
// concurrent use.
type Detector interface {
	Detect(ctx context.Context, image []byte) ([]Observation, error)
}
