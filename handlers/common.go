package handlers

import (
	"attendance/faces"
	"attendance/recognition"
)

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors
	OKResponse            = Response{}
	NoImageResponse       = Response{"No image provided"}
	InvalidImageResponse  = Response{"Invalid image format"}
	NoFaceResponse        = Response{"No face detected"}
	MissingFieldsResponse = Response{"Missing fields"}
	DBError1Response      = Response{"DB Error 1"}
	DBError2Response      = Response{"DB Error 2"}
)

var (
	detector faces.Detector
	pipeline *recognition.Pipeline
)

// Init wires the shared capabilities. Must be called once before the router
// starts serving.
func Init(d faces.Detector, p *recognition.Pipeline) {
	detector = d
	pipeline = p
}
