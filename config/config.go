package config

import (
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

var (
	TLS_DOMAINS        = ""              // e.g. "attendance.example.com"
	MYSQL_DSN          = ""              // MySQL will be used if this is set
	SQLITE_FILE        = "attendance.db" // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS       = "0.0.0.0:8080"
	SESSION_KEY        = "" // Random per process start when unset, which logs everyone out on restart
	ADMIN_EMAIL        = "admin@localhost"
	ADMIN_PASSWORD     = ""     // Random and printed once when unset and no user exists yet
	TMP_DIR            = "/tmp" // Used for temporary local copies of S3 objects
	DEFAULT_BUCKET_DIR = ""     // Used for creating the initial photo bucket
	DEBUG_MODE         = true
	FACE_MODELS_DIR    = "models" // dlib model files for go-face
	FACE_DETECT_CNN    = false    // Use CNN face detection (as opposed to HOG). Much slower, supposedly more accurate at different angles
	// Euclidean distance below which two faces are considered the same person
	FACE_MATCH_THRESHOLD   = 0.6
	MAX_FACES_PER_FRAME    = 10   // Cap on faces matched in a single frame
	DETECT_TIMEOUT_SECONDS = 10   // Per detection call
	DETECT_UPSCALE         = true // Include a 2x upscaled pass in the detection ladder
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvString("ADMIN_EMAIL", &ADMIN_EMAIL)
	readEnvString("ADMIN_PASSWORD", &ADMIN_PASSWORD)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("FACE_MODELS_DIR", &FACE_MODELS_DIR)
	readEnvBool("FACE_DETECT_CNN", &FACE_DETECT_CNN)
	readEnvFloat("FACE_MATCH_THRESHOLD", &FACE_MATCH_THRESHOLD)
	readEnvInt("MAX_FACES_PER_FRAME", &MAX_FACES_PER_FRAME)
	readEnvInt("DETECT_TIMEOUT_SECONDS", &DETECT_TIMEOUT_SECONDS)
	readEnvBool("DETECT_UPSCALE", &DETECT_UPSCALE)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvFloat(name string, value *float64) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return
	}
	*value = f
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
