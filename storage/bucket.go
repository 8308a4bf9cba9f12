package storage

import (
	"os"

	"attendance/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type BucketType uint8

const (
	BucketTypeFile BucketType = 0
	BucketTypeS3   BucketType = 1
)

const (
	// Pre-created locations within each bucket
	LocationStudents = "/students" // enrollment reference photos
	LocationFrames   = "/frames"   // submitted frames kept for troubleshooting
)

// Bucket is a place where photos live - a local directory or an S3 bucket.
type Bucket struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int64
	UpdatedAt     int64
	Name          string `gorm:"type:varchar(200)"`
	BucketType    BucketType
	Path          string // Path on a drive or a prefix in a S3 bucket
	Endpoint      string // S3 only
	Region        string // S3 only
	S3Key         string // S3 only
	S3Secret      string // S3 only
	SSEEncryption string // S3 only, e.g. "AES256"
}

func (b *Bucket) Create() error {
	err := db.Instance.Create(b).Error
	if err != nil {
		return err
	}
	if b.BucketType == BucketTypeFile {
		// Pre-create locations on disk
		if err = os.MkdirAll(b.Path+LocationStudents, 0777); err != nil {
			return err
		}
		if err = os.MkdirAll(b.Path+LocationFrames, 0777); err != nil {
			return err
		}
	}
	return nil
}

// GetRemotePath prefixes the object path in case of S3 buckets.
func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return b.Path + "/" + path
}

// CreateSVC returns an S3 client for the bucket.
func (b *Bucket) CreateSVC() *s3.S3 {
	cfg := aws.Config{
		Credentials: credentials.NewStaticCredentials(b.S3Key, b.S3Secret, ""),
		Region:      aws.String(b.Region),
	}
	if b.Endpoint != "" {
		cfg.Endpoint = aws.String(b.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	return s3.New(session.Must(session.NewSession(&cfg)))
}
