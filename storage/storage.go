package storage

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"attendance/config"
	"attendance/db"
)

type StorageAPI interface {
	GetFullPath(path string) string
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
	GetBucket() *Bucket
}

var cachedStorage []StorageAPI

func Init() {
	db.Instance.AutoMigrate(&Bucket{})

	cachedStorage = []StorageAPI{}
	var buckets []Bucket
	err := db.Instance.Find(&buckets).Error
	if err != nil {
		panic(err)
	}
	if len(buckets) == 0 && config.DEFAULT_BUCKET_DIR != "" {
		bucket := Bucket{
			Name:       "photos",
			BucketType: BucketTypeFile,
			Path:       config.DEFAULT_BUCKET_DIR,
		}
		if err = bucket.Create(); err != nil {
			panic(err)
		}
		buckets = append(buckets, bucket)
	}
	log.Printf("Photo buckets found: %d", len(buckets))
	for _, bucket := range buckets {
		if bucket.BucketType == BucketTypeFile {
			cachedStorage = append(cachedStorage, NewDiskStorage(&bucket))
		} else if bucket.BucketType == BucketTypeS3 {
			cachedStorage = append(cachedStorage, NewS3Storage(&bucket))
		} else {
			panic(fmt.Sprintf("Storage type unavailable for Bucket %d", bucket.ID))
		}
	}
}

func StorageFrom(bucket *Bucket) StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().ID == bucket.ID {
			return s
		}
	}
	return nil
}

// GetDefaultStorage prefers a local disk bucket and falls back to the first
// configured one. Returns nil when no bucket is configured, in which case
// photos are simply not kept.
func GetDefaultStorage() StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().BucketType == BucketTypeFile {
			return s
		}
	}
	for _, s := range cachedStorage {
		return s
	}
	return nil
}
