package s3

import (
	"io"
	"log"
	"mime"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

// Asset is what the rest of the app stores for an uploaded file: the public
// URL plus the opaque object key needed to delete it later.
type Asset struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type Store struct {
	bucket   string
	uploader *s3manager.Uploader
	client   *awss3.S3
}

func NewStore(region, bucket string) *Store {
	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(region),
	}))
	return &Store{
		bucket:   bucket,
		uploader: s3manager.NewUploader(sess),
		client:   awss3.New(sess),
	}
}

// Upload stores the file under a fresh uuid-prefixed key so repeated uploads
// of the same filename never collide.
func (s *Store) Upload(file io.Reader, filename, kind string) (Asset, error) {
	key := kind + "/" + uuid.New().String() + "/" + filepath.Base(filename)
	contentType := mime.TypeByExtension(filepath.Ext(filename))

	result, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("Failed to upload file to S3: %v", err)
		return Asset{}, err
	}
	return Asset{URL: result.Location, Key: key}, nil
}

func (s *Store) Delete(key string) error {
	_, err := s.client.DeleteObject(&awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("Failed to delete %s from S3: %v", key, err)
	}
	return err
}

// ProbeDuration asks ffprobe for the duration, in seconds, of a local media
// file. Best effort: 0 when ffprobe is unavailable or the file is odd.
func ProbeDuration(path string) float64 {
	out, err := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0
	}
	return seconds
}
