package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	storage_go "github.com/supabase-community/storage-go"
)

var (
	ErrBucketUnavailable     = errors.New("storage bucket unavailable")
	ErrDuplicatePath         = errors.New("object already exists")
	ErrUploadPermission      = errors.New("permission denied by storage policy")
	ErrUploadUnauthenticated = errors.New("authentication required to upload")
)

const cacheControlSeconds = "3600"

type UploadedObject struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
}

// Storage wraps the hosted backend's object storage client.
type Storage struct {
	baseURL string
	client  *storage_go.Client
	now     func() time.Time
	log     *logrus.Entry
}

type StorageOption func(*Storage)

func WithClock(now func() time.Time) StorageOption {
	return func(s *Storage) { s.now = now }
}

func NewStorage(baseURL, apiKey string, log *logrus.Logger, opts ...StorageOption) *Storage {
	baseURL = strings.TrimRight(baseURL, "/")
	s := &Storage{
		baseURL: baseURL,
		client:  storage_go.NewClient(baseURL+"/storage/v1", apiKey, map[string]string{"apikey": apiKey}),
		now:     time.Now,
		log:     log.WithField("component", "storage"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckBucket proves the bucket is reachable before anything is sent.
func (s *Storage) CheckBucket(ctx context.Context, bucket string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.client.GetBucket(bucket); err != nil {
		return &RemoteError{Op: "bucket", Table: bucket, Kind: KindTransport, Message: "Storage bucket error: " + err.Error(), Err: ErrBucketUnavailable}
	}
	return nil
}

// UploadFile stores body at path. A path that is already taken is retried
// once under a timestamped name.
func (s *Storage) UploadFile(ctx context.Context, bucket, path string, body []byte, contentType string) (UploadedObject, error) {
	if err := s.CheckBucket(ctx, bucket); err != nil {
		return UploadedObject{}, err
	}

	err := s.upload(ctx, bucket, path, body, contentType)
	if errors.Is(err, ErrDuplicatePath) {
		retry := TimestampedPath(path, s.now())
		s.log.WithFields(logrus.Fields{"path": path, "retry": retry}).Info("object exists, retrying under a new name")
		path = retry
		err = s.upload(ctx, bucket, path, body, contentType)
	}
	if err != nil {
		return UploadedObject{}, err
	}
	return UploadedObject{Bucket: bucket, Path: path}, nil
}

func (s *Storage) upload(ctx context.Context, bucket, path string, body []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cacheControl := cacheControlSeconds
	upsert := false
	_, err := s.client.UploadFile(bucket, path, bytes.NewReader(body), storage_go.FileOptions{
		ContentType:  &contentType,
		CacheControl: &cacheControl,
		Upsert:       &upsert,
	})
	if err != nil {
		return uploadError(bucket, err)
	}
	return nil
}

// uploadError maps a storage failure by its message, which carries the
// backend's status text.
func uploadError(bucket string, err error) error {
	msg := err.Error()
	lower := strings.ToLower(msg)

	re := &RemoteError{Op: "upload", Table: bucket, Message: msg}
	switch {
	case strings.Contains(lower, "duplicate") || strings.Contains(lower, "already exists"):
		re.Kind, re.Err = KindDuplicate, ErrDuplicatePath
	case strings.Contains(lower, "not authenticated") || strings.Contains(lower, "jwt"):
		re.Kind, re.Err = KindPermission, ErrUploadUnauthenticated
	case strings.Contains(lower, "policy") || strings.Contains(lower, "unauthorized"):
		re.Kind, re.Err = KindPermission, ErrUploadPermission
	case strings.Contains(lower, "bucket not found"):
		re.Kind, re.Err = KindTransport, ErrBucketUnavailable
	default:
		re.Kind, re.Err = KindTransport, err
	}
	return re
}

// DeleteFile removes path. Failures are logged and never returned.
func (s *Storage) DeleteFile(ctx context.Context, bucket, path string) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.client.RemoveFile(bucket, []string{path}); err != nil {
		s.log.WithError(err).WithField("path", path).Warn("delete object failed")
	}
}

func (s *Storage) PublicURL(bucket, path string) string {
	return s.client.GetPublicUrl(bucket, path).SignedURL
}

var extensionPattern = regexp.MustCompile(`(\.[^./]+)$`)

// TimestampedPath inserts _<epoch-millis> before the extension of path.
func TimestampedPath(path string, now time.Time) string {
	suffix := fmt.Sprintf("_%d", now.UnixMilli())
	if extensionPattern.MatchString(path) {
		return extensionPattern.ReplaceAllString(path, suffix+"$1")
	}
	return path + suffix
}
