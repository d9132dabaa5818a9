package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/sirupsen/logrus"
)

const MaxUploadSize int64 = 50 << 20

var (
	ErrFileTooLarge      = errors.New("file exceeds the 50MB limit")
	ErrMediaKindMismatch = errors.New("file type does not match the media field")
	ErrNothingUploaded   = errors.New("no files were uploaded")
	ErrUnknownMediaField = errors.New("unknown media field")
)

type MediaField string

const (
	FieldThumbnailImage MediaField = "thumbnail_image"
	FieldImages         MediaField = "images"
	FieldVideos         MediaField = "videos"
	FieldPreviewVideo   MediaField = "preview_video"
)

func ParseMediaField(s string) (MediaField, error) {
	switch f := MediaField(s); f {
	case FieldThumbnailImage, FieldImages, FieldVideos, FieldPreviewVideo:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMediaField, s)
}

// Multi reports a list-valued field.
func (f MediaField) Multi() bool {
	return f == FieldImages || f == FieldVideos
}

func (f MediaField) IsVideo() bool {
	return f == FieldVideos || f == FieldPreviewVideo
}

// Accepts checks the declared content type against the field's media kind.
func (f MediaField) Accepts(contentType string) bool {
	if f.IsVideo() {
		return strings.HasPrefix(contentType, "video/")
	}
	return strings.HasPrefix(contentType, "image/")
}

type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type FileFailure struct {
	Name string `json:"name"`
	Err  error  `json:"-"`
}

func (f FileFailure) Message() string {
	return fmt.Sprintf("Failed to upload %s: %s", f.Name, UploadErrorMessage(f.Err))
}

type UploadResult struct {
	URLs     []string      `json:"urls"`
	Failures []FileFailure `json:"failures"`
}

type ObjectStore interface {
	UploadFile(ctx context.Context, bucket, path string, body []byte, contentType string) (gateway.UploadedObject, error)
	PublicURL(bucket, path string) string
}

type MediaUploader struct {
	store  ObjectStore
	bucket string
	now    func() time.Time
	log    *logrus.Entry
}

func NewMediaUploader(store ObjectStore, bucket string, log *logrus.Logger) *MediaUploader {
	return &MediaUploader{store: store, bucket: bucket, now: time.Now, log: log.WithField("component", "media_uploader")}
}

func (u *MediaUploader) WithClock(now func() time.Time) *MediaUploader {
	u.now = now
	return u
}

// Upload sends files one after another under products/{namespace}/. A file
// that fails is reported in the result and does not stop the rest. Files
// already stored are kept when a later one fails. The error is set only
// when nothing was stored.
func (u *MediaUploader) Upload(ctx context.Context, field MediaField, namespace string, files []UploadFile) (UploadResult, error) {
	var res UploadResult
	if namespace == "" {
		namespace = "new"
	}

	for _, f := range files {
		url, err := u.uploadOne(ctx, field, namespace, f)
		if err != nil {
			u.log.WithError(err).WithFields(logrus.Fields{"file": f.Name, "field": field}).Warn("upload failed")
			res.Failures = append(res.Failures, FileFailure{Name: f.Name, Err: err})
			continue
		}
		res.URLs = append(res.URLs, url)
	}

	if len(res.URLs) == 0 {
		return res, ErrNothingUploaded
	}
	return res, nil
}

func (u *MediaUploader) uploadOne(ctx context.Context, field MediaField, namespace string, f UploadFile) (string, error) {
	if f.Size > MaxUploadSize {
		return "", ErrFileTooLarge
	}
	if !field.Accepts(f.ContentType) {
		return "", ErrMediaKindMismatch
	}

	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	body, err := io.ReadAll(io.LimitReader(rc, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.Name, err)
	}
	if int64(len(body)) > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	path := fmt.Sprintf("products/%s/%d-%s", namespace, u.now().UnixMilli(), SanitizeFileName(f.Name))
	obj, err := u.store.UploadFile(ctx, u.bucket, path, body, f.ContentType)
	if err != nil {
		return "", err
	}
	return u.store.PublicURL(u.bucket, obj.Path), nil
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

func SanitizeFileName(name string) string {
	return unsafeFileChars.ReplaceAllString(name, "_")
}

// Accumulate folds uploaded URLs into the current value of field.
// Single-valued fields take the first URL, list fields append in order.
func Accumulate(field MediaField, current interface{}, uploaded []string) interface{} {
	if len(uploaded) == 0 {
		return current
	}
	if !field.Multi() {
		return uploaded[0]
	}
	existing := ToStrings(current)
	out := make([]string, 0, len(existing)+len(uploaded))
	out = append(out, existing...)
	return append(out, uploaded...)
}

// ToStrings reads a form value that holds a list of strings.
func ToStrings(v interface{}) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	}
	return nil
}

func UploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		return "File too large. Maximum size is 50MB"
	case errors.Is(err, ErrMediaKindMismatch):
		return "Invalid file type for this field"
	case errors.Is(err, gateway.ErrBucketUnavailable):
		return "Storage bucket error. Please check that the product-media bucket exists"
	case errors.Is(err, gateway.ErrUploadPermission):
		return "Permission denied. Please check storage policies"
	case errors.Is(err, gateway.ErrUploadUnauthenticated):
		return "Authentication required. Please log in again"
	case err == nil:
		return ""
	}
	return err.Error()
}
