package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"lawpath_backend/models"
)

// allowedMimes mirrors the upload filter of the admin ingestion
// endpoint: common audio containers only.
var allowedMimes = map[string]bool{
	"audio/mpeg": true, "audio/mp3": true,
	"audio/wav": true, "audio/wave": true, "audio/x-wav": true,
	"audio/mp4": true, "audio/m4a": true, "audio/x-m4a": true,
	"audio/aac": true, "audio/ogg": true,
	"audio/webm": true, "audio/flac": true,
}

var allowedExts = map[string]bool{
	".mp3": true, ".wav": true, ".m4a": true, ".aac": true,
	".ogg": true, ".webm": true, ".flac": true,
}

// UpstreamFetchError reports a failed download for URL-based audio
// ingestion. Status is the upstream HTTP status when one was received,
// 0 otherwise.
type UpstreamFetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *UpstreamFetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching audio from %s: upstream returned %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetching audio from %s: %v", e.URL, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// AudioStore writes audio assets under a local directory that is served
// statically. The public path it returns ("/uploads/audio/<name>") is
// what gets persisted in AudioVariant.URL.
type AudioStore struct {
	dir      string // local directory, e.g. "uploads/audio"
	maxBytes int64
	client   *http.Client
}

// NewAudioStore creates the store and its backing directory.
func NewAudioStore(dir string, maxBytes int64, fetchTimeout time.Duration) (*AudioStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating audio directory: %w", err)
	}
	return &AudioStore{
		dir:      dir,
		maxBytes: maxBytes,
		client:   &http.Client{Timeout: fetchTimeout},
	}, nil
}

// SaveUpload persists one uploaded file part and returns its variant
// metadata. The stored name is <prefix>-<uuid><ext> so concurrent
// uploads never collide.
func (s *AudioStore) SaveUpload(fh *multipart.FileHeader, prefix string) (models.AudioVariant, error) {
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return models.AudioVariant{}, &models.ValidationError{
			Field:   fh.Filename,
			Message: fmt.Sprintf("audio file exceeds the %d byte limit", s.maxBytes),
		}
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] && !allowedMimes[fh.Header.Get("Content-Type")] {
		return models.AudioVariant{}, &models.ValidationError{
			Field:   fh.Filename,
			Message: "only audio files are allowed",
		}
	}
	if !allowedExts[ext] {
		ext = extFromMime(fh.Header.Get("Content-Type"))
	}

	src, err := fh.Open()
	if err != nil {
		return models.AudioVariant{}, fmt.Errorf("opening upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	name := storedName(prefix, ext)
	size, err := s.write(name, src)
	if err != nil {
		return models.AudioVariant{}, err
	}
	return models.AudioVariant{
		URL:      s.publicURL(name),
		FileName: fh.Filename,
		FileSize: size,
	}, nil
}

// FetchURL downloads remote audio and persists it exactly as if it had
// been uploaded, so URL-based and upload-based ingestion produce
// equivalent variants.
func (s *AudioStore) FetchURL(ctx context.Context, rawURL, prefix string) (models.AudioVariant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return models.AudioVariant{}, &UpstreamFetchError{URL: rawURL, Err: err}
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return models.AudioVariant{}, &UpstreamFetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.AudioVariant{}, &UpstreamFetchError{URL: rawURL, Status: resp.StatusCode}
	}

	original := remoteFileName(rawURL)
	ext := strings.ToLower(path.Ext(original))
	if !allowedExts[ext] {
		ext = extFromMime(resp.Header.Get("Content-Type"))
	}

	var body io.Reader = resp.Body
	if s.maxBytes > 0 {
		body = io.LimitReader(resp.Body, s.maxBytes+1)
	}
	name := storedName(prefix, ext)
	size, err := s.write(name, body)
	if err != nil {
		return models.AudioVariant{}, err
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		_ = os.Remove(filepath.Join(s.dir, name))
		return models.AudioVariant{}, &models.ValidationError{
			Field:   rawURL,
			Message: fmt.Sprintf("remote audio exceeds the %d byte limit", s.maxBytes),
		}
	}
	return models.AudioVariant{
		URL:      s.publicURL(name),
		FileName: original,
		FileSize: size,
	}, nil
}

// Remove deletes the local file behind a stored public URL. Paths that
// resolve outside the store directory are refused.
func (s *AudioStore) Remove(publicURL string) error {
	rel := strings.TrimPrefix(publicURL, "/")
	local := filepath.Clean(filepath.FromSlash(rel))
	base := filepath.Clean(s.dir)
	if local != base && !strings.HasPrefix(local, base+string(filepath.Separator)) {
		return fmt.Errorf("refusing to remove %s: outside audio directory", publicURL)
	}
	return os.Remove(local)
}

func (s *AudioStore) write(name string, src io.Reader) (int64, error) {
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return 0, fmt.Errorf("creating audio file %s: %w", name, err)
	}
	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return 0, fmt.Errorf("writing audio file %s: %w", name, err)
	}
	return size, nil
}

func (s *AudioStore) publicURL(name string) string {
	return "/" + path.Join(filepath.ToSlash(s.dir), name)
}

func storedName(prefix, ext string) string {
	if prefix == "" {
		prefix = "audio"
	}
	return prefix + "-" + uuid.NewString() + ext
}

func remoteFileName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || path.Base(u.Path) == "/" || path.Base(u.Path) == "." {
		return "remote-audio"
	}
	return path.Base(u.Path)
}

func extFromMime(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".mp3"
	}
	switch mt {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/wave", "audio/x-wav":
		return ".wav"
	case "audio/mp4", "audio/m4a", "audio/x-m4a":
		return ".m4a"
	case "audio/aac":
		return ".aac"
	case "audio/ogg":
		return ".ogg"
	case "audio/webm":
		return ".webm"
	case "audio/flac":
		return ".flac"
	}
	return ".mp3"
}
