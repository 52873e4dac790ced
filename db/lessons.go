package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"lawpath_backend/categories"
	"lawpath_backend/models"
)

// ErrLessonNotFound is returned when an id does not resolve to a
// lesson, including ids that are not a valid identifier shape.
var ErrLessonNotFound = errors.New("audio lesson not found")

// FileRemover deletes a stored asset by its public URL. Satisfied by
// storage.AudioStore.
type FileRemover interface {
	Remove(publicURL string) error
}

// LessonStore validates assembled lessons against schema invariants and
// persists them. Reads return the tree unchanged.
type LessonStore struct {
	db       *sql.DB
	registry *categories.Registry
	files    FileRemover
}

func NewLessonStore(database *sql.DB, registry *categories.Registry, files FileRemover) *LessonStore {
	return &LessonStore{db: database, registry: registry, files: files}
}

// ListOptions filters and pages a lesson listing.
type ListOptions struct {
	Page     int
	Limit    int
	Category string
	IsActive *bool
	Search   string
}

// ListResult mirrors the paginated response shape clients already
// consume.
type ListResult struct {
	Items      []*models.Lesson `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

const lessonColumns = `id, title, head_title, description, category, tags, sections,
	english_audio, hindi_audio,
	english_transcription, hindi_transcription, easy_english_transcription, easy_hindi_transcription,
	uploaded_by, is_active, audio_url, file_name, file_size, duration, transcript, language,
	created_at, updated_at`

func (s *LessonStore) validate(l *models.Lesson) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if l.Category != "" && !s.registry.IsValid(l.Category) {
		return &models.ValidationError{
			Field:   "category",
			Message: "invalid category, must be one of: " + strings.Join(s.registry.IDs(), ", "),
		}
	}
	return nil
}

// Create validates and inserts a new lesson, filling in its id and
// timestamps.
func (s *LessonStore) Create(ctx context.Context, l *models.Lesson) error {
	if err := s.validate(l); err != nil {
		return err
	}
	sections, err := marshalSections(l.Sections)
	if err != nil {
		return err
	}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO audio_lessons (
			title, head_title, description, category, tags, sections,
			english_audio, hindi_audio,
			english_transcription, hindi_transcription, easy_english_transcription, easy_hindi_transcription,
			uploaded_by, is_active, audio_url, file_name, file_size, duration, transcript, language
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, created_at, updated_at`,
		l.Title, nullString(l.HeadTitle), nullString(l.Description), nullString(l.Category),
		pq.Array(l.Tags), sections,
		marshalVariant(l.EnglishAudio), marshalVariant(l.HindiAudio),
		nullString(l.EnglishTranscription), nullString(l.HindiTranscription),
		nullString(l.EasyEnglishTranscription), nullString(l.EasyHindiTranscription),
		nullInt(l.UploadedBy), l.IsActive,
		nullString(l.AudioURL), nullString(l.FileName), nullInt64(l.FileSize),
		nullInt64(int64(l.Duration)), nullString(l.Transcript), nullString(l.Language),
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting audio lesson: %w", err)
	}
	return nil
}

// GetByID fetches one lesson. A malformed id reads as not found, the
// same way an unknown one does.
func (s *LessonStore) GetByID(ctx context.Context, id string) (*models.Lesson, error) {
	lessonID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT `+lessonColumns+` FROM audio_lessons WHERE id = $1`, lessonID)
	lesson, err := scanLesson(row)
	if err == sql.ErrNoRows {
		return nil, ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching audio lesson %d: %w", lessonID, err)
	}
	return lesson, nil
}

// Update validates and replaces the stored record wholesale.
func (s *LessonStore) Update(ctx context.Context, id string, l *models.Lesson) error {
	lessonID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.validate(l); err != nil {
		return err
	}
	sections, err := marshalSections(l.Sections)
	if err != nil {
		return err
	}
	err = s.db.QueryRowContext(ctx, `
		UPDATE audio_lessons SET
			title = $1, head_title = $2, description = $3, category = $4, tags = $5, sections = $6,
			english_audio = $7, hindi_audio = $8,
			english_transcription = $9, hindi_transcription = $10,
			easy_english_transcription = $11, easy_hindi_transcription = $12,
			is_active = $13, audio_url = $14, file_name = $15, file_size = $16,
			duration = $17, transcript = $18, language = $19,
			updated_at = NOW()
		WHERE id = $20
		RETURNING id, created_at, updated_at`,
		l.Title, nullString(l.HeadTitle), nullString(l.Description), nullString(l.Category),
		pq.Array(l.Tags), sections,
		marshalVariant(l.EnglishAudio), marshalVariant(l.HindiAudio),
		nullString(l.EnglishTranscription), nullString(l.HindiTranscription),
		nullString(l.EasyEnglishTranscription), nullString(l.EasyHindiTranscription),
		l.IsActive, nullString(l.AudioURL), nullString(l.FileName), nullInt64(l.FileSize),
		nullInt64(int64(l.Duration)), nullString(l.Transcript), nullString(l.Language),
		lessonID,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrLessonNotFound
	}
	if err != nil {
		return fmt.Errorf("updating audio lesson %d: %w", lessonID, err)
	}
	return nil
}

// UpdateSections replaces only the sections tree of a lesson and
// returns the updated record.
func (s *LessonStore) UpdateSections(ctx context.Context, id string, sections []models.AudioSection) (*models.Lesson, error) {
	lessonID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateSections(sections); err != nil {
		return nil, err
	}
	raw, err := marshalSections(sections)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		UPDATE audio_lessons SET sections = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+lessonColumns, raw, lessonID)
	lesson, err := scanLesson(row)
	if err == sql.ErrNoRows {
		return nil, ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating sections of audio lesson %d: %w", lessonID, err)
	}
	return lesson, nil
}

// Delete removes the database record and then best-effort deletes every
// audio file the lesson tree references. The record removal is
// authoritative: file cleanup failures are logged and swallowed.
func (s *LessonStore) Delete(ctx context.Context, id string) error {
	lesson, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM audio_lessons WHERE id = $1`, lesson.ID); err != nil {
		return fmt.Errorf("deleting audio lesson %d: %w", lesson.ID, err)
	}
	for _, u := range lesson.CollectAudioURLs() {
		if err := s.files.Remove(u); err != nil {
			log.Printf("Failed to delete audio file %s for lesson %d: %v", u, lesson.ID, err)
		}
	}
	return nil
}

// List pages lessons, optionally filtered by active flag and category,
// with free-text search over title, description, transcript and tags.
func (s *LessonStore) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}

	var conds []string
	var args []interface{}
	if opts.IsActive != nil {
		args = append(args, *opts.IsActive)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if opts.Category != "" {
		args = append(args, opts.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(title ILIKE $%d OR description ILIKE $%d OR transcript ILIKE $%d
				OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $%d))`,
			n, n, n, n))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM audio_lessons`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting audio lessons: %w", err)
	}

	args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+lessonColumns+` FROM audio_lessons`+where+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, fmt.Errorf("listing audio lessons: %w", err)
	}
	defer rows.Close()

	items := make([]*models.Lesson, 0)
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning audio lesson: %w", err)
		}
		items = append(items, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing audio lessons: %w", err)
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}
	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages,
	}, nil
}

// CategoryCounts aggregates, per category id, how many active lessons
// reference it.
func (s *LessonStore) CategoryCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM audio_lessons
		WHERE is_active = TRUE AND category IS NOT NULL AND category <> ''
		GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func parseID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n < 1 {
		return 0, ErrLessonNotFound
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLesson(row rowScanner) (*models.Lesson, error) {
	var l models.Lesson
	var headTitle, description, category sql.NullString
	var englishAudio, hindiAudio, sections []byte
	var enTr, hiTr, easyEnTr, easyHiTr sql.NullString
	var uploadedBy sql.NullInt64
	var audioURL, fileName, transcript, language sql.NullString
	var fileSize, duration sql.NullInt64

	err := row.Scan(
		&l.ID, &l.Title, &headTitle, &description, &category,
		pq.Array(&l.Tags), &sections,
		&englishAudio, &hindiAudio,
		&enTr, &hiTr, &easyEnTr, &easyHiTr,
		&uploadedBy, &l.IsActive,
		&audioURL, &fileName, &fileSize, &duration, &transcript, &language,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.HeadTitle = headTitle.String
	l.Description = description.String
	l.Category = category.String
	l.EnglishTranscription = enTr.String
	l.HindiTranscription = hiTr.String
	l.EasyEnglishTranscription = easyEnTr.String
	l.EasyHindiTranscription = easyHiTr.String
	l.AudioURL = audioURL.String
	l.FileName = fileName.String
	l.FileSize = fileSize.Int64
	l.Duration = int(duration.Int64)
	l.Transcript = transcript.String
	l.Language = language.String
	if uploadedBy.Valid {
		id := int(uploadedBy.Int64)
		l.UploadedBy = &id
	}
	if l.Tags == nil {
		l.Tags = []string{}
	}

	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &l.Sections); err != nil {
			return nil, fmt.Errorf("decoding stored sections: %w", err)
		}
	}
	if l.Sections == nil {
		l.Sections = []models.AudioSection{}
	}
	if v, err := unmarshalVariant(englishAudio); err != nil {
		return nil, err
	} else {
		l.EnglishAudio = v
	}
	if v, err := unmarshalVariant(hindiAudio); err != nil {
		return nil, err
	} else {
		l.HindiAudio = v
	}
	return &l, nil
}

func marshalSections(sections []models.AudioSection) ([]byte, error) {
	if sections == nil {
		sections = []models.AudioSection{}
	}
	raw, err := json.Marshal(sections)
	if err != nil {
		return nil, fmt.Errorf("encoding sections: %w", err)
	}
	return raw, nil
}

func marshalVariant(v *models.AudioVariant) interface{} {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

func unmarshalVariant(raw []byte) (*models.AudioVariant, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var v models.AudioVariant
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decoding stored audio variant: %w", err)
	}
	return &v, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
