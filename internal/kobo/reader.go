package kobo

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotKoboDatabase indicates the file opened fine as SQLite but does not
// contain the tables and columns a KoboReader.sqlite database is expected
// to have.
var ErrNotKoboDatabase = errors.New("not a recognized Kobo database")

// Reader provides read-only access to a KoboReader.sqlite database.
//
// The database is opened with immutable=1 and mode=ro so the connection
// never writes, never creates journal or lock side files, and does not
// contend with a connected device's own software.
type Reader struct {
	dbPath string
	db     *sql.DB
}

// NewReader opens the database at dbPath and verifies its schema.
// The returned Reader holds a read connection until Close is called.
func NewReader(dbPath string) (*Reader, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("database file not accessible: %s: %w", dbPath, err)
	}

	db, err := sql.Open("sqlite3", readOnlyDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	reader := &Reader{dbPath: dbPath, db: db}
	if err := reader.validateSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return reader, nil
}

// readOnlyDSN builds the sqlite URI for dbPath. URI filenames treat '?'
// and '#' as query/fragment delimiters, so each path segment is escaped;
// the '/' separators are kept so relative and absolute paths both work.
func readOnlyDSN(dbPath string) string {
	segs := strings.Split(dbPath, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("file:%s?immutable=1&mode=ro", strings.Join(segs, "/"))
}

// Close releases the read connection.
func (r *Reader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Path returns the database file path the reader was opened with.
func (r *Reader) Path() string {
	return r.dbPath
}

// validateSchema probes the two row sets the reader depends on. A missing
// table or column means the file is not a Kobo database of the expected
// shape and the whole run must be aborted.
func (r *Reader) validateSchema() error {
	probes := []string{
		`SELECT ContentID, Title, Attribution, BookID, ContentType, VolumeIndex FROM content LIMIT 1`,
		`SELECT VolumeID, ContentID, Text, Annotation, DateCreated, ChapterProgress FROM Bookmark LIMIT 1`,
	}

	for _, probe := range probes {
		rows, err := r.db.Query(probe)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrNotKoboDatabase, r.dbPath, err)
		}
		rows.Close()
	}

	return nil
}

// ListBooks returns every volume in the library, ordered by title.
func (r *Reader) ListBooks() ([]Book, error) {
	rows, err := r.db.Query(`
		SELECT ContentID, Title, Attribution
		FROM content
		WHERE BookID IS NULL AND ContentType = 6
		ORDER BY Title`)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var book Book
		var title, author sql.NullString

		if err := rows.Scan(&book.ContentID, &title, &author); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}

		book.Title = title.String
		book.Author = author.String
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}

	return books, nil
}

// ListContentEntries returns the TOC rows (ContentType 899) for one book in
// document order. The trailing "-N" suffix on each ContentID encodes the
// declared TOC depth; it is stripped into MatchID and parsed into Depth.
func (r *Reader) ListContentEntries(bookID string) ([]ContentEntry, error) {
	rows, err := r.db.Query(`
		SELECT ContentID, Title, VolumeIndex
		FROM content
		WHERE BookID = ? AND ContentType = 899
		ORDER BY VolumeIndex`, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query content entries: %w", err)
	}
	defer rows.Close()

	var entries []ContentEntry
	for rows.Next() {
		var entry ContentEntry
		var title sql.NullString
		var volumeIndex sql.NullInt64

		if err := rows.Scan(&entry.ContentID, &title, &volumeIndex); err != nil {
			return nil, fmt.Errorf("failed to scan content row: %w", err)
		}

		entry.Title = title.String
		entry.VolumeIndex = int(volumeIndex.Int64)
		entry.MatchID = stripDepthSuffix(entry.ContentID)
		entry.Depth = extractDepth(entry.ContentID)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content rows: %w", err)
	}

	return entries, nil
}

// ListHighlights returns the Bookmark rows with highlighted text for one
// book. Dogear bookmarks (no text) are excluded.
func (r *Reader) ListHighlights(bookID string) ([]Highlight, error) {
	rows, err := r.db.Query(`
		SELECT Text, Annotation, ContentID, ChapterProgress, DateCreated
		FROM Bookmark
		WHERE VolumeID = ? AND Text IS NOT NULL AND Text != ''
		ORDER BY ContentID, ChapterProgress`, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query highlights: %w", err)
	}
	defer rows.Close()

	var highlights []Highlight
	for rows.Next() {
		var h Highlight
		var annotation, dateCreated sql.NullString
		var progress sql.NullFloat64

		if err := rows.Scan(&h.Text, &annotation, &h.ContentID, &progress, &dateCreated); err != nil {
			return nil, fmt.Errorf("failed to scan highlight row: %w", err)
		}

		h.Annotation = annotation.String
		h.DateCreated = dateCreated.String
		h.ChapterProgress = progress.Float64
		highlights = append(highlights, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating highlight rows: %w", err)
	}

	return highlights, nil
}

// stripDepthSuffix removes the trailing "-N" (digits) suffix from a
// ContentID, e.g. "...xhtml#chapter01_4-2" becomes "...xhtml#chapter01_4".
func stripDepthSuffix(contentID string) string {
	pos, ok := depthSuffixPos(contentID)
	if !ok {
		return contentID
	}
	return contentID[:pos]
}

// extractDepth parses the trailing "-N" suffix into a TOC depth level.
// IDs without a suffix are treated as top-level.
func extractDepth(contentID string) int {
	pos, ok := depthSuffixPos(contentID)
	if !ok {
		return 1
	}

	depth := 0
	for _, c := range contentID[pos+1:] {
		depth = depth*10 + int(c-'0')
	}
	if depth < 1 {
		return 1
	}
	return depth
}

func depthSuffixPos(contentID string) (int, bool) {
	for i := len(contentID) - 1; i >= 0; i-- {
		c := contentID[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if c == '-' && i < len(contentID)-1 {
			return i, true
		}
		return 0, false
	}
	return 0, false
}
