// Package database is the local library store highlights are imported
// into. It is entirely separate from the source Kobo database, which is
// never written to.
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/kobo-notes/internal/entities"
)

var defaultSources = []entities.Source{
	{Name: "kobo", DisplayName: "Kobo"},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Source{},
		&entities.Book{},
		&entities.Highlight{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedSources(); err != nil {
		return nil, fmt.Errorf("failed to seed sources: %w", err)
	}

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) seedSources() error {
	for _, source := range defaultSources {
		var existing entities.Source
		result := d.DB.Where("name = ?", source.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&source).Error; err != nil {
				return fmt.Errorf("failed to create source %s: %w", source.Name, err)
			}
		}
	}
	return nil
}

func (d *Database) GetSourceByName(name string) (*entities.Source, error) {
	var source entities.Source
	err := d.DB.Where("name = ?", name).First(&source).Error
	if err != nil {
		return nil, err
	}
	return &source, nil
}

// SaveBook upserts a book and its highlights, deduplicating highlights by
// text + chapter + timestamp so re-importing the same Kobo database is
// idempotent.
func (d *Database) SaveBook(book *entities.Book) error {
	originalSource := book.Source
	if book.SourceID == 0 && book.Source.Name != "" {
		source, err := d.GetSourceByName(book.Source.Name)
		if err == nil && source != nil {
			book.SourceID = source.ID
			originalSource = *source
		}
	}

	for i := range book.Highlights {
		if book.Highlights[i].SourceID == 0 {
			book.Highlights[i].SourceID = book.SourceID
		}
	}

	var existingBook entities.Book
	result := d.DB.Preload("Highlights").
		Where("title = ? AND author = ?", book.Title, book.Author).
		First(&existingBook)

	var saveErr error
	switch {
	case result.Error == nil:
		book.ID = existingBook.ID

		existingHighlights := make(map[string]uint, len(existingBook.Highlights))
		for _, h := range existingBook.Highlights {
			existingHighlights[highlightKey(h)] = h.ID
		}

		merged := make([]entities.Highlight, 0, len(book.Highlights))
		for _, h := range book.Highlights {
			if existingID, exists := existingHighlights[highlightKey(h)]; exists {
				h.ID = existingID
			}
			h.BookID = book.ID
			merged = append(merged, h)
		}
		book.Highlights = merged

		saveErr = d.DB.Session(&gorm.Session{FullSaveAssociations: true}).
			Omit("Source", "Highlights.Source").Save(book).Error

	case result.Error == gorm.ErrRecordNotFound:
		saveErr = d.DB.Omit("Source", "Highlights.Source").Create(book).Error

	default:
		saveErr = result.Error
	}

	book.Source = originalSource
	if saveErr != nil {
		log.Printf("Failed to save book %q by %s: %v", book.Title, book.Author, saveErr)
	}

	return saveErr
}

func highlightKey(h entities.Highlight) string {
	return fmt.Sprintf("%s|%s|%s", h.Text, h.Chapter, h.HighlightedAt.Format("2006-01-02 15:04:05"))
}

func (d *Database) GetBookByTitleAndAuthor(title, author string) (*entities.Book, error) {
	var book entities.Book
	err := d.DB.Preload("Highlights", func(db *gorm.DB) *gorm.DB {
		return db.Order("highlighted_at ASC, id ASC")
	}).Preload("Source").Where("title = ? AND author = ?", title, author).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (d *Database) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := d.DB.Preload("Highlights", func(db *gorm.DB) *gorm.DB {
		return db.Order("highlighted_at ASC, id ASC")
	}).Preload("Source").Find(&books).Error
	return books, err
}
