package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/paperiq/paperiq/models"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database tables if they don't exist
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS papers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL,
		title TEXT,
		upload_date DATETIME DEFAULT CURRENT_TIMESTAMP,
		page_count INTEGER DEFAULT 0,
		file_size_bytes INTEGER DEFAULT 0,
		status TEXT DEFAULT 'uploaded',
		file_path TEXT,
		full_text TEXT,
		quality_score REAL DEFAULT 0,
		quality_level TEXT DEFAULT 'none'
	);

	CREATE TABLE IF NOT EXISTS sections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		paper_id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		content TEXT,
		confidence REAL DEFAULT 0,
		start_position INTEGER DEFAULT 0,
		end_position INTEGER DEFAULT 0,
		word_count INTEGER DEFAULT 0,
		FOREIGN KEY (paper_id) REFERENCES papers(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_papers_filename ON papers(filename);
	CREATE INDEX IF NOT EXISTS idx_sections_paper_id ON sections(paper_id);
	CREATE INDEX IF NOT EXISTS idx_sections_kind ON sections(paper_id, kind);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SavePaper stores a paper with its sections and returns the paper ID
func (s *SQLiteStore) SavePaper(ctx context.Context, paper *models.Paper) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	uploadDate := paper.UploadDate
	if uploadDate.IsZero() {
		uploadDate = time.Now().UTC()
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO papers (filename, title, upload_date, page_count, file_size_bytes, status, file_path, full_text, quality_score, quality_level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, paper.Filename, paper.Title, uploadDate, paper.PageCount, paper.FileSizeBytes,
		paper.Status, paper.FilePath, paper.FullText, paper.Quality.Score, paper.Quality.Level)
	if err != nil {
		return 0, fmt.Errorf("failed to insert paper: %w", err)
	}

	paperID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get paper ID: %w", err)
	}

	for i := range paper.Sections {
		sec := &paper.Sections[i]
		result, err := tx.ExecContext(ctx, `
			INSERT INTO sections (paper_id, kind, content, confidence, start_position, end_position, word_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, paperID, sec.Kind, sec.Content, sec.Confidence, sec.StartPosition, sec.EndPosition, sec.WordCount)
		if err != nil {
			return 0, fmt.Errorf("failed to insert %s section: %w", sec.Kind, err)
		}
		if sec.ID, err = result.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to get section ID: %w", err)
		}
		sec.PaperID = paperID
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	paper.ID = paperID
	return paperID, nil
}

// GetPaper retrieves a paper with all its sections by ID
func (s *SQLiteStore) GetPaper(ctx context.Context, paperID int64) (*models.Paper, error) {
	paper := &models.Paper{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, filename, title, upload_date, page_count, file_size_bytes, status, file_path, full_text, quality_score, quality_level
		FROM papers
		WHERE id = ?
	`, paperID).Scan(&paper.ID, &paper.Filename, &paper.Title, &paper.UploadDate,
		&paper.PageCount, &paper.FileSizeBytes, &paper.Status, &paper.FilePath,
		&paper.FullText, &paper.Quality.Score, &paper.Quality.Level)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("paper not found: %d", paperID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query paper: %w", err)
	}

	if paper.Sections, err = s.GetSections(ctx, paperID); err != nil {
		return nil, err
	}

	return paper, nil
}

// GetPaperByFilename retrieves the most recently stored paper with the given filename
func (s *SQLiteStore) GetPaperByFilename(ctx context.Context, filename string) (*models.Paper, error) {
	var paperID int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM papers
		WHERE filename = ?
		ORDER BY upload_date DESC, id DESC
		LIMIT 1
	`, filename).Scan(&paperID)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("paper not found: %s", filename)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query paper by filename: %w", err)
	}

	return s.GetPaper(ctx, paperID)
}

// GetSections retrieves all sections of a paper ordered by start position
func (s *SQLiteStore) GetSections(ctx context.Context, paperID int64) ([]models.Section, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, paper_id, kind, content, confidence, start_position, end_position, word_count
		FROM sections
		WHERE paper_id = ?
		ORDER BY start_position
	`, paperID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		var sec models.Section
		if err := rows.Scan(&sec.ID, &sec.PaperID, &sec.Kind, &sec.Content,
			&sec.Confidence, &sec.StartPosition, &sec.EndPosition, &sec.WordCount); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, sec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sections: %w", err)
	}

	return sections, nil
}

// GetSection retrieves a single section of a paper by kind
func (s *SQLiteStore) GetSection(ctx context.Context, paperID int64, kind models.SectionKind) (*models.Section, error) {
	var sec models.Section
	err := s.db.QueryRowContext(ctx, `
		SELECT id, paper_id, kind, content, confidence, start_position, end_position, word_count
		FROM sections
		WHERE paper_id = ? AND kind = ?
	`, paperID, kind).Scan(&sec.ID, &sec.PaperID, &sec.Kind, &sec.Content,
		&sec.Confidence, &sec.StartPosition, &sec.EndPosition, &sec.WordCount)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("section not found: paper %d has no %s section", paperID, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query section: %w", err)
	}

	return &sec, nil
}

// ListPapers returns summaries of all stored papers, newest first
func (s *SQLiteStore) ListPapers(ctx context.Context) ([]models.PaperInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.filename, p.title, p.upload_date, p.page_count, p.status, p.quality_score, p.quality_level,
			(SELECT COUNT(*) FROM sections WHERE paper_id = p.id)
		FROM papers p
		ORDER BY p.upload_date DESC, p.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query papers: %w", err)
	}
	defer rows.Close()

	var papers []models.PaperInfo
	for rows.Next() {
		var info models.PaperInfo
		if err := rows.Scan(&info.ID, &info.Filename, &info.Title, &info.UploadDate,
			&info.PageCount, &info.Status, &info.QualityScore, &info.QualityLevel,
			&info.SectionCount); err != nil {
			return nil, fmt.Errorf("failed to scan paper: %w", err)
		}
		papers = append(papers, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating papers: %w", err)
	}

	return papers, nil
}

// UpdateStatus sets a paper's processing status
func (s *SQLiteStore) UpdateStatus(ctx context.Context, paperID int64, status models.ProcessingStatus) error {
	result, err := s.db.ExecContext(ctx, `UPDATE papers SET status = ? WHERE id = ?`, status, paperID)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("paper not found: %d", paperID)
	}

	return nil
}

// DeletePaper removes a paper and all its sections. The deletes run in
// one transaction so foreign key enforcement is not relied on.
func (s *SQLiteStore) DeletePaper(ctx context.Context, paperID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE paper_id = ?`, paperID); err != nil {
		return fmt.Errorf("failed to delete sections: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM papers WHERE id = ?`, paperID)
	if err != nil {
		return fmt.Errorf("failed to delete paper: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("paper not found: %d", paperID)
	}

	return tx.Commit()
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ensure SQLiteStore implements Store interface
var _ Store = (*SQLiteStore)(nil)
