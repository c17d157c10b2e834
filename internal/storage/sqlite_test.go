package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/paperiq/paperiq/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func samplePaper() *models.Paper {
	return &models.Paper{
		Filename:      "attention.pdf",
		Title:         "Attention Is All You Need",
		UploadDate:    time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		PageCount:     11,
		FileSizeBytes: 2048,
		Status:        models.StatusCompleted,
		FilePath:      "/tmp/attention.pdf",
		FullText:      "Abstract\nThe dominant sequence transduction models...",
		Quality:       models.DetectionQuality{Score: 0.81, Level: models.QualityHigh},
		Sections: []models.Section{
			models.NewSection(models.KindAbstract, "The dominant sequence transduction models are based on complex recurrent networks.", 0.95, 9, 120),
			models.NewSection(models.KindIntroduction, "Recurrent neural networks have long been the standard approach in sequence modeling.", 0.70, 130, 400),
		},
	}
}

func TestSavePaperAndGetPaper(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	paper := samplePaper()
	paperID, err := store.SavePaper(ctx, paper)
	if err != nil {
		t.Fatalf("SavePaper() error: %v", err)
	}
	if paperID == 0 {
		t.Fatal("SavePaper() returned zero ID")
	}
	if paper.ID != paperID {
		t.Errorf("paper.ID = %d, want %d", paper.ID, paperID)
	}
	if paper.Sections[0].PaperID != paperID {
		t.Errorf("section PaperID = %d, want %d", paper.Sections[0].PaperID, paperID)
	}

	got, err := store.GetPaper(ctx, paperID)
	if err != nil {
		t.Fatalf("GetPaper() error: %v", err)
	}
	if got.Filename != paper.Filename || got.Title != paper.Title {
		t.Errorf("got (%q, %q), want (%q, %q)", got.Filename, got.Title, paper.Filename, paper.Title)
	}
	if got.Quality.Score != 0.81 || got.Quality.Level != models.QualityHigh {
		t.Errorf("quality = %+v, want (0.81, high)", got.Quality)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(got.Sections))
	}
	if got.Sections[0].Kind != models.KindAbstract || got.Sections[1].Kind != models.KindIntroduction {
		t.Errorf("section order = %v, %v; want abstract, introduction", got.Sections[0].Kind, got.Sections[1].Kind)
	}
	if got.Sections[0].WordCount != paper.Sections[0].WordCount {
		t.Errorf("word count = %d, want %d", got.Sections[0].WordCount, paper.Sections[0].WordCount)
	}
}

func TestGetPaper_NotFound(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.GetPaper(context.Background(), 12345); err == nil {
		t.Error("GetPaper() with unknown ID succeeded, want error")
	}
}

func TestGetPaperByFilename(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := samplePaper()
	if _, err := store.SavePaper(ctx, first); err != nil {
		t.Fatalf("SavePaper() error: %v", err)
	}

	second := samplePaper()
	second.Title = "Attention Is All You Need (v2)"
	second.UploadDate = first.UploadDate.Add(time.Hour)
	if _, err := store.SavePaper(ctx, second); err != nil {
		t.Fatalf("SavePaper() error: %v", err)
	}

	got, err := store.GetPaperByFilename(ctx, "attention.pdf")
	if err != nil {
		t.Fatalf("GetPaperByFilename() error: %v", err)
	}
	if got.ID != second.ID {
		t.Errorf("got paper %d, want most recent %d", got.ID, second.ID)
	}

	if _, err := store.GetPaperByFilename(ctx, "unknown.pdf"); err == nil {
		t.Error("GetPaperByFilename() with unknown filename succeeded, want error")
	}
}

func TestGetSection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	paper := samplePaper()
	paperID, err := store.SavePaper(ctx, paper)
	if err != nil {
		t.Fatalf("SavePaper() error: %v", err)
	}

	sec, err := store.GetSection(ctx, paperID, models.KindAbstract)
	if err != nil {
		t.Fatalf("GetSection() error: %v", err)
	}
	if sec.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", sec.Confidence)
	}

	if _, err := store.GetSection(ctx, paperID, models.KindDiscussion); err == nil {
		t.Error("GetSection() for missing kind succeeded, want error")
	}
}

func TestListPapers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := samplePaper()
	if _, err := store.SavePaper(ctx, older); err != nil {
		t.Fatalf("SavePaper() error: %v", err)
	}

	newer := samplePaper()
	newer.Filename = "bert.pdf"
	newer.UploadDate = older.UploadDate.Add(time.Hour)
	newer.Sections = newer.Sections[:1]
	if _, err := store.SavePaper(ctx, newer); err != nil {
		t.Fatalf("SavePaper() error: %v", err)
	}

	papers, err := store.ListPapers(ctx)
	if err != nil {
		t.Fatalf("ListPapers() error: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("ListPapers() returned %d papers, want 2", len(papers))
	}
	if papers[0].Filename != "bert.pdf" {
		t.Errorf("papers[0].Filename = %q, want newest first", papers[0].Filename)
	}
	if papers[0].SectionCount != 1 || papers[1].SectionCount != 2 {
		t.Errorf("section counts = %d, %d; want 1, 2", papers[0].SectionCount, papers[1].SectionCount)
	}
}

func TestUpdateStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	paper := samplePaper()
	paper.Status = models.StatusProcessing
	paperID, err := store.SavePaper(ctx, paper)
	if err != nil {
		t.Fatalf("SavePaper() error: %v", err)
	}

	if err := store.UpdateStatus(ctx, paperID, models.StatusCompleted); err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}

	got, err := store.GetPaper(ctx, paperID)
	if err != nil {
		t.Fatalf("GetPaper() error: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}

	if err := store.UpdateStatus(ctx, 99999, models.StatusFailed); err == nil {
		t.Error("UpdateStatus() with unknown ID succeeded, want error")
	}
}

func TestDeletePaper(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	paper := samplePaper()
	paperID, err := store.SavePaper(ctx, paper)
	if err != nil {
		t.Fatalf("SavePaper() error: %v", err)
	}

	if err := store.DeletePaper(ctx, paperID); err != nil {
		t.Fatalf("DeletePaper() error: %v", err)
	}

	if _, err := store.GetPaper(ctx, paperID); err == nil {
		t.Error("GetPaper() after delete succeeded, want error")
	}
	sections, err := store.GetSections(ctx, paperID)
	if err != nil {
		t.Fatalf("GetSections() error: %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("%d sections remain after delete, want 0", len(sections))
	}

	if err := store.DeletePaper(ctx, paperID); err == nil {
		t.Error("DeletePaper() twice succeeded, want error")
	}
}
