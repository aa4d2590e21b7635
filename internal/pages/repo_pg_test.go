package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoReplaceForDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM doc_pages").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO doc_pages").
		WithArgs("doc-1", 1, "first page").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO doc_pages").
		WithArgs("doc-1", 2, "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.ReplaceForDocument(context.Background(), "doc-1", []string{"first page", ""}); err != nil {
		t.Fatalf("ReplaceForDocument: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoReplaceRollsBackOnInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM doc_pages").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO doc_pages").
		WithArgs("doc-1", 1, "boom").
		WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	if err := repo.ReplaceForDocument(context.Background(), "doc-1", []string{"boom"}); err == nil {
		t.Fatal("expected insert error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestMemoryRepoReplaceIsIdempotent(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.ReplaceForDocument(ctx, "doc-1", []string{"a", "b", "c"}); err != nil {
			t.Fatalf("ReplaceForDocument #%d: %v", i+1, err)
		}
	}

	rows, err := repo.ForDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("ForDocument: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Page != i+1 {
			t.Fatalf("page %d numbered %d", i, row.Page)
		}
	}

	if err := repo.DeleteForDocument(ctx, "doc-1"); err != nil {
		t.Fatalf("DeleteForDocument: %v", err)
	}
	rows, _ = repo.ForDocument(ctx, "doc-1")
	if len(rows) != 0 {
		t.Fatalf("expected 0 pages after delete, got %d", len(rows))
	}
}
