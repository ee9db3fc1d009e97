package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_page_store.go -package=mocks docs-search-index/internal/storage PageStore

import (
	"context"
	"database/sql"
	"fmt"
)

// PageStore defines the interface for mirroring the search index.
type PageStore interface {
	// ReplaceAll replaces every stored page with pages, in one transaction.
	ReplaceAll(ctx context.Context, pages []PageRecord) error
}

// PageRepo provides methods for page operations.
// It implements the PageStore interface.
type PageRepo struct {
	db *sql.DB
}

// NewPageRepo creates a new PageRepo.
func NewPageRepo(db *sql.DB) *PageRepo {
	return &PageRepo{db: db}
}

// ReplaceAll deletes all pages and headings and inserts pages in their place.
// Nothing from a previous build survives; on error the previous contents are kept.
func (r *PageRepo) ReplaceAll(ctx context.Context, pages []PageRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM headings"); err != nil {
		return fmt.Errorf("failed to clear headings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM pages"); err != nil {
		return fmt.Errorf("failed to clear pages: %w", err)
	}

	for _, page := range pages {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO pages (slug, position, title, content, search_text) VALUES (?, ?, ?, ?, ?)",
			page.Slug, page.Position, page.Title, page.Content, page.SearchText,
		)
		if err != nil {
			return fmt.Errorf("failed to insert page %s: %w", page.Slug, err)
		}

		for _, h := range page.Headings {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO headings (page_slug, position, level, text, anchor_id) VALUES (?, ?, ?, ?, ?)",
				page.Slug, h.Position, h.Level, h.Text, h.AnchorID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert heading %s of page %s: %w", h.AnchorID, page.Slug, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// List returns all pages with their headings, in position order.
func (r *PageRepo) List(ctx context.Context) ([]PageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT slug, position, title, content, search_text FROM pages ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	pages, err := scanPages(rows)
	if err != nil {
		return nil, err
	}

	for i := range pages {
		headings, err := r.listHeadings(ctx, pages[i].Slug)
		if err != nil {
			return nil, err
		}
		pages[i].Headings = headings
	}
	return pages, nil
}

// SearchText returns the slugs of pages whose search text contains term, in position order.
// term is matched as a literal substring; the caller lowercases it.
func (r *PageRepo) SearchText(ctx context.Context, term string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT slug FROM pages WHERE instr(search_text, ?) > 0 ORDER BY position",
		term,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search pages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	slugs := []string{}
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("failed to scan slug: %w", err)
		}
		slugs = append(slugs, slug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pages: %w", err)
	}
	return slugs, nil
}

func (r *PageRepo) listHeadings(ctx context.Context, slug string) ([]HeadingRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT position, level, text, anchor_id FROM headings WHERE page_slug = ? ORDER BY position",
		slug,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query headings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	headings := []HeadingRecord{}
	for rows.Next() {
		var h HeadingRecord
		if err := rows.Scan(&h.Position, &h.Level, &h.Text, &h.AnchorID); err != nil {
			return nil, fmt.Errorf("failed to scan heading: %w", err)
		}
		headings = append(headings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate headings: %w", err)
	}
	return headings, nil
}

func scanPages(rows *sql.Rows) ([]PageRecord, error) {
	defer func() {
		_ = rows.Close()
	}()

	pages := []PageRecord{}
	for rows.Next() {
		var p PageRecord
		if err := rows.Scan(&p.Slug, &p.Position, &p.Title, &p.Content, &p.SearchText); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pages: %w", err)
	}
	return pages, nil
}
