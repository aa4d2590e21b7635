// Package extract produces per-page plain text from uploaded binaries.
// PDF parsing uses github.com/ledongthuc/pdf; DOCX is unpacked directly
// (archive/zip + word/document.xml).
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	pageTimeout = 10 * time.Second
)

// ErrUnsupported is returned for MIME types outside the {PDF, DOCX} set.
var ErrUnsupported = errors.New("unsupported mime type")

// Supported reports whether mime is in the extraction allow-list.
func Supported(mime string) bool {
	switch normalizeMime(mime) {
	case MimePDF, MimeDOCX:
		return true
	default:
		return false
	}
}

// Pages extracts ordered per-page plain text from data. PDFs yield one entry
// per page (empty string when a page has no text layer); DOCX yields a single
// entry with the whole body.
func Pages(ctx context.Context, data []byte, mime string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch normalizeMime(mime) {
	case MimePDF:
		return pdfPages(data)
	case MimeDOCX:
		text, err := docxText(data)
		if err != nil {
			return nil, err
		}
		return []string{text}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, mime)
	}
}

func normalizeMime(mime string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mime, ";")[0]))
}

func pdfPages(data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		text, err := pageText(reader.Page(i))
		if err != nil {
			// A page without an extractable text layer is indexed empty,
			// it never fails the whole document.
			text = ""
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// pageText pulls the text runs of one page, joined by single spaces. The
// parser is run on its own goroutine because ledongthuc/pdf can panic or
// spin on malformed content streams.
func pageText(p pdf.Page) (string, error) {
	if p.V.IsNull() {
		return "", nil
	}

	type result struct {
		text string
		err  error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				resChan <- result{err: fmt.Errorf("pdf page panic: %v", rec)}
			}
		}()
		content := p.Content()
		runs := make([]string, 0, len(content.Text))
		for _, t := range content.Text {
			runs = append(runs, t.S)
		}
		resChan <- result{text: strings.Join(runs, " ")}
	}()

	select {
	case r := <-resChan:
		return r.text, r.err
	case <-time.After(pageTimeout):
		return "", errors.New("pdf page extraction timeout")
	}
}

func docxText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return stripDocxXML(string(raw)), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
