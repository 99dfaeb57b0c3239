package extractor

import (
	"context"
	"strings"
	"testing"
)

func TestExtractPlainText(t *testing.T) {
	e := New()
	got, err := e.Extract(context.Background(), "คำฟ้อง.txt", strings.NewReader("  มาตรา 145 ...\n"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "มาตรา 145 ..." {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractRejectsBinary(t *testing.T) {
	e := New()
	if _, err := e.Extract(context.Background(), "doc.bin", strings.NewReader("\xff\xfe\x00")); err == nil {
		t.Fatal("expected error for non-UTF-8 body")
	}
}

func TestExtractInvalidPDF(t *testing.T) {
	e := New()
	if _, err := e.Extract(context.Background(), "doc.pdf", strings.NewReader("not a pdf")); err == nil {
		t.Fatal("expected error for broken pdf")
	}
}
