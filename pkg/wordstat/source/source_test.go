package source

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/wordstat/pkg/wordstat/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestStringsLoadCopies(t *testing.T) {
	in := Strings{"a b", "c"}
	out, err := in.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	out[0] = "changed"
	if in[0] != "a b" {
		t.Error("Load should return a copy")
	}
}

func TestFileLoad(t *testing.T) {
	path := writeFile(t, "doc.txt", "one two\nthree")

	texts, err := File{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(texts) != 1 || texts[0] != "one two\nthree" {
		t.Errorf("Unexpected texts: %q", texts)
	}
}

func TestFileLoadMissing(t *testing.T) {
	_, err := File{Path: "/nonexistent/doc.txt"}.Load(context.Background())
	if !errors.Is(err, internalerr.ErrSourceUnavailable) {
		t.Errorf("Expected ErrSourceUnavailable, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected underlying ErrNotExist, got %v", err)
	}
}

func TestJSONLLoad(t *testing.T) {
	path := writeFile(t, "docs.jsonl", `{"url":"u1","title":"First","text":"alpha beta"}
not json at all

{"url":"u2","title":"Second","text":"gamma"}
`)

	texts, err := JSONL{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if strings.Join(texts, "|") != "alpha beta|gamma" {
		t.Errorf("Unexpected texts: %q", texts)
	}

	withTitles, err := JSONL{Path: path, IncludeTitle: true}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if strings.Join(withTitles, "|") != "First|alpha beta|Second|gamma" {
		t.Errorf("Unexpected texts with titles: %q", withTitles)
	}
}

func TestJSONLNoValidItems(t *testing.T) {
	path := writeFile(t, "bad.jsonl", "{broken\n")

	if _, err := (JSONL{Path: path}).Load(context.Background()); !errors.Is(err, internalerr.ErrSourceUnavailable) {
		t.Errorf("Expected ErrSourceUnavailable, got %v", err)
	}
}

func TestHTMLLoad(t *testing.T) {
	path := writeFile(t, "page.html", `<html><head><title>Page</title>
<style>body { color: red }</style><script>var hidden = 1;</script></head>
<body><p>Hello<b>World</b></p><div>again</div></body></html>`)

	texts, err := HTML{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(texts) != 1 {
		t.Fatalf("Expected one text, got %d", len(texts))
	}
	fields := strings.Fields(texts[0])
	if strings.Join(fields, " ") != "Page Hello World again" {
		t.Errorf("Unexpected text: %q", texts[0])
	}
	if strings.Contains(texts[0], "hidden") || strings.Contains(texts[0], "color") {
		t.Errorf("Script/style content leaked: %q", texts[0])
	}
}

func TestSQLiteLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	stmts := []string{
		`CREATE TABLE docs (id INTEGER PRIMARY KEY, text TEXT)`,
		`INSERT INTO docs (id, text) VALUES (2, 'second doc')`,
		`INSERT INTO docs (id, text) VALUES (1, 'first doc')`,
		`INSERT INTO docs (id, text) VALUES (3, NULL)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	db.Close()

	texts, err := SQLite{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if strings.Join(texts, "|") != "first doc|second doc" {
		t.Errorf("Unexpected texts: %q", texts)
	}

	custom, err := SQLite{Path: path, Query: "SELECT text FROM docs WHERE id = 2"}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load custom: %v", err)
	}
	if len(custom) != 1 || custom[0] != "second doc" {
		t.Errorf("Unexpected custom texts: %q", custom)
	}
}

func TestSQLiteMissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")

	_, err := SQLite{Path: path}.Load(context.Background())
	if !errors.Is(err, internalerr.ErrSourceUnavailable) {
		t.Errorf("Expected ErrSourceUnavailable, got %v", err)
	}
}
