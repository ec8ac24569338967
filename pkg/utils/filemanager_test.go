package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateOutputFileName(t *testing.T) {
	got := GenerateOutputFileName("{name}_adjusted_{uuid}", map[string]string{"name": "claim_1042"})

	if !strings.HasPrefix(got, "claim_1042_adjusted_") {
		t.Errorf("unexpected prefix: %s", got)
	}
	if !strings.HasSuffix(got, ".json") {
		t.Errorf("missing .json extension: %s", got)
	}
	if strings.Contains(got, "{") {
		t.Errorf("unreplaced placeholder: %s", got)
	}

	other := GenerateOutputFileName("{name}_adjusted_{uuid}", map[string]string{"name": "claim_1042"})
	if got == other {
		t.Errorf("two uuid names collided: %s", got)
	}

	if got := GenerateOutputFileName("result.JSON", nil); got != "result.JSON" {
		t.Errorf("existing extension should be kept, got %s", got)
	}
}

func TestDiscoverAndArchive(t *testing.T) {
	root := t.TempDir()
	fm := NewFileManager(filepath.Join(root, "in"), filepath.Join(root, "out"), filepath.Join(root, "archive"))
	if err := fm.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	for _, name := range []string{"b.json", "a.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(fm.InputDir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(fm.InputDir, "dir.json"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := fm.DiscoverInputFiles("")
	if err != nil {
		t.Fatalf("DiscoverInputFiles: %v", err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "a.json" || filepath.Base(files[1]) != "b.json" {
		t.Fatalf("files = %v", files)
	}

	archived, err := fm.ArchiveInputFile(files[0])
	if err != nil {
		t.Fatalf("ArchiveInputFile: %v", err)
	}
	if FileExists(files[0]) || !FileExists(archived) {
		t.Fatalf("file was not moved to %s", archived)
	}

	fm.ArchiveOnSuccess = false
	same, err := fm.ArchiveInputFile(files[1])
	if err != nil || same != files[1] || !FileExists(files[1]) {
		t.Fatalf("archiving disabled should be a no-op: %s, %v", same, err)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "result.json")
	if err := WriteFileAtomic(path, []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != `{"ok":true}` {
		t.Fatalf("read back %q, %v", data, err)
	}
}

func TestWriteSummaryLog(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	path, err := WriteSummaryLog(BatchSummary{
		StartTime:       start,
		EndTime:         start.Add(2 * time.Second),
		TotalFiles:      2,
		SuccessfulFiles: 1,
		FailedFiles:     1,
		ProcessedFiles:  []ProcessedFileInfo{{InputFile: "a.json", OutputFile: "a_out.json", Adjustments: 3}},
		FailedFilesList: []FailedFileInfo{{InputFile: "b.json", ErrorMessage: "bad JSON"}},
	}, dir)
	if err != nil {
		t.Fatalf("WriteSummaryLog: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{"Total Files:        2", "a_out.json", "3 adjustments", "bad JSON", "End of Summary"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	if FileExists(dir) {
		t.Error("directories are not files")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("missing file reported as existing")
	}
}
