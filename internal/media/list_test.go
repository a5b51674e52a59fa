package media

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseListM3U(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "trip.m3u")
	content := "\uFEFF#EXTM3U\n\n#EXTINF:-1,Harbour at dawn\nharbour.jpg\n#comment\n\"sub/bridge.png\"\n"
	if err := os.WriteFile(list, []byte(content), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	got, err := ParseList(list)
	if err != nil {
		t.Fatalf("ParseList() error = %v", err)
	}

	want := []ListEntry{
		{Path: filepath.Join(dir, "harbour.jpg"), Title: "Harbour at dawn"},
		{Path: filepath.Join(dir, "sub", "bridge.png")},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseList() = %#v, want %#v", got, want)
	}
}

func TestParseListPLS(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "trip.pls")
	content := "[playlist]\n file1 = one.jpg \nTitle1=One\nFile2=/abs/two.png\nFileX=bad.jpg\nFile3=\n"
	if err := os.WriteFile(list, []byte(content), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	got, err := ParseList(list)
	if err != nil {
		t.Fatalf("ParseList() error = %v", err)
	}

	want := []ListEntry{
		{Path: filepath.Join(dir, "one.jpg"), Title: "One"},
		{Path: "/abs/two.png"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseList() = %#v, want %#v", got, want)
	}
}

func TestParseListRejectsUnknownFormat(t *testing.T) {
	if _, err := ParseList("slides.txt"); err == nil {
		t.Fatal("expected error for unsupported list format")
	}
}

func TestFilterViewable(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "ok.png")
	if err := os.WriteFile(valid, []byte("x"), 0o644); err != nil {
		t.Fatalf("write valid file: %v", err)
	}
	unsupported := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(unsupported, []byte("x"), 0o644); err != nil {
		t.Fatalf("write unsupported file: %v", err)
	}

	got := FilterViewable([]ListEntry{
		{Path: valid, Title: "ok"},
		{Path: unsupported},
		{Path: filepath.Join(dir, "missing.jpg")},
		{Path: dir + string(os.PathSeparator) + "."},
	})
	want := []ListEntry{{Path: valid, Title: "ok"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterViewable() = %#v, want %#v", got, want)
	}
}
