package ldrive

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/svetlyi/gdrivepath/contracts"
	"github.com/svetlyi/gdrivepath/logger"
)

func newDrive() *Drive {
	return New(logger.NewWriter(&bytes.Buffer{}, contracts.LogDebugLevel))
}

func TestWriteAndReadFile(t *testing.T) {
	d := newDrive()
	dir := filepath.Join(t.TempDir(), "a", "b")

	if err := d.MkdirAll(dir); err != nil {
		t.Fatal(err)
	}
	// creating an existing dir is fine
	if err := d.MkdirAll(dir); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "f.txt")
	if err := d.WriteFile(path, []byte("a longer first version")); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteFile(path, []byte("second")); err != nil {
		t.Fatal(err)
	}
	data, err := d.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("file must be replaced, got %q", data)
	}
}

func TestReadMissingFile(t *testing.T) {
	d := newDrive()
	_, err := d.ReadFile(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("reading a missing file must fail")
	}
}

func TestWriteIntoMissingDir(t *testing.T) {
	d := newDrive()
	path := filepath.Join(t.TempDir(), "missing", "f.txt")
	if err := d.WriteFile(path, []byte("x")); err == nil {
		t.Error("writing into a missing dir must fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("nothing must be left behind")
	}
}
