package savegame

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var errChecksum = errors.New("checksum mismatch")

// writeAtomic replaces path with data without ever exposing a partial
// file. The bytes go to a private temp directory next to the target, are
// synced and re-read to verify their hash, then renamed into place. The
// temp directory is removed on every path.
func writeAtomic(path string, data []byte) error {
	expected := sha256.Sum256(data)

	parentDir := filepath.Dir(path)
	tmpDir, err := os.MkdirTemp(parentDir, ".ghostprotocol-save-*")
	if err != nil {
		return &IOError{Op: "create temp dir", Path: parentDir, Err: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	tmpFile := filepath.Join(tmpDir, filepath.Base(path))
	f, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return &IOError{Op: "create temp file", Path: tmpFile, Err: err}
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return &IOError{Op: "write temp file", Path: tmpFile, Err: err}
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return &IOError{Op: "sync temp file", Path: tmpFile, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close temp file", Path: tmpFile, Err: err}
	}

	// Post-write verification: re-read and compare hash.
	written, err := os.ReadFile(tmpFile)
	if err != nil {
		return &IOError{Op: "re-read temp file", Path: tmpFile, Err: err}
	}
	got := sha256.Sum256(written)
	if !bytes.Equal(got[:], expected[:]) {
		return &IOError{Op: "verify temp file", Path: tmpFile, Err: fmt.Errorf("%w after write", errChecksum)}
	}

	if err := os.Rename(tmpFile, path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	syncDir(parentDir)
	return nil
}

// syncDir flushes the directory entry after a rename. Not every platform
// supports syncing a directory, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
