package utils

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

// ErrDestinationExists is returned when a move would overwrite an existing path
var ErrDestinationExists = errors.New("destination already exists")

// Exists reports whether path exists (file or directory)
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// MoveFile moves src to dst without overwriting dst. Falls back to a verified
// copy and remove when src and dst live on different filesystems.
func MoveFile(src, dst string) error {
	exists, err := Exists(dst)
	if err != nil {
		return fmt.Errorf("stat destination: %w", err)
	}
	if exists {
		return fmt.Errorf("%s: %w", dst, ErrDestinationExists)
	}

	renameErr := os.Rename(src, dst)
	if renameErr == nil {
		return nil
	}
	if !isCrossDevice(renameErr) {
		return renameErr
	}

	if err := copyFileVerified(src, dst); err != nil {
		return fmt.Errorf("copy across filesystems: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// MoveDir renames a directory without overwriting an existing target
func MoveDir(src, dst string) error {
	exists, err := Exists(dst)
	if err != nil {
		return fmt.Errorf("stat destination: %w", err)
	}
	if exists {
		return fmt.Errorf("%s: %w", dst, ErrDestinationExists)
	}
	return os.Rename(src, dst)
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	return errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV)
}

// copyFileVerified streams src to dst, then reads dst back from disk and
// compares its size and SHA256 with the source. Removes dst on mismatch.
func copyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	if _, err := io.Copy(out, io.TeeReader(in, srcHasher)); err != nil {
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}

	if err := verifyCopy(dst, srcInfo.Size(), srcHasher.Sum(nil)); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}

// verifyCopy checks the file at path against the expected size and digest
func verifyCopy(path string, wantSize int64, wantSum []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reopen copy: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	size, err := io.Copy(hasher, f)
	if err != nil {
		return fmt.Errorf("read back copy: %w", err)
	}
	if size != wantSize {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", wantSize, size)
	}
	if !bytes.Equal(hasher.Sum(nil), wantSum) {
		return errors.New("copy hash mismatch: file corrupted during copy")
	}
	return nil
}
