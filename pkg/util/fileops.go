package util

import (
	"os"
	"path/filepath"
)

// WriteFileMode writes data to path and forces mode, replacing any existing
// file. os.WriteFile only applies the mode when it creates the file, so an
// overwritten shortcut would otherwise keep its old permissions.
func WriteFileMode(path string, data []byte, mode os.FileMode) error {
	if err := os.WriteFile(path, data, mode); err != nil {
		return err
	}
	return os.Chmod(path, mode)
}

// AbsDir resolves dir to an absolute, cleaned path and checks it is a directory.
func AbsDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", &os.PathError{Op: "stat", Path: abs, Err: os.ErrInvalid}
	}
	return abs, nil
}

// ExecutableDir returns the directory holding the running binary, with symlinks
// resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
