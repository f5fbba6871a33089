package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	AppDirName      = "pushicons"
	HistoryFileName = "pushicons.db"
	DirPerm         = 0755
	FilePerm        = 0644
)

// OverridePath returns the per-SDK override image for source:
// "icons/push.png" with sdk "unity" becomes "icons/push-unity.png".
func OverridePath(source, sdk string) string {
	stem := strings.TrimSuffix(source, filepath.Ext(source))
	return stem + "-" + sdk + ".png"
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dir and any missing parents. An existing directory is
// not an error, so concurrent callers targeting the same parent are safe.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, DirPerm)
}

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DataDir returns the platform-specific data directory for pushicons:
//   - Windows: %APPDATA%\pushicons
//   - Unix:    ~/.config/pushicons
//
// Falls back to os.TempDir()/pushicons if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}

// HistoryPath returns the location of the run history database.
func HistoryPath() string {
	return filepath.Join(DataDir(), HistoryFileName)
}
