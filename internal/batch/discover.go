package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tvb/internal/services"
)

// videoExtensions is the fixed set of recognized container extensions.
var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mkv":  {},
	".avi":  {},
	".mov":  {},
	".flv":  {},
	".m4v":  {},
	".mpg":  {},
	".mpeg": {},
	".wmv":  {},
}

// IsVideoFile reports whether path carries a recognized video extension.
func IsVideoFile(path string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Discover resolves input into the ordered list of files to process. A
// single file is returned as-is; a directory is walked recursively and
// filtered to recognized video extensions. Files are ordered by relative
// path so repeated runs over the same tree process in the same order. A
// directory with no recognized files is an input error for the whole run.
func Discover(input string) ([]MediaFile, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "batch", "discover", "input not accessible", err)
	}

	if !info.IsDir() {
		if !IsVideoFile(input) {
			return nil, services.Wrap(services.ErrInput, "batch", "discover", "not a recognized video file: "+input, nil)
		}
		return []MediaFile{newMediaFile(input, filepath.Base(input), info)}, nil
	}

	var files []MediaFile
	walkErr := filepath.WalkDir(input, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !IsVideoFile(path) {
			return nil
		}
		fileInfo, err := entry.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(input, path)
		if err != nil {
			return err
		}
		files = append(files, newMediaFile(path, rel, fileInfo))
		return nil
	})
	if walkErr != nil {
		return nil, services.Wrap(services.ErrInput, "batch", "discover", "walk failed", walkErr)
	}
	if len(files) == 0 {
		return nil, services.Wrap(services.ErrInput, "batch", "discover", "no video files found under "+input, nil)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

func newMediaFile(path, rel string, info fs.FileInfo) MediaFile {
	return MediaFile{
		Path:    path,
		RelPath: rel,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Ext:     strings.ToLower(filepath.Ext(path)),
	}
}
