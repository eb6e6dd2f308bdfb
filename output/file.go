package output

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/pkg/errors"
)

var reNumericSuffix = regexp.MustCompile(`\.(\d+)$`)

// FileWriter saves a response body to disk.
type FileWriter struct {
	fullPath string
	progress io.Writer
}

// NewFileWriter picks options.OutputFile, or the last path segment of u.
// Existing files are kept unless options.Overwrite is set.
func NewFileWriter(u *url.URL, options *Options, progress io.Writer) *FileWriter {
	var fullPath string

	if options.OutputFile == "" {
		name := filepath.Base(u.Path)
		if name == "." || name == "/" {
			name = "index.html"
		}
		fullPath = fmt.Sprintf("./%s", name)
	} else {
		fullPath = options.OutputFile
	}

	if !options.Overwrite {
		fullPath = makeNonOverlappingFilename(fullPath)
	}

	return &FileWriter{
		fullPath: fullPath,
		progress: progress,
	}
}

func makeNonOverlappingFilename(path string) string {
	for {
		if _, err := os.Stat(path); err != nil {
			return path
		}
		newPath := reNumericSuffix.ReplaceAllStringFunc(path, func(index string) string {
			i, _ := strconv.Atoi(strings.TrimPrefix(index, "."))
			return fmt.Sprintf(".%d", i+1)
		})
		if path == newPath {
			newPath = fmt.Sprintf("%s.%d", path, 1)
		}
		path = newPath
	}
}

func (f *FileWriter) Download(resp *http.Response) error {
	file, err := os.Create(f.fullPath)
	if err != nil {
		return errors.Wrapf(err, "creating %s", f.fullPath)
	}
	defer file.Close()

	total := resp.ContentLength
	var written int64
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := file.Write(buf[:n]); err != nil {
				return errors.Wrapf(err, "writing %s", f.fullPath)
			}
			written += int64(n)
			f.report(written, total)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return errors.Wrap(readErr, "reading response body")
		}
	}

	fmt.Fprintf(f.progress, "\nSaved %s to %s\n", bytefmt.ByteSize(uint64(written)), f.fullPath)
	return nil
}

func (f *FileWriter) report(written, total int64) {
	if total <= 0 {
		fmt.Fprintf(f.progress, "\rDownloading: %s", bytefmt.ByteSize(uint64(written)))
		return
	}
	fmt.Fprintf(f.progress, "\rDownloading: %s / %s (%d%%)",
		bytefmt.ByteSize(uint64(written)),
		bytefmt.ByteSize(uint64(total)),
		written*100/total)
}

func (f *FileWriter) Filename() string {
	return filepath.Base(f.fullPath)
}
