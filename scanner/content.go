package scanner

import (
	"io"
	"os"
	"strings"

	"github.com/h2non/filetype"
)

const maxContentScanBytes int64 = 10 * 1024 * 1024

// readFileContent returns nil content without error when the file exceeds
// maxSize.
func readFileContent(path string, maxSize int64) ([]byte, error) {
	if maxSize <= 0 || maxSize > maxContentScanBytes {
		maxSize = maxContentScanBytes
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err == nil && stat.Size() > maxSize {
		return nil, nil
	}
	return io.ReadAll(io.LimitReader(file, maxSize))
}

// looksBinary reports content whose header identifies a known binary format,
// such as an archive or image saved under a source extension.
func looksBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	head := content
	if len(head) > 262 {
		head = head[:262]
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return false
	}
	return !strings.HasPrefix(kind.MIME.Value, "text/")
}

// decodeText substitutes invalid UTF-8 sequences instead of failing.
func decodeText(content []byte) string {
	return strings.ToValidUTF8(string(content), "�")
}
