package file

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/ctransposer/util"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
	"golang.org/x/net/html/charset"
)

const xzExt = ".xz"

// Long lines happen in pasted tabs.
const maxLineBytes = 1024 * 1024

func IsCompressed(path string) bool {
	return strings.HasSuffix(path, xzExt)
}

// ReadLines reads a song file into lines without terminators. .xz files are
// decompressed. A non-empty encoding names the charset to decode from, e.g.
// "latin1" or "windows-1252".
func ReadLines(path string, encoding string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open song file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if IsCompressed(path) {
		r, err = xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("could not decompress %s: %w", path, err)
		}
	}
	return Decode(r, encoding)
}

// Decode splits r into lines, converting from encoding to UTF-8 first when
// one is given.
func Decode(r io.Reader, encoding string) ([]string, error) {
	if encoding != "" {
		decoded, err := charset.NewReaderLabel(encoding, r)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
		}
		r = decoded
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read song: %w", err)
	}
	return lines, nil
}

// WriteLines writes lines to path, each followed by a newline, compressing
// when path ends in .xz.
func WriteLines(path string, lines []string) (e error) {
	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil && e == nil {
			e = err
		}
	}()

	var w io.Writer = f
	var xw *xz.Writer
	if IsCompressed(path) {
		xw, err = xz.NewWriter(f)
		if err != nil {
			return fmt.Errorf("could not compress %s: %w", path, err)
		}
		w = xw
	}

	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if xw != nil {
		return xw.Close()
	}
	return nil
}

// TransposedName returns where a song transposed by semitones is written:
// "song.txt" becomes "song[+2].txt", "song.txt.xz" becomes "song[-1].txt.xz".
func TransposedName(path string, semitones int) string {
	trimmed := strings.TrimSuffix(path, xzExt)
	ext := filepath.Ext(trimmed)
	name := strings.TrimSuffix(trimmed, ext)
	res := fmt.Sprintf("%s[%+d]%s", name, semitones, ext)
	if IsCompressed(path) {
		res += xzExt
	}
	return res
}

// SplitLines turns pasted text into song lines.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Digest identifies a song by its content.
func Digest(lines []string) string {
	sum := blake3.Sum256([]byte(JoinLines(lines)))
	return hex.EncodeToString(sum[:])
}
