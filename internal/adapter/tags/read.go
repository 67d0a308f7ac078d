// Package tags turns tagged audio files into playlist songs.
package tags

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"github.com/tejashwikalptaru/playwise/internal/domain"
)

const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtM4A  = ".m4a"
	ExtOGG  = ".ogg"
)

// ErrUnsupported is returned for files whose extension the reader skips.
var ErrUnsupported = errors.New("unsupported audio format")

// Track is a song read from disk plus the tag fields the playlist core does
// not store itself.
type Track struct {
	Path  string
	Song  domain.Song
	Genre string
}

// IsMusicFile reports whether path has an extension Read understands.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtM4A, ExtOGG:
		return true
	}
	return false
}

// Read extracts title, artist, genre and length from path. A missing title
// falls back to the file name. Length comes from the ID3 TLEN frame when
// present and is zero otherwise.
func Read(path string) (Track, error) {
	if !IsMusicFile(path) {
		return Track{}, ErrUnsupported
	}

	f, err := os.Open(path)
	if err != nil {
		return Track{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if strings.EqualFold(filepath.Ext(path), ExtMP3) {
			// dhowden/tag rejects some UTF-16 ID3 frames that id3v2 reads fine.
			return readMP3Fallback(path, err)
		}
		return Track{}, err
	}

	var length string
	if raw, ok := m.Raw()["TLEN"].(string); ok {
		length = raw
	}
	return newTrack(path, m.Title(), m.Artist(), m.Genre(), length), nil
}

func readMP3Fallback(path string, cause error) (Track, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Track{}, err
	}
	defer id3tag.Close()

	if id3tag.Count() == 0 {
		return Track{}, cause
	}
	return newTrack(path, id3tag.Title(), id3tag.Artist(), id3tag.Genre(), textFrame(id3tag, "TLEN")), nil
}

func textFrame(id3tag *id3v2.Tag, id string) string {
	frames := id3tag.GetFrames(id)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}

func newTrack(path, title, artist, genre, lengthMS string) Track {
	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return Track{
		Path: path,
		Song: domain.Song{
			Title:    title,
			Artist:   strings.TrimSpace(artist),
			Duration: parseLength(lengthMS),
		},
		Genre: strings.TrimSpace(genre),
	}
}

// parseLength converts a TLEN value in milliseconds to whole seconds.
func parseLength(ms string) time.Duration {
	n, err := strconv.ParseInt(strings.TrimSpace(strings.TrimRight(ms, "\x00")), 10, 64)
	if err != nil || n <= 0 {
		return 0
	}
	return (time.Duration(n) * time.Millisecond).Truncate(time.Second)
}
