// Package media classifies input files by media kind and MIME type.
package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is a broad class of media.
type Kind string

const (
	KindImage    Kind = "image"
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindDocument Kind = "document"
)

// Type describes a recognised media file.
type Type struct {
	Kind Kind
	MIME string
}

// types maps lower-case file extensions to their media type.
var types = map[string]Type{
	".png":  {KindImage, "image/png"},
	".jpg":  {KindImage, "image/jpeg"},
	".jpeg": {KindImage, "image/jpeg"},
	".webp": {KindImage, "image/webp"},
	".gif":  {KindImage, "image/gif"},
	".bmp":  {KindImage, "image/bmp"},
	".tif":  {KindImage, "image/tiff"},
	".tiff": {KindImage, "image/tiff"},

	".mp4":  {KindVideo, "video/mp4"},
	".mov":  {KindVideo, "video/quicktime"},
	".avi":  {KindVideo, "video/x-msvideo"},
	".webm": {KindVideo, "video/webm"},

	".wav":  {KindAudio, "audio/wav"},
	".mp3":  {KindAudio, "audio/mpeg"},
	".ogg":  {KindAudio, "audio/ogg"},
	".flac": {KindAudio, "audio/flac"},

	".txt":  {KindDocument, "text/plain"},
	".md":   {KindDocument, "text/markdown"},
	".pdf":  {KindDocument, "application/pdf"},
	".html": {KindDocument, "text/html"},
}

// Detect returns the media type for path based on its extension.
func Detect(path string) (Type, error) {
	ext := strings.ToLower(filepath.Ext(path))
	t, ok := types[ext]
	if !ok {
		return Type{}, fmt.Errorf("could not determine media type for file: %s", path)
	}
	return t, nil
}

// IsImage reports whether path names an image file.
func IsImage(path string) bool {
	t, err := Detect(path)
	return err == nil && t.Kind == KindImage
}
