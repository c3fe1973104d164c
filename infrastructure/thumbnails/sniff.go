package thumbnails

import (
	"bytes"
	"strings"

	"youtube-fetcher/domain/model"
)

var (
	pngSignature  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegSignature = []byte{0xff, 0xd8}
)

// DetectMediaType classifies image bytes by their magic-byte signature, with
// the declared content type as fallback. Extensions and headers lie often
// enough that the bytes win.
func DetectMediaType(data []byte, contentType string) model.MediaType {
	if len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return model.MediaTypeWebP
	}
	if bytes.HasPrefix(data, pngSignature) {
		return model.MediaTypePNG
	}
	if bytes.HasPrefix(data, jpegSignature) {
		return model.MediaTypeJPEG
	}

	switch {
	case strings.Contains(contentType, "webp"):
		return model.MediaTypeWebP
	case strings.Contains(contentType, "png"):
		return model.MediaTypePNG
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return model.MediaTypeJPEG
	}
	return model.MediaTypeUnknown
}

// Extension maps a media type to a debug file extension
func Extension(mediaType model.MediaType) string {
	switch mediaType {
	case model.MediaTypeWebP:
		return ".webp"
	case model.MediaTypePNG:
		return ".png"
	case model.MediaTypeJPEG:
		return ".jpg"
	}
	return ".bin"
}
