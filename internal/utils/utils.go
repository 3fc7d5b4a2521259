package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

// Accepted sign photo encodings. The upload UI limits files to PNG and JPEG.
var acceptedPrefixes = []string{
	"data:image/png;base64,",
	"data:image/jpeg;base64,",
	"data:image/jpg;base64,",
}

var (
	ErrEmptyImage       = errors.New("image is empty")
	ErrUnsupportedImage = errors.New("image must be a PNG or JPEG data URL")
	ErrCorruptImage     = errors.New("image data is not valid base64")
)

// NormalizeImageDataURL trims the submitted value and verifies it is a
// base64 data URL of an accepted image type with a decodable payload.
// It returns the trimmed value unchanged otherwise.
func NormalizeImageDataURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmptyImage
	}

	var payload string
	for _, prefix := range acceptedPrefixes {
		if strings.HasPrefix(s, prefix) {
			payload = s[len(prefix):]
			break
		}
	}
	if payload == "" {
		return "", ErrUnsupportedImage
	}

	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return "", ErrCorruptImage
	}

	return s, nil
}
