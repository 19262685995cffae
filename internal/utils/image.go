package utils

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrInvalidImageData = errors.New("image must be a base64 data URI")
	ErrNotAnImage       = errors.New("uploaded file is not an image")
)

// DecodedImage is an image extracted from a base64 data URI.
type DecodedImage struct {
	Data        []byte
	ContentType string
	Extension   string
}

// DecodeImage accepts "data:image/png;base64,...." or bare base64 and
// sniffs the real content type from the decoded bytes.
func DecodeImage(payload string) (*DecodedImage, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, ErrInvalidImageData
	}

	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ";base64,")
		if idx == -1 {
			return nil, ErrInvalidImageData
		}
		payload = payload[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidImageData
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, ErrNotAnImage
	}

	return &DecodedImage{
		Data:        data,
		ContentType: mtype.String(),
		Extension:   mtype.Extension(),
	}, nil
}
