package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestDecodeImage(t *testing.T) {
	for _, payload := range []string{"data:image/png;base64," + pixelPNG, pixelPNG} {
		img, err := DecodeImage(payload)
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.ContentType)
		assert.Equal(t, ".png", img.Extension)
		assert.NotEmpty(t, img.Data)
	}
}

func TestDecodeImageRejects(t *testing.T) {
	cases := map[string]error{
		"":                           ErrInvalidImageData,
		"data:image/png,plain":       ErrInvalidImageData,
		"data:image/png;base64,!!!!": ErrInvalidImageData,
		base64.StdEncoding.EncodeToString([]byte("just some text")): ErrNotAnImage,
	}
	for payload, want := range cases {
		_, err := DecodeImage(payload)
		assert.ErrorIs(t, err, want, payload)
	}
}
