package services

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAvatar(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		wantExt     string
		wantErr     bool
	}{
		{"png", "avatar.png", "image/png", ".png", false},
		{"jpg", "photo.jpg", "image/jpeg", ".jpg", false},
		{"jpeg", "photo.JPEG", "image/jpeg", ".jpeg", false},
		{"gif", "anim.gif", "image/gif", ".gif", false},
		{"mime case-insensitive", "avatar.png", "IMAGE/PNG", ".png", false},
		{"png name with html type", "avatar.png", "text/html", "", true},
		{"jpg name with png type", "photo.jpg", "image/png", "", true},
		{"exe name with image type", "avatar.exe", "image/png", "", true},
		{"no extension", "avatar", "image/png", "", true},
		{"empty content type", "avatar.png", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := ValidateAvatar(tt.filename, tt.contentType)
			if tt.wantErr {
				var fileTypeErr *InvalidFileTypeError
				require.ErrorAs(t, err, &fileTypeErr)
				assert.NotEmpty(t, fileTypeErr.Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestValidateAvatarBytes(t *testing.T) {
	require.NoError(t, ValidateAvatarBytes(pngBytes(t)))

	var fileTypeErr *InvalidFileTypeError
	err := ValidateAvatarBytes([]byte("<html><body>not an image</body></html>"))
	require.ErrorAs(t, err, &fileTypeErr)
}

func TestAvatarObjectNamesNeverCollide(t *testing.T) {
	actorID := uuid.New()

	first := AvatarObjectName(actorID, ".png")
	second := AvatarObjectName(actorID, ".png")

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, actorID.String()+"-"))
	assert.True(t, strings.HasSuffix(first, ".png"))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}
