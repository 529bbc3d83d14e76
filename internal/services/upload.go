package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// AvatarNamespace is the fixed asset-class directory for profile pictures.
const AvatarNamespace = "avatars"

// Allowed extensions and the declared MIME type each must carry.
var avatarMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// AvatarUpload is the raw multipart payload handed in by the transport layer.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ValidateAvatar checks the filename extension and the declared content type
// against each other. A .jpg name with a text/html declaration is rejected,
// and so is an image/png declaration on a .exe name.
func ValidateAvatar(filename, declaredContentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	want, ok := avatarMIMETypes[ext]
	if !ok {
		return "", &InvalidFileTypeError{Reason: "only JPG, PNG, or GIF files are allowed"}
	}
	if !strings.EqualFold(declaredContentType, want) {
		return "", &InvalidFileTypeError{
			Reason: fmt.Sprintf("content type %q does not match %s file", declaredContentType, ext),
		}
	}
	return ext, nil
}

// ValidateAvatarBytes decodes the payload to reject disguised content that
// carries an image name and MIME type but is not an image.
func ValidateAvatarBytes(data []byte) error {
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return &InvalidFileTypeError{Reason: "file content is not a valid image"}
	}
	return nil
}

// AvatarObjectName derives a storage name for an accepted upload. The random
// component keeps back-to-back uploads by the same actor from colliding.
func AvatarObjectName(actorID uuid.UUID, ext string) string {
	return fmt.Sprintf("%s-%s%s", actorID, uuid.New(), ext)
}
