package blob

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidDataURL is returned for anything that is not a base64 png or jpeg data url
var ErrInvalidDataURL = errors.New("invalid image data url")

// extensions maps the accepted content types to their object key extension
var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
}

// Image is a decoded captured image
type Image struct {
	Data        []byte
	ContentType string
}

// Extension is the file extension used in the object key
func (i Image) Extension() string {
	return extensions[i.ContentType]
}

// ListImageKey is the object key for a list's image
func ListImageKey(listID string, img Image) string {
	return "lists/" + listID + "." + img.Extension()
}

// DecodeDataURL parses data:image/<png|jpeg>;base64,<payload>
func DecodeDataURL(s string) (Image, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return Image{}, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Image{}, ErrInvalidDataURL
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return Image{}, ErrInvalidDataURL
	}
	contentType = strings.ToLower(contentType)
	if contentType == "image/jpg" {
		contentType = "image/jpeg"
	}
	if _, ok := extensions[contentType]; !ok {
		return Image{}, ErrInvalidDataURL
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return Image{}, ErrInvalidDataURL
	}
	return Image{Data: data, ContentType: contentType}, nil
}
