// Package images resolves declared container image references against the
// image configuration carried by serialization settings.
package images

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/go-containerregistry/pkg/name"
)

// Image is one named image of the configuration.
type Image struct {
	// Name identifies the image within the configuration ("default", ...).
	Name string `json:"name"`

	// FQN is the fully qualified repository name, without tag.
	FQN string `json:"fqn"`

	Tag string `json:"tag,omitempty"`
}

// URI joins the repository and the tag.
func (i Image) URI() string {
	if i.Tag == "" {
		return i.FQN
	}
	return i.FQN + ":" + i.Tag
}

// Config is the image set a task may refer to by name.
type Config struct {
	Default Image   `json:"default"`
	Images  []Image `json:"images,omitempty"`
}

// Find looks an image up by name. "default" finds the default image.
func (c Config) Find(imageName string) (Image, bool) {
	if imageName == "default" {
		return c.Default, true
	}
	for _, img := range c.Images {
		if img.Name == imageName {
			return img, true
		}
	}
	return Image{}, false
}

var (
	ErrUnknownImage     = errors.New("images: no image with that name is configured")
	ErrUnknownAttribute = errors.New("images: placeholder refers to an unknown attribute")
	ErrBadReference     = errors.New("images: image reference does not parse")
)

// placeholders look like {{.image.<name>.fqn}} or {{.image.<name>.version}}
var placeholderPattern = regexp.MustCompile(`{{\s*\.images?\.([a-zA-Z0-9_]+)\.([a-zA-Z0-9_]+)\s*}}`)

// Resolve reconciles a declared image reference against cfg:
//
//   - empty references resolve to the default image URI,
//   - placeholder references ({{.image.<name>.<attr>}}) are expanded from
//     the named image,
//   - anything else is parsed as an image reference and normalized
//     (a missing tag becomes ":latest").
func Resolve(declared string, cfg Config) (string, error) {
	if declared == "" {
		return cfg.Default.URI(), nil
	}

	if placeholderPattern.MatchString(declared) {
		return expand(declared, cfg)
	}

	ref, err := name.ParseReference(declared, name.WithDefaultRegistry(""))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %s", ErrBadReference, declared, err)
	}
	return ref.Name(), nil
}

func expand(declared string, cfg Config) (string, error) {
	var expandErr error
	expanded := placeholderPattern.ReplaceAllStringFunc(declared, func(match string) string {
		groups := placeholderPattern.FindStringSubmatch(match)
		imageName, attr := groups[1], groups[2]

		img, ok := cfg.Find(imageName)
		if !ok {
			expandErr = fmt.Errorf("%w: %q", ErrUnknownImage, imageName)
			return match
		}

		switch attr {
		case "fqn":
			return img.FQN
		case "version":
			return img.Tag
		default:
			expandErr = fmt.Errorf("%w: %q", ErrUnknownAttribute, attr)
			return match
		}
	})
	if expandErr != nil {
		return "", expandErr
	}
	return expanded, nil
}
