// Package serialization holds the settings under which task definitions are
// rendered for submission: registration coordinates (project, domain,
// version), the image configuration and ambient environment variables.
package serialization

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flowkit/flowkit/pkg/images"
)

var (
	ErrIncompleteSettings = errors.New("serialization: incomplete settings")
	ErrInvalidImageConfig = errors.New("serialization: invalid image config")
)

// Settings parameterizes one rendering run.
type Settings struct {
	// Project / Domain / Version locate the rendered tasks on the platform.
	Project string
	Domain  string
	Version string

	// Images is the image set task definitions may refer to by name.
	Images images.Config

	// Env is injected into every rendered task container.
	Env map[string]string
}

func (s *Settings) UnmarshalYAML(node *yaml.Node) error {
	raw := struct {
		Project string            `yaml:"project"`
		Domain  string            `yaml:"domain"`
		Version string            `yaml:"version"`
		Images  rawImageConfig    `yaml:"images"`
		Env     map[string]string `yaml:"env"`
	}{}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	if raw.Project == "" {
		return fmt.Errorf("%w: project is empty", ErrIncompleteSettings)
	}
	if raw.Domain == "" {
		return fmt.Errorf("%w: domain is empty", ErrIncompleteSettings)
	}
	if raw.Version == "" {
		return fmt.Errorf("%w: version is empty", ErrIncompleteSettings)
	}

	cfg, err := raw.Images.build()
	if err != nil {
		return err
	}

	s.Project = raw.Project
	s.Domain = raw.Domain
	s.Version = raw.Version
	s.Images = cfg
	s.Env = raw.Env
	return nil
}

type rawImage struct {
	Name string `yaml:"name"`
	FQN  string `yaml:"fqn"`
	Tag  string `yaml:"tag"`
}

type rawImageConfig struct {
	Default rawImage   `yaml:"default"`
	Named   []rawImage `yaml:"named"`
}

func (r rawImageConfig) build() (images.Config, error) {
	if r.Default.FQN == "" {
		return images.Config{}, fmt.Errorf("%w: default image has no fqn", ErrInvalidImageConfig)
	}

	cfg := images.Config{
		Default: images.Image{Name: "default", FQN: r.Default.FQN, Tag: r.Default.Tag},
	}
	for _, n := range r.Named {
		if n.Name == "" || n.FQN == "" {
			return images.Config{}, fmt.Errorf(
				"%w: named image needs both name and fqn: %+v", ErrInvalidImageConfig, n,
			)
		}
		cfg.Images = append(cfg.Images, images.Image{Name: n.Name, FQN: n.FQN, Tag: n.Tag})
	}
	return cfg, nil
}

// Load reads Settings from a YAML file.
func Load(path string) (*Settings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := &Settings{}
	if err := yaml.Unmarshal(content, s); err != nil {
		return nil, err
	}
	return s, nil
}
