package serialization_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/flowkit/flowkit/pkg/cmp"
	"github.com/flowkit/flowkit/pkg/configs/serialization"
	"github.com/flowkit/flowkit/pkg/utils/try"
)

const fullSettings = `
project: demo
domain: development
version: abc123
images:
  default:
    fqn: registry.example.com/flow/runtime
    tag: v1
  named:
    - name: trainer
      fqn: registry.example.com/flow/trainer
      tag: "2024.1"
env:
  LOG_LEVEL: debug
`

func TestUnmarshal(t *testing.T) {
	t.Run("a complete document decodes", func(t *testing.T) {
		s := serialization.Settings{}
		if err := yaml.Unmarshal([]byte(fullSettings), &s); err != nil {
			t.Fatal(err)
		}

		if s.Project != "demo" || s.Domain != "development" || s.Version != "abc123" {
			t.Errorf("wrong coordinates: %+v", s)
		}
		if s.Images.Default.URI() != "registry.example.com/flow/runtime:v1" {
			t.Errorf("wrong default image: %+v", s.Images.Default)
		}
		if img, ok := s.Images.Find("trainer"); !ok || img.Tag != "2024.1" {
			t.Errorf("trainer image is wrong: %+v (%v)", img, ok)
		}
		if !cmp.MapEq(s.Env, map[string]string{"LOG_LEVEL": "debug"}) {
			t.Errorf("wrong env: %v", s.Env)
		}
	})

	for name, testcase := range map[string]struct {
		yaml string
		err  error
	}{
		"a document without project is rejected": {
			yaml: `{domain: d, version: v, images: {default: {fqn: x}}}`,
			err:  serialization.ErrIncompleteSettings,
		},
		"a document without domain is rejected": {
			yaml: `{project: p, version: v, images: {default: {fqn: x}}}`,
			err:  serialization.ErrIncompleteSettings,
		},
		"a document without version is rejected": {
			yaml: `{project: p, domain: d, images: {default: {fqn: x}}}`,
			err:  serialization.ErrIncompleteSettings,
		},
		"a default image without fqn is rejected": {
			yaml: `{project: p, domain: d, version: v}`,
			err:  serialization.ErrInvalidImageConfig,
		},
		"a named image without name is rejected": {
			yaml: `{project: p, domain: d, version: v, images: {default: {fqn: x}, named: [{fqn: y}]}}`,
			err:  serialization.ErrInvalidImageConfig,
		},
	} {
		t.Run(name, func(t *testing.T) {
			s := serialization.Settings{}
			if err := yaml.Unmarshal([]byte(testcase.yaml), &s); !errors.Is(err, testcase.err) {
				t.Errorf("wrong error: (actual, expected) = (%v, %v)", err, testcase.err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("it loads settings from a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		if err := os.WriteFile(path, []byte(fullSettings), 0o644); err != nil {
			t.Fatal(err)
		}

		s := try.To(serialization.Load(path)).OrFatal(t)
		if s.Project != "demo" {
			t.Errorf("wrong project: %s", s.Project)
		}
	})

	t.Run("a missing file is an error", func(t *testing.T) {
		if _, err := serialization.Load(filepath.Join(t.TempDir(), "nosuch.yaml")); err == nil {
			t.Error("error expected")
		}
	})
}
