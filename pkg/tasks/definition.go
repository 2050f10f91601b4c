package tasks

import (
	"errors"
	"fmt"
	"os"

	kubecore "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"
)

var ErrInvalidDefinition = errors.New("tasks: invalid task definition")

// PodTemplate is the user-declared partial pod specification of a task.
// Spec is optional; a definition without one renders no pod document.
type PodTemplate struct {
	PrimaryContainerName string            `json:"primaryContainerName,omitempty"`
	Labels               map[string]string `json:"labels,omitempty"`
	Annotations          map[string]string `json:"annotations,omitempty"`
	Spec                 *kubecore.PodSpec `json:"spec,omitempty"`
}

// Definition is the declarative (YAML) form of one task.
//
// The embedded pod spec is a plain kubernetes PodSpec; the document is
// parsed with sigs.k8s.io/yaml so kubernetes types decode by their
// manifest field names.
type Definition struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`

	Command []string `json:"command"`
	Args    []string `json:"args,omitempty"`

	Resources Spec              `json:"resources,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
	Config    map[string]string `json:"config,omitempty"`

	PodTemplate *PodTemplate `json:"podTemplate,omitempty"`
}

// DefaultPrimaryContainerName names the synthesized primary container when
// a pod template does not designate one.
const DefaultPrimaryContainerName = "primary"

// PrimaryName is the designated primary container name of the definition.
func (d *Definition) PrimaryName() string {
	if d.PodTemplate != nil && d.PodTemplate.PrimaryContainerName != "" {
		return d.PodTemplate.PrimaryContainerName
	}
	return DefaultPrimaryContainerName
}

func (d *Definition) validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidDefinition)
	}
	if len(d.Command) == 0 {
		return fmt.Errorf("%w: command is empty (task %s)", ErrInvalidDefinition, d.Name)
	}
	return nil
}

// LoadDefinition reads and validates a task definition from a YAML file.
func LoadDefinition(path string) (*Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDefinition(content)
}

// ParseDefinition decodes and validates a task definition document.
func ParseDefinition(content []byte) (*Definition, error) {
	d := &Definition{}
	if err := yaml.UnmarshalStrict(content, d); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDefinition, err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}
