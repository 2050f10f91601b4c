package pod

import (
	kubecore "k8s.io/api/core/v1"

	"github.com/flowkit/flowkit/pkg/configs/serialization"
	xe "github.com/flowkit/flowkit/pkg/errors"
	"github.com/flowkit/flowkit/pkg/images"
	"github.com/flowkit/flowkit/pkg/tasks"
)

// Rendered is the submission-ready form of one task definition.
type Rendered struct {
	Name      string
	Container tasks.Container

	// PodSpec is the merged pod spec mapping, empty when the definition
	// declares no pod spec.
	PodSpec map[string]any

	Labels      map[string]string
	Annotations map[string]string
}

// Render computes the task's container descriptor under the given settings
// and merges it into the definition's pod template.
//
// The container image is resolved against the settings' image config
// (a definition without image runs on the default image). Environment
// variables from the settings apply first; the definition's own entries
// override them on key collision. A definition without a pod template is
// rendered with an empty pod spec so the primary container still appears
// in the output mapping.
func Render(def *tasks.Definition, settings *serialization.Settings) (*Rendered, error) {
	image, err := images.Resolve(def.Image, settings.Images)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	env := map[string]string{}
	for k, v := range settings.Env {
		env[k] = v
	}
	for k, v := range def.Env {
		env[k] = v
	}

	container, err := tasks.NewContainer(
		image, def.Resources, def.Command, def.Args, def.Config, env,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	tpl := Template{
		PodSpec:              &kubecore.PodSpec{},
		PrimaryContainerName: def.PrimaryName(),
	}
	if pt := def.PodTemplate; pt != nil {
		tpl.Labels = pt.Labels
		tpl.Annotations = pt.Annotations
		if pt.Spec != nil {
			tpl.PodSpec = pt.Spec
		}
	}

	mapping, err := Serialize(tpl, container, settings)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	return &Rendered{
		Name:        def.Name,
		Container:   container,
		PodSpec:     mapping,
		Labels:      tpl.Labels,
		Annotations: tpl.Annotations,
	}, nil
}
