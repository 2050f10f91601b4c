// Package pod merges user-declared pod templates with computed task
// containers and serializes the result into the platform submission shape.
package pod

import (
	"encoding/json"
	"fmt"
	"sort"

	kubecore "k8s.io/api/core/v1"
	kubeapiresource "k8s.io/apimachinery/pkg/api/resource"

	"github.com/flowkit/flowkit/pkg/configs/serialization"
	xe "github.com/flowkit/flowkit/pkg/errors"
	"github.com/flowkit/flowkit/pkg/images"
	"github.com/flowkit/flowkit/pkg/tasks"
)

// Template is the user-declared, partial pod specification of a task.
//
// PrimaryContainerName designates the container that task-level attributes
// (image, command, args, resources, env) are merged into.
type Template struct {
	PodSpec              *kubecore.PodSpec
	PrimaryContainerName string
	Labels               map[string]string
	Annotations          map[string]string
}

// Serialize merges the template with the computed primary container and
// returns the pod spec as a nested mapping in Kubernetes manifest shape.
//
// The template is never mutated; all merging happens on a deep copy.
// A template without a pod spec serializes to an empty mapping.
//
// Merge rules for the primary container (appended as a placeholder when the
// template does not declare it):
//
//   - image: the computed image only when the template declares none;
//     a declared image goes through image resolution instead,
//   - command/args: always the computed values,
//   - resources: computed entries, with dimension names in their
//     kubernetes spelling; never overwritten with an empty set,
//   - env: computed entries prepended to declared ones. Keys are NOT
//     deduplicated, so a key declared on both sides appears twice
//     (the computed occurrence first).
//
// Images of non-primary containers go through image resolution too.
func Serialize(
	tpl Template,
	primary tasks.Container,
	settings *serialization.Settings,
) (map[string]any, error) {
	if tpl.PodSpec == nil {
		return map[string]any{}, nil
	}

	spec := tpl.PodSpec.DeepCopy()

	primaryDeclared := false
	for _, c := range spec.Containers {
		if c.Name == tpl.PrimaryContainerName {
			primaryDeclared = true
			break
		}
	}
	if !primaryDeclared {
		spec.Containers = append(
			spec.Containers, kubecore.Container{Name: tpl.PrimaryContainerName},
		)
	}

	for nth := range spec.Containers {
		c := &spec.Containers[nth]

		if c.Name != tpl.PrimaryContainerName {
			resolved, err := images.Resolve(c.Image, settings.Images)
			if err != nil {
				return nil, xe.Wrap(err)
			}
			c.Image = resolved
			continue
		}

		if c.Image == "" {
			c.Image = primary.Image
		} else {
			resolved, err := images.Resolve(c.Image, settings.Images)
			if err != nil {
				return nil, xe.Wrap(err)
			}
			c.Image = resolved
		}

		c.Command = primary.Command
		c.Args = primary.Args

		if err := mergeResources(c, primary.Resources); err != nil {
			return nil, xe.Wrap(err)
		}
		c.Env = append(envOf(primary.Env), c.Env...)
	}

	return asMapping(spec)
}

// mergeResources applies the computed resource entries onto the container.
// An empty computed set leaves the declared resources untouched.
func mergeResources(c *kubecore.Container, computed tasks.ResourceRequirements) error {
	limits, err := resourceList(computed.Limits)
	if err != nil {
		return err
	}
	requests, err := resourceList(computed.Requests)
	if err != nil {
		return err
	}

	if len(limits) == 0 && len(requests) == 0 {
		return nil
	}
	c.Resources = kubecore.ResourceRequirements{Limits: limits, Requests: requests}
	return nil
}

func resourceList(entries []tasks.ResourceEntry) (kubecore.ResourceList, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	list := kubecore.ResourceList{}
	for _, e := range entries {
		q, err := kubeapiresource.ParseQuantity(e.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %s", tasks.ErrInvalidQuantity, e.Name, e.Value, err)
		}
		list[kubecore.ResourceName(e.Name.Key())] = q
	}
	return list, nil
}

// envOf converts the computed env mapping into EnvVars, in key order so
// rendering is deterministic.
func envOf(env map[string]string) []kubecore.EnvVar {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vars := make([]kubecore.EnvVar, len(keys))
	for nth, k := range keys {
		vars[nth] = kubecore.EnvVar{Name: k, Value: env[k]}
	}
	return vars
}

// asMapping lowers the pod spec into the tool-agnostic nested mapping,
// going through the corev1 json tags (the manifest shape).
func asMapping(spec *kubecore.PodSpec) (map[string]any, error) {
	encoded, err := json.Marshal(spec)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	mapping := map[string]any{}
	if err := json.Unmarshal(encoded, &mapping); err != nil {
		return nil, xe.Wrap(err)
	}
	return mapping, nil
}
