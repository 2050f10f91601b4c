package tasks

import (
	xe "github.com/flowkit/flowkit/pkg/errors"
)

// ResourceRequirements holds the sparse limit/request entries of a
// container descriptor.
type ResourceRequirements struct {
	Limits   []ResourceEntry
	Requests []ResourceEntry
}

// Container is the computed descriptor of a task's container,
// ready for submission. Immutable once built.
type Container struct {
	Image     string
	Command   []string
	Args      []string
	Resources ResourceRequirements
	Env       map[string]string
	Config    map[string]string
}

// NewContainer builds the container descriptor of a task.
//
// The resource spec must be singular (each dimension at most once) and its
// quantities must parse; both are caller-contract violations otherwise.
// Empty quantities are omitted from the descriptor. A nil env defaults to an
// empty map.
func NewContainer(
	image string,
	spec Spec,
	command []string,
	args []string,
	config map[string]string,
	env map[string]string,
) (Container, error) {
	limits, err := spec.Limits.Singular()
	if err != nil {
		return Container{}, xe.Wrap(err)
	}
	requests, err := spec.Requests.Singular()
	if err != nil {
		return Container{}, xe.Wrap(err)
	}
	if err := limits.Validate(); err != nil {
		return Container{}, xe.Wrap(err)
	}
	if err := requests.Validate(); err != nil {
		return Container{}, xe.Wrap(err)
	}

	if env == nil {
		env = map[string]string{}
	}
	if config == nil {
		config = map[string]string{}
	}

	return Container{
		Image:   image,
		Command: command,
		Args:    args,
		Resources: ResourceRequirements{
			Limits:   limits.Entries(),
			Requests: requests.Entries(),
		},
		Env:    env,
		Config: config,
	}, nil
}
