// Package tasks holds the task-level descriptors this SDK renders into
// platform submissions: resource declarations and container descriptors.
package tasks

import (
	"errors"
	"fmt"
	"strings"

	kubeapiresource "k8s.io/apimachinery/pkg/api/resource"
)

// ResourceName identifies a resource dimension a task may request or limit.
type ResourceName string

const (
	ResourceCPU              ResourceName = "CPU"
	ResourceGPU              ResourceName = "GPU"
	ResourceMemory           ResourceName = "MEMORY"
	ResourceEphemeralStorage ResourceName = "EPHEMERAL_STORAGE"
)

// Key is the kubernetes-facing spelling of the dimension:
// lowercased, with '_' turned into '-'.
func (n ResourceName) Key() string {
	return strings.ReplaceAll(strings.ToLower(string(n)), "_", "-")
}

var (
	ErrPluralResource  = errors.New("tasks: resource dimension declared more than once")
	ErrInvalidQuantity = errors.New("tasks: resource quantity does not parse")
)

// QuantityList is what a caller declared for one resource dimension.
// A dimension may legally carry zero or one value; more is a caller error
// caught by Singular.
type QuantityList []string

// Resources is one side (requests or limits) of a resource declaration.
type Resources struct {
	CPU              QuantityList `json:"cpu,omitempty"`
	Memory           QuantityList `json:"memory,omitempty"`
	GPU              QuantityList `json:"gpu,omitempty"`
	EphemeralStorage QuantityList `json:"ephemeralStorage,omitempty"`
}

// Spec pairs the requested and limiting quantities of a task.
type Spec struct {
	Requests Resources `json:"requests,omitempty"`
	Limits   Resources `json:"limits,omitempty"`
}

// ResourceSet is a validated, at-most-one-value-per-dimension resource set.
type ResourceSet struct {
	CPU              string
	Memory           string
	GPU              string
	EphemeralStorage string
}

// Singular validates that every dimension carries at most one value and
// flattens the declaration. Violation is a caller-contract error, wrapped
// around ErrPluralResource.
func (r Resources) Singular() (ResourceSet, error) {
	set := ResourceSet{}
	for _, dim := range []struct {
		name   ResourceName
		values QuantityList
		into   *string
	}{
		{ResourceCPU, r.CPU, &set.CPU},
		{ResourceMemory, r.Memory, &set.Memory},
		{ResourceGPU, r.GPU, &set.GPU},
		{ResourceEphemeralStorage, r.EphemeralStorage, &set.EphemeralStorage},
	} {
		switch len(dim.values) {
		case 0:
			// not declared
		case 1:
			*dim.into = dim.values[0]
		default:
			return ResourceSet{}, fmt.Errorf(
				"%w: %s has %d values", ErrPluralResource, dim.name, len(dim.values),
			)
		}
	}
	return set, nil
}

// Validate checks that every non-empty quantity is parsable
// kubernetes quantity syntax ("1", "500m", "1Gi", ...).
func (s ResourceSet) Validate() error {
	for _, e := range s.Entries() {
		if _, err := kubeapiresource.ParseQuantity(e.Value); err != nil {
			return fmt.Errorf("%w: %s=%q: %s", ErrInvalidQuantity, e.Name, e.Value, err)
		}
	}
	return nil
}

// ResourceEntry is one (dimension, quantity) pair of a container descriptor.
type ResourceEntry struct {
	Name  ResourceName
	Value string
}

// Entries projects the set into a sparse list, omitting empty dimensions.
// Order is fixed: ephemeral-storage, cpu, gpu, memory.
func (s ResourceSet) Entries() []ResourceEntry {
	entries := []ResourceEntry{}
	if s.EphemeralStorage != "" {
		entries = append(entries, ResourceEntry{ResourceEphemeralStorage, s.EphemeralStorage})
	}
	if s.CPU != "" {
		entries = append(entries, ResourceEntry{ResourceCPU, s.CPU})
	}
	if s.GPU != "" {
		entries = append(entries, ResourceEntry{ResourceGPU, s.GPU})
	}
	if s.Memory != "" {
		entries = append(entries, ResourceEntry{ResourceMemory, s.Memory})
	}
	return entries
}
