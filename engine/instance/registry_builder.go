package instance

import "github.com/veldt-engine/veldt/engine/model"

type RegistryBuilderOption func(*registry)

// WithModel attaches the geometry model shared by all instances in the registry.
//
// Parameters:
//   - m: the model to attach
//
// Returns:
//   - RegistryBuilderOption: a function that sets the registry's model
func WithModel(m model.Model) RegistryBuilderOption {
	return func(r *registry) {
		r.model = m
	}
}

// WithLabel sets the debug label used in device resource names.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - RegistryBuilderOption: a function that sets the registry's label
func WithLabel(label string) RegistryBuilderOption {
	return func(r *registry) {
		r.label = label
	}
}

// WithInitialCapacity pre-sizes the mirror for at least slots records,
// rounded up to the next power of two. Use when the expected population is
// known to avoid early growth re-uploads.
//
// Parameters:
//   - slots: the minimum initial capacity in slots
//
// Returns:
//   - RegistryBuilderOption: a function that sets the initial capacity
func WithInitialCapacity(slots int) RegistryBuilderOption {
	return func(r *registry) {
		if slots > 0 {
			r.initialSlots = slots
		}
	}
}

// WithUploadWorkers sets the number of workers used to marshal records in
// parallel during full-mirror re-uploads. Defaults to the CPU count.
//
// Parameters:
//   - workers: the worker count (values < 1 are ignored)
//
// Returns:
//   - RegistryBuilderOption: a function that sets the worker count
func WithUploadWorkers(workers int) RegistryBuilderOption {
	return func(r *registry) {
		if workers > 0 {
			r.uploadWorkers = workers
		}
	}
}

// WithParallelThreshold sets the live-set size at which full re-uploads
// switch from serial to parallel marshalling.
//
// Parameters:
//   - threshold: the minimum live count for parallel marshalling
//
// Returns:
//   - RegistryBuilderOption: a function that sets the threshold
func WithParallelThreshold(threshold int) RegistryBuilderOption {
	return func(r *registry) {
		if threshold > 0 {
			r.parallelThreshold = threshold
		}
	}
}
