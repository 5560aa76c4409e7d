package loader

type LoaderBuilderOption func(*loader)

// WithMaxDimension caps the longer axis of loaded textures. Images exceeding
// the cap are downscaled with linear filtering, preserving aspect ratio.
//
// Parameters:
//   - maxDim: the maximum pixel size of the longer axis (values < 1 are ignored)
//
// Returns:
//   - LoaderBuilderOption: a function that sets the dimension cap
func WithMaxDimension(maxDim int) LoaderBuilderOption {
	return func(l *loader) {
		if maxDim > 0 {
			l.maxDimension = maxDim
		}
	}
}
