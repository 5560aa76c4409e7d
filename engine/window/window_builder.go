package window

type WindowBuilderOption func(*engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title
//
// Returns:
//   - WindowBuilderOption: a function that sets the window's title
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the requested window size. The actual framebuffer size may
// differ on high-DPI displays.
//
// Parameters:
//   - width: the requested width in screen coordinates
//   - height: the requested height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: a function that sets the window's size
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 && height > 0 {
			w.width = width
			w.height = height
		}
	}
}
