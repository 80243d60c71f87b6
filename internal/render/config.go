package render

import "image"

// Logical canvas of the reference display; FBRenderer scales it to the device.
const (
	DefaultCanvasWidth  = 144
	DefaultCanvasHeight = 168
)

// CanvasBounds returns the logical canvas rectangle, substituting the
// reference size for non-positive dimensions.
func CanvasBounds(width, height int) image.Rectangle {
	if width <= 0 {
		width = DefaultCanvasWidth
	}
	if height <= 0 {
		height = DefaultCanvasHeight
	}
	return image.Rect(0, 0, width, height)
}
