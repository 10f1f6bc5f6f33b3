// Package imaging loads source images and derives tinted, cropped and
// rotated images from them.
//
// The Loader reads a file into memory and decodes it, skipping the work when
// the file's modification time has not changed since the previous load. The
// Pipeline then runs up to three stages against the loaded image:
//
//  1. Crop: copy a rectangle positioned relative to one of five anchors
//  2. Tint: render through the greyscale matrix, then the configured matrix
//  3. Transform: flip, then rotate clockwise about the center
//
// Each stage reads the previous stage's output, or the source image when no
// earlier stage ran. Stages whose parameters are inert are skipped, and a
// pipeline in which every stage is inert produces no derived image at all.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner of the
// image; X increases rightward and Y downward. Positive rotation angles turn
// the image clockwise.
//
// # Backends
//
// All drawing goes through the Backend interface. Software is the default,
// built on github.com/disintegration/imaging for per-pixel color work and
// flips and on golang.org/x/image/draw for region copies and resampled
// rotation. Backends never modify their inputs; a derived image is always a
// fresh allocation.
//
// # Thread Safety
//
// Loader and Pipeline hold no mutable state and can be shared. The images
// they return are not synchronized; the owner of a slot serializes access.
package imaging
