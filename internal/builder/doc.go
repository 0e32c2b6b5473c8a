// Package builder turns an image URL into a grid of palette labels and hands
// it to a placement sink.
//
// The pipeline is fetch, decode, resize, then one palette match per output
// pixel, run synchronously. Failures abort the whole build; no partial grid is
// ever returned or placed. Every error from Builder.Build is a *Error whose
// Kind tells the caller whether the fetch, the decode or the palette was at
// fault.
//
// Grid cell (x, z) corresponds to resized image column x and row z, and is
// placed at origin + (x, 0, z).
package builder
