// Package assetforge transforms media assets at the pixel level: it
// recolors line art, decodes and re-encodes animated GIFs with chroma-key
// background removal, derives collectible bundles (a transparent animation
// and three silhouettes) from one GIF and stamps watermarks on animations.
//
// Every operation takes owned byte buffers or images and returns new ones;
// nothing is shared between calls, so calls may run concurrently.
package assetforge
