// Command assetforge recolors line art, derives collectible bundles from
// animated GIFs, stamps watermarks and serves the same operations over
// HTTP.
package main
