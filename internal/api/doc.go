// Package api exposes the asset pipeline over HTTP. Uploads arrive as
// multipart forms; images come back as raw bytes and collectible bundles
// as JSON with base64 payloads.
package api
