package assetforge

// ConcatAudio joins encoded audio buffers in order. The bytes are copied as
// is: it only yields a playable stream for formats that tolerate plain
// concatenation, such as MP3.
func ConcatAudio(parts [][]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	out := make([]byte, size)
	offset := 0
	for _, p := range parts {
		offset += copy(out[offset:], p)
	}
	return out
}
