package packstream

// encodeUTF8 returns the UTF-8 encoding of s. Go strings are already
// UTF-8 bytes, so this is a direct conversion; it exists as a named
// step to keep the Packer reading like spec.md §2's component list
// ("UTF-8 Codec: encode(string) -> bytes").
func encodeUTF8(s string) []byte {
	return []byte(s)
}

// decodeUTF8 reads exactly byteCount bytes from r and returns them as
// a string. PackStream does not validate that the bytes are
// well-formed UTF-8 on decode; malformed input round-trips as Go's
// replacement-free raw conversion would, same as amf0's string decode.
func decodeUTF8(r Reader, byteCount uint32) (string, error) {
	b, err := r.ReadBytes(byteCount)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
