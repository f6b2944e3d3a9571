package parser

import "encoding/base64"

// The legacy serializer wraps icon payloads in a fixed 212-character
// envelope, and the decoded bytes carry 2 leading and 1 trailing container
// bytes. These offsets are inherent to that container format; keep them
// exactly as-is.
const (
	legacyImageMinTextLen   = 216
	legacyImagePayloadStart = 212
)

// decodeLegacyImage best-effort extracts the embedded image from its legacy
// container text. Under-length text or an undecodable payload yields an
// empty image, never an error.
func decodeLegacyImage(text string) []byte {
	if len(text) < legacyImageMinTextLen {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(text[legacyImagePayloadStart:])
	if err != nil || len(data) < 3 {
		return nil
	}
	return data[2 : len(data)-1]
}
