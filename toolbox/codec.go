package toolbox

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"
)

func Base64Encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// Base64Decode skips every byte outside the base64 alphabet and stops at the
// first padding that completes a group, anything after it is ignored. A final
// group that is incomplete is an error.
func Base64Decode(s string) ([]byte, error) {
	var (
		out      = make([]byte, 0, len(s)*3/4)
		quadPos  int
		pads     int
		dataLen  int
		leftover byte
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '=' {
			// 组内至少两个数据字符时填充才有效
			if quadPos >= 2 {
				pads++
				if quadPos+pads >= 4 {
					return out, nil
				}
			}
			continue
		}

		v, ok := base64Value(c)
		if !ok {
			continue
		}
		dataLen++
		pads = 0

		switch quadPos {
		case 0:
			leftover = v
		case 1:
			out = append(out, leftover<<2|v>>4)
			leftover = v & 0x0f
		case 2:
			out = append(out, leftover<<4|v>>2)
			leftover = v & 0x03
		case 3:
			out = append(out, leftover<<6|v)
			leftover = 0
		}
		quadPos = (quadPos + 1) % 4
	}

	switch quadPos {
	case 0:
		return out, nil
	case 1:
		return nil, fmt.Errorf("invalid base64-encoded string: number of data characters (%d) cannot be 1 more than a multiple of 4", dataLen)
	}

	return nil, errors.New("incorrect padding")
}

func base64Value(c byte) (byte, bool) {
	switch {
	case c >= 'A' && c <= 'Z':
		return c - 'A', true
	case c >= 'a' && c <= 'z':
		return c - 'a' + 26, true
	case c >= '0' && c <= '9':
		return c - '0' + 52, true
	case c == '+':
		return 62, true
	case c == '/':
		return 63, true
	}

	return 0, false
}

func SHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func decodeText(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		for i := 0; i < len(raw); {
			r, size := utf8.DecodeRune(raw[i:])
			if r == utf8.RuneError && size <= 1 {
				return "", fmt.Errorf("decoded bytes are not valid UTF-8: invalid byte 0x%02x in position %d", raw[i], i)
			}
			i += size
		}
	}

	return string(raw), nil
}

func hexString(raw []byte) string {
	return hex.EncodeToString(raw)
}
