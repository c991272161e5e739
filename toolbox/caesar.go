package toolbox

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const CaesarShift = 5

var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

func CaesarEncrypt(s string) (string, error) {
	return shift(s, CaesarShift)
}

func CaesarDecrypt(s string) (string, error) {
	return shift(s, -CaesarShift)
}

// shift 对每个码点加上offset, 不取模也不限于字母.
// 结果落在合法码点之外(负数, 超过U+10FFFF, 或代理区)时返回错误
func shift(s string, offset int) (string, error) {
	if !utf8.ValidString(s) {
		return "", ErrInvalidUTF8
	}

	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		shifted := int64(r) + int64(offset)
		if shifted < 0 || shifted > utf8.MaxRune || !utf8.ValidRune(rune(shifted)) {
			return "", fmt.Errorf("character %U at byte %d shifts to %#x, which is not a valid code point", r, i, shifted)
		}
		b.WriteRune(rune(shifted))
	}

	return b.String(), nil
}
