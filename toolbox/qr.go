package toolbox

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/boombuler/barcode/qr"
)

const pngDataURIPrefix = "data:image/png;base64,"

// QROptions 二维码渲染参数
type QROptions struct {
	Level qr.ErrorCorrectionLevel
	// 每个模块的像素数
	BoxSize int
	// 静区宽度, 单位为模块
	Border     int
	Foreground color.Color
	Background color.Color
}

// QRTooLongError 内容超出最大版本的容量. Err中的原始错误包含全部内容, 不出现在Error()里
type QRTooLongError struct {
	Size int
	Err  error
}

func (e *QRTooLongError) Error() string {
	return fmt.Sprintf("data too long for a QR code (%d bytes)", e.Size)
}

func (e *QRTooLongError) Unwrap() error {
	return e.Err
}

func DefaultQROptions() QROptions {
	return QROptions{
		Level:      qr.M,
		BoxSize:    10,
		Border:     3,
		Foreground: color.Black,
		Background: color.White,
	}
}

// QRPNG encodes content with the smallest QR version that fits and renders it
// as a PNG. Content beyond the capacity of the largest version is an error.
func QRPNG(content string, opts QROptions) ([]byte, error) {
	if opts.BoxSize <= 0 || opts.Border < 0 {
		return nil, fmt.Errorf("invalid qr geometry: box size %d, border %d", opts.BoxSize, opts.Border)
	}

	code, err := qr.Encode(content, opts.Level, qr.Auto)
	if err != nil {
		return nil, &QRTooLongError{Size: len(content), Err: err}
	}

	bounds := code.Bounds()
	modules := bounds.Dx()
	size := (modules + 2*opts.Border) * opts.BoxSize

	img := image.NewPaletted(image.Rect(0, 0, size, size), color.Palette{opts.Background, opts.Foreground})
	for y := 0; y < modules; y++ {
		for x := 0; x < modules; x++ {
			if !isDark(code.At(bounds.Min.X+x, bounds.Min.Y+y)) {
				continue
			}
			x0 := (x + opts.Border) * opts.BoxSize
			y0 := (y + opts.Border) * opts.BoxSize
			for py := y0; py < y0+opts.BoxSize; py++ {
				for px := x0; px < x0+opts.BoxSize; px++ {
					img.SetColorIndex(px, py, 1)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}

	return buf.Bytes(), nil
}

func QRDataURI(content string, opts QROptions) (string, error) {
	data, err := QRPNG(content, opts)
	if err != nil {
		return "", err
	}

	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(data), nil
}

func isDark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r+g+b < 3*0x8000
}
