// Package qr generates QR-Codes for bookmark URLs.
package qr

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

var ErrQRNotGenerated = errors.New("QR-Code not generated")

// QRCode represents a QR-Code.
type QRCode struct {
	QR   *qrcode.QRCode
	From string
}

// New creates a new QR-Code.
func New(s string) *QRCode {
	return &QRCode{
		From: s,
	}
}

// Generate generates a QR-Code from a given string.
func (q *QRCode) Generate() error {
	var err error

	q.QR, err = qrcode.New(q.From, qrcode.High)
	if err != nil {
		return fmt.Errorf("generating qr-code: %w", err)
	}

	return nil
}

// WritePNG writes the QR-Code as a size x size PNG image.
func (q *QRCode) WritePNG(path string, size int) error {
	if q.QR == nil {
		return ErrQRNotGenerated
	}

	if err := q.QR.WriteFile(size, path); err != nil {
		return fmt.Errorf("writing qr-code: %w", err)
	}

	return nil
}

// String renders the QR-Code with half-block characters.
func (q *QRCode) String() string {
	if q.QR == nil {
		return ""
	}

	return q.QR.ToSmallString(false)
}
