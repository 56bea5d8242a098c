// Package qr renders share addresses as QR codes for the terminal.
package qr

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mdp/qrterminal/v3"
	"rsc.io/qr"
)

var ErrEmptyText = errors.New("nothing to encode")

// TerminalEncoder draws QR codes with half-block characters, two modules per
// character cell.
type TerminalEncoder struct {
	level qr.Level
}

func NewTerminalEncoder() *TerminalEncoder {
	return &TerminalEncoder{level: qrterminal.L}
}

func (e *TerminalEncoder) Encode(text string) (string, error) {
	if text == "" {
		return "", ErrEmptyText
	}

	// qrterminal drops encoding errors, so check capacity first.
	if _, err := qr.Encode(text, e.level); err != nil {
		return "", fmt.Errorf("qr: %w", err)
	}

	var buf bytes.Buffer
	qrterminal.GenerateHalfBlock(text, e.level, &buf)
	return buf.String(), nil
}
