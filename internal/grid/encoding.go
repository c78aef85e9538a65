package grid

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names a text encoding raw CSV files may use.
type Encoding string

const (
	UTF8  Encoding = "utf-8"
	CP949 Encoding = "cp949"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrUndecodable is returned when no candidate encoding decodes the input.
var ErrUndecodable = errors.New("grid: input matches none of the candidate encodings")

// Decode converts data from enc to a UTF-8 string. A leading UTF-8 byte
// order mark is removed.
func Decode(data []byte, enc Encoding) (string, error) {
	switch enc {
	case UTF8:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid %s input", enc)
		}
		out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", enc, err)
		}
		return string(out), nil
	case CP949:
		out, err := korean.EUCKR.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", enc, err)
		}
		s := string(out)
		if strings.ContainsRune(s, utf8.RuneError) && !bytes.Contains(data, []byte(string(utf8.RuneError))) {
			return "", fmt.Errorf("invalid %s input", enc)
		}
		return s, nil
	}
	return "", fmt.Errorf("unsupported encoding %q", enc)
}

// DecodeFallback tries each encoding in order and returns the first
// successful decoding together with the encoding used. Input that starts
// with a UTF-8 byte order mark is always decoded as UTF-8.
func DecodeFallback(data []byte, order ...Encoding) (string, Encoding, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		if s, err := Decode(data, UTF8); err == nil {
			return s, UTF8, nil
		}
	}
	var errs []error
	for _, enc := range order {
		s, err := Decode(data, enc)
		if err == nil {
			return s, enc, nil
		}
		errs = append(errs, err)
	}
	return "", "", fmt.Errorf("%w: %w", ErrUndecodable, errors.Join(errs...))
}
