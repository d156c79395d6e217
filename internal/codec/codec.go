// Package codec reads and writes leaderboard rows as JSON arrays.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/baharkarakas/credits-leaderboard/internal/api/validate"
	"github.com/baharkarakas/credits-leaderboard/internal/models"
)

var (
	ErrRead   = errors.New("read input")
	ErrDecode = errors.New("decode input")
	ErrWrite  = errors.New("write output")
)

// wireRow holds one decoded element. nil pointers mark absent or null fields.
type wireRow struct {
	UserID       *string
	Username     *string
	CreditsMinor *int64
}

// Decode buffers all of r and parses it as a JSON array of rows.
func Decode(r io.Reader) ([]models.Row, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return DecodeBytes(body)
}

func DecodeBytes(body []byte) ([]models.Row, error) {
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ErrDecode)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	// a bare `null` unmarshals into a nil slice without error
	if elems == nil {
		return nil, fmt.Errorf("%w: top-level value must be an array", ErrDecode)
	}

	var errs validate.Errs
	rows := make([]models.Row, len(elems))
	for i, raw := range elems {
		w, err := decodeElement(raw)
		if err != nil {
			errs = errs.Add(&validate.ErrField{Field: index(i), Msg: err.Error()})
			continue
		}
		errs = errs.
			Add(validate.Required(index(i)+".userId", w.UserID)).
			Add(validate.Required(index(i)+".username", w.Username)).
			Add(validate.Required(index(i)+".creditsMinor", w.CreditsMinor))
		if w.UserID == nil || w.Username == nil || w.CreditsMinor == nil {
			continue
		}
		rows[i] = models.Row{UserID: *w.UserID, Username: *w.Username, CreditsMinor: *w.CreditsMinor}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrDecode, errs)
	}
	return rows, nil
}

// decodeElement walks one array element as an object. Keys match exactly,
// known keys may appear once, unknown keys are skipped.
func decodeElement(raw json.RawMessage) (wireRow, error) {
	var w wireRow
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return w, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return w, errors.New("must be an object")
	}

	seen := make(map[string]bool, 4)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return w, err
		}
		key, _ := tok.(string)
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return w, err
		}

		switch key {
		case "userId", "username", "creditsMinor", "rank":
		default:
			continue
		}
		if seen[key] {
			return w, fmt.Errorf("duplicate field %q", key)
		}
		seen[key] = true

		switch key {
		case "userId":
			w.UserID, err = decodeString(key, val)
		case "username":
			w.Username, err = decodeString(key, val)
		case "creditsMinor":
			w.CreditsMinor, err = decodeInt(key, val)
		case "rank":
			_, err = decodeInt(key, val) // must be an integer, then overwritten
		}
		if err != nil {
			return w, err
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return w, err
	}
	return w, nil
}

func decodeString(key string, val json.RawMessage) (*string, error) {
	if err := checkSurrogates(val); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	var s *string
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return s, nil
}

func decodeInt(key string, val json.RawMessage) (*int64, error) {
	var n *int64
	if err := json.Unmarshal(val, &n); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// checkSurrogates rejects \u escapes that encode an unpaired UTF-16 surrogate;
// encoding/json would otherwise replace them with U+FFFD.
func checkSurrogates(b []byte) error {
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			continue
		}
		if b[i+1] != 'u' {
			i++ // skip the escaped byte, which may itself be a backslash
			continue
		}
		r, ok := hex4(b, i+2)
		if !ok {
			return nil // malformed escape; json.Unmarshal reports it
		}
		switch {
		case r >= 0xD800 && r <= 0xDBFF:
			if i+7 < len(b) && b[i+6] == '\\' && b[i+7] == 'u' {
				if lo, ok := hex4(b, i+8); ok && lo >= 0xDC00 && lo <= 0xDFFF {
					i += 11
					continue
				}
			}
			return errors.New("unpaired UTF-16 surrogate in string")
		case r >= 0xDC00 && r <= 0xDFFF:
			return errors.New("unpaired UTF-16 surrogate in string")
		}
		i += 5
	}
	return nil
}

func hex4(b []byte, at int) (rune, bool) {
	if at+4 > len(b) {
		return 0, false
	}
	n, err := strconv.ParseUint(string(b[at:at+4]), 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}

// Encode writes rows as one JSON array plus a trailing newline in a single write.
// Nothing reaches w if marshalling fails.
func Encode(w io.Writer, rows []models.Row) error {
	if rows == nil {
		rows = []models.Row{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func index(i int) string { return "[" + strconv.Itoa(i) + "]" }
