package codec

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/baharkarakas/credits-leaderboard/internal/api/validate"
	"github.com/baharkarakas/credits-leaderboard/internal/models"
)

func TestDecodeValid(t *testing.T) {
	in := `[{"userId":"u1","username":"alice","creditsMinor":500},
	        {"userId":"u2","username":"","creditsMinor":-3,"rank":99}]`
	rows, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []models.Row{
		{UserID: "u1", Username: "alice", CreditsMinor: 500},
		{UserID: "u2", Username: "", CreditsMinor: -3},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %+v want %+v", rows, want)
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	rows, err := Decode(strings.NewReader(" [] \n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", rows)
	}
}

func TestDecodeInt64Bounds(t *testing.T) {
	in := `[{"userId":"a","username":"a","creditsMinor":9223372036854775807},
	        {"userId":"b","username":"b","creditsMinor":-9223372036854775808}]`
	rows, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rows[0].CreditsMinor != 1<<63-1 || rows[1].CreditsMinor != -1<<63 {
		t.Fatalf("bounds not preserved: %+v", rows)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"malformed", `[{"userId":`},
		{"object root", `{"userId":"u1","username":"a","creditsMinor":1}`},
		{"null root", `null`},
		{"number root", `42`},
		{"non-object element", `[1]`},
		{"null element", `[null]`},
		{"missing userId", `[{"username":"a","creditsMinor":1}]`},
		{"missing username", `[{"userId":"u","creditsMinor":1}]`},
		{"missing credits", `[{"userId":"u","username":"a"}]`},
		{"null credits", `[{"userId":"u","username":"a","creditsMinor":null}]`},
		{"fractional credits", `[{"userId":"u","username":"a","creditsMinor":1.5}]`},
		{"string credits", `[{"userId":"u","username":"a","creditsMinor":"100"}]`},
		{"overflow credits", `[{"userId":"u","username":"a","creditsMinor":9223372036854775808}]`},
		{"numeric userId", `[{"userId":7,"username":"a","creditsMinor":1}]`},
		{"string rank", `[{"userId":"u","username":"a","creditsMinor":1,"rank":"x"}]`},
		{"trailing data", `[] []`},
		{"invalid utf8", "[{\"userId\":\"\xff\",\"username\":\"a\",\"creditsMinor\":1}]"},
		{"lowercase userid", `[{"userid":"u","username":"a","creditsMinor":1}]`},
		{"uppercase credits", `[{"userId":"u","username":"a","CREDITSMINOR":7}]`},
		{"duplicate userId", `[{"userId":"a","userId":"b","username":"x","creditsMinor":1}]`},
		{"duplicate credits", `[{"userId":"a","username":"x","creditsMinor":1,"creditsMinor":2}]`},
		{"duplicate rank", `[{"userId":"a","username":"x","creditsMinor":1,"rank":1,"rank":2}]`},
		{"lone high surrogate", `[{"userId":"\ud800","username":"x","creditsMinor":1}]`},
		{"lone low surrogate", `[{"userId":"u","username":"a\udc00b","creditsMinor":1}]`},
		{"reversed surrogates", `[{"userId":"\udc00\ud800","username":"x","creditsMinor":1}]`},
		{"array element", `[["u","a",1]]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.in))
			if !errors.Is(err, ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
		})
	}
}

func TestDecodeKeysMatchExactly(t *testing.T) {
	in := `[{"userId":"a","UserID":"b","USERNAME":"y","username":"x","creditsMinor":1,"extra":{"k":[1]}}]`
	rows, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []models.Row{{UserID: "a", Username: "x", CreditsMinor: 1}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("look-alike keys leaked into row: got %+v", rows)
	}
}

func TestDecodeSurrogatePairs(t *testing.T) {
	in := `[{"userId":"\ud83d\ude00","username":"\\ud800 literal","creditsMinor":1}]`
	rows, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rows[0].UserID != "\U0001F600" {
		t.Fatalf("pair not decoded: %q", rows[0].UserID)
	}
	if rows[0].Username != `\ud800 literal` {
		t.Fatalf("escaped backslash misread: %q", rows[0].Username)
	}
}

func TestDecodeReportsEveryMissingField(t *testing.T) {
	_, err := Decode(strings.NewReader(`[{"userId":"u"},{"username":"b","creditsMinor":2}]`))
	var errs validate.Errs
	if !errors.As(err, &errs) {
		t.Fatalf("expected validate.Errs, got %v", err)
	}
	want := validate.Errs{
		{Field: "[0].username", Msg: "required"},
		{Field: "[0].creditsMinor", Msg: "required"},
		{Field: "[1].userId", Msg: "required"},
	}
	if !reflect.DeepEqual(errs, want) {
		t.Fatalf("got %+v want %+v", errs, want)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("stream closed") }

func TestDecodeReadFailure(t *testing.T) {
	_, err := Decode(failingReader{})
	if !errors.Is(err, ErrRead) {
		t.Fatalf("expected ErrRead, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	rows := []models.Row{
		{UserID: "u2", Username: "<bob> & co", CreditsMinor: 900, Rank: 1},
		{UserID: "u1", Username: "élise", CreditsMinor: 500, Rank: 2},
	}
	if err := Encode(&buf, rows); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[{"userId":"u2","username":"<bob> & co","creditsMinor":900,"rank":1},` +
		`{"userId":"u1","username":"élise","creditsMinor":500,"rank":2}]` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Fatalf("got %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestEncodeWriteFailure(t *testing.T) {
	err := Encode(failingWriter{}, []models.Row{{UserID: "u", Username: "a", CreditsMinor: 1, Rank: 1}})
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
}
