package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRows(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		delimiter string
		skipEmpty bool
		want      [][]string
	}{
		{
			name:      "plain rows",
			text:      "a,b,c\n1,2,3\n",
			delimiter: ",",
			want:      [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name:      "no trailing newline",
			text:      "a,b\n1,2",
			delimiter: ",",
			want:      [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:      "quoted field with embedded delimiter",
			text:      "name,notes\nalpha,\"one, two\"\n",
			delimiter: ",",
			want:      [][]string{{"name", "notes"}, {"alpha", "one, two"}},
		},
		{
			name:      "quoted field with embedded newline",
			text:      "a,b\n\"line1\nline2\",x\n",
			delimiter: ",",
			want:      [][]string{{"a", "b"}, {"line1\nline2", "x"}},
		},
		{
			name:      "doubled quote is literal",
			text:      "a\n\"say \"\"hi\"\"\"\n",
			delimiter: ",",
			want:      [][]string{{"a"}, {`say "hi"`}},
		},
		{
			name:      "unterminated quote reads to end",
			text:      "a,b\nx,\"never closed\n1,2\n",
			delimiter: ",",
			want:      [][]string{{"a", "b"}, {"x", "never closed\n1,2\n"}},
		},
		{
			name:      "empty lines dropped when flag set",
			text:      "a,b\n\n1,2\n\n",
			delimiter: ",",
			skipEmpty: true,
			want:      [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:      "empty lines kept when flag unset",
			text:      "a,b\n\n1,2\n",
			delimiter: ",",
			want:      [][]string{{"a", "b"}, {""}, {"1", "2"}},
		},
		{
			name:      "crlf line endings",
			text:      "a,b\r\n1,2\r\n",
			delimiter: ",",
			want:      [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:      "semicolon delimiter",
			text:      "a;b\n1;2\n",
			delimiter: ";",
			want:      [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:      "trailing empty field",
			text:      "a,b,\n",
			delimiter: ",",
			want:      [][]string{{"a", "b", ""}},
		},
		{
			name:      "quoted empty field is not an empty line",
			text:      "\"\"\n",
			delimiter: ",",
			skipEmpty: true,
			want:      [][]string{{""}},
		},
		{
			name:      "empty input",
			text:      "",
			delimiter: ",",
			want:      [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRows(tt.text, tt.delimiter, tt.skipEmpty))
		})
	}
}

func TestParseRowsMalformedQuoteDoesNotFail(t *testing.T) {
	// A quote opening mid-field stays literal; nothing panics or errors.
	got := ParseRows("a,b\"c,d\n", ",", true)
	assert.Equal(t, [][]string{{"a", `b"c`, "d"}}, got)
}
