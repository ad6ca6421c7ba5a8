package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		enc   string
		input []byte
		want  string
	}{
		{"latin1 e-acute", "latin1", []byte{'c', 'a', 'f', 0xE9}, "café"},
		{"iso alias", "ISO-8859-1", []byte{0xFC}, "ü"},
		{"cp437 box drawing", "cp437", []byte{0xC9, 0xCD, 0xBB}, "╔═╗"},
		{"windows-1252 quotes", "windows-1252", []byte{0x93, 'h', 'i', 0x94}, "“hi”"},
		{"utf-8 passthrough", "utf-8", []byte("naïve"), "naïve"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.enc, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("ebcdic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown encoding")
	assert.Contains(t, err.Error(), "latin1")
}

func TestPropertyASCIIUnchanged(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[ -~\n]{0,64}`).Draw(t, "ascii")
		name := rapid.SampledFrom(Names()).Draw(t, "encoding")
		got, err := Decode(name, []byte(s))
		require.NoError(t, err)
		assert.Equal(t, s, string(got))
	})
}
