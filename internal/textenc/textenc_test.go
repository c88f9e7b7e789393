package textenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestIsUTF8(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF8", " utf-8-sig "} {
		assert.True(t, IsUTF8(name), name)
	}
	assert.False(t, IsUTF8("latin1"))
}

func TestLookup(t *testing.T) {
	enc, err := Lookup("ISO-8859-1")
	require.NoError(t, err)
	assert.Equal(t, charmap.ISO8859_1, enc)

	enc, err = Lookup("")
	require.NoError(t, err)
	assert.Equal(t, unicode.UTF8, enc)

	enc, err = Lookup("windows-1252")
	require.NoError(t, err)
	assert.Equal(t, charmap.Windows1252, enc)

	_, err = Lookup("no-such-charset")
	assert.Error(t, err)
}
