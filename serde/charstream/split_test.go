package charstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	entries, err := SplitList("a, b ,c")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, entries)

	entries, err = SplitList(`"x,y", z`)
	require.NoError(t, err)
	require.Equal(t, []string{"x,y", "z"}, entries)

	entries, err = SplitList(`"say \"hi\""`)
	require.NoError(t, err)
	require.Equal(t, []string{`say "hi"`}, entries)

	entries, err = SplitList("")
	require.NoError(t, err)
	require.Empty(t, entries)

	_, err = SplitList(`"unterminated`)
	require.EqualError(t, err,
		"couldn't read entry 0: decoding failed: expected a closing quote, found end of stream")
}

func TestSplitHTTPDateList(t *testing.T) {
	value := "Mon, 16 Dec 2019 23:48:18 GMT, Tue, 17 Dec 2019 23:48:18 GMT"

	entries, err := SplitHTTPDateList(value)
	require.NoError(t, err)
	require.Equal(t, []string{
		"Mon, 16 Dec 2019 23:48:18 GMT",
		"Tue, 17 Dec 2019 23:48:18 GMT",
	}, entries)

	entries, err = SplitHTTPDateList("")
	require.NoError(t, err)
	require.Empty(t, entries)
}
