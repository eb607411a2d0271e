package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sableio/sable/serde"
)

func TestTranscode_JSONToCBORAndBack(t *testing.T) {
	reg := newRegistry()

	// A single-key object keeps the comparison deterministic: CBOR maps
	// decode in unspecified order.
	payload := []byte(`{"tags":[1,true,null,"a"]}`)

	encoded, err := transcode(reg, serde.FormatJSON, serde.FormatCBOR, payload)
	require.NoError(t, err)

	back, err := transcode(reg, serde.FormatCBOR, serde.FormatJSON, encoded)
	require.NoError(t, err)
	require.Equal(t, string(payload), string(back))
}

func TestTranscode_UnknownFormat(t *testing.T) {
	reg := newRegistry()

	_, err := transcode(reg, "bogus", serde.FormatJSON, []byte(`{}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "format 'bogus' is not registered")
}

func TestTranscode_FormURLCannotRead(t *testing.T) {
	reg := newRegistry()

	_, err := transcode(reg, serde.FormatFormURL, serde.FormatJSON, []byte(`a=1`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot deserialize")
}

func TestApp_Transcode(t *testing.T) {
	in := bytes.NewBufferString(`{"x":1}`)
	out := new(bytes.Buffer)

	app := makeApp(in, out)

	err := app.Run([]string{"sable", "transcode", "--from", "json", "--to", "json"})
	require.NoError(t, err)
	require.Equal(t, `{"x":1}`, out.String())
}

func TestApp_TranscodeWithConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	err := os.WriteFile(path, []byte("default_format: json\n"), 0o644)
	require.NoError(t, err)

	in := bytes.NewBufferString(`{"x":1}`)
	out := new(bytes.Buffer)

	app := makeApp(in, out)

	err = app.Run([]string{"sable", "transcode", "--config", path})
	require.NoError(t, err)
	require.Equal(t, `{"x":1}`, out.String())
}

func TestApp_MissingFormats(t *testing.T) {
	app := makeApp(new(bytes.Buffer), new(bytes.Buffer))

	err := app.Run([]string{"sable", "transcode"})
	require.EqualError(t, err, "both the input and output formats must be set")
}

func TestApp_Formats(t *testing.T) {
	out := new(bytes.Buffer)

	app := makeApp(new(bytes.Buffer), out)

	err := app.Run([]string{"sable", "formats"})
	require.NoError(t, err)
	require.Equal(t, "json\nxml\nformurl\ncbor\n", out.String())
}
