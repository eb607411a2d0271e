// Package main implements a small tool around the serde engine. Its main
// purpose is the transcode command, which reads a schema-less payload in one
// registered format and writes it back in another.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	urfave "github.com/urfave/cli/v2"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"

	"github.com/sableio/sable/serde"
	"github.com/sableio/sable/serde/cbor"
	"github.com/sableio/sable/serde/formurl"
	"github.com/sableio/sable/serde/json"
	"github.com/sableio/sable/serde/registry"
	"github.com/sableio/sable/serde/xml"
)

func main() {
	app := makeApp(os.Stdin, os.Stdout)

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// config is the optional yaml configuration of the tool.
type config struct {
	DefaultFormat string `yaml:"default_format"`
}

func makeApp(in io.Reader, out io.Writer) *urfave.App {
	return &urfave.App{
		Name:  "sable",
		Usage: "tooling around the sable serde engine",
		Commands: []*urfave.Command{
			{
				Name:  "transcode",
				Usage: "read a payload on stdin and write it in another format",
				Flags: []urfave.Flag{
					&urfave.StringFlag{
						Name:  "from",
						Usage: "format of the input payload",
					},
					&urfave.StringFlag{
						Name:  "to",
						Usage: "format of the output payload",
					},
					&urfave.StringFlag{
						Name:  "config",
						Usage: "path to a yaml configuration file",
					},
				},
				Action: func(c *urfave.Context) error {
					return transcodeAction(c, in, out)
				},
			},
			{
				Name:  "formats",
				Usage: "list the registered formats",
				Action: func(c *urfave.Context) error {
					for _, name := range formatOrder {
						fmt.Fprintln(out, name)
					}

					return nil
				},
			},
		},
	}
}

var formatOrder = []string{"json", "xml", "formurl", "cbor"}

var formatNames = map[string]serde.Format{
	"json":    serde.FormatJSON,
	"xml":     serde.FormatXML,
	"formurl": serde.FormatFormURL,
	"cbor":    serde.FormatCBOR,
}

// parseFormat resolves a command line format name.
func parseFormat(name string) (serde.Format, error) {
	f, ok := formatNames[strings.ToLower(name)]
	if !ok {
		return "", xerrors.Errorf("unknown format '%s'", name)
	}

	return f, nil
}

// newRegistry returns a registry with every backend registered.
func newRegistry() registry.Registry {
	reg := registry.NewSimpleRegistry()
	reg.Register(serde.FormatJSON, json.NewProvider())
	reg.Register(serde.FormatXML, xml.NewProvider())
	reg.Register(serde.FormatFormURL, formurl.NewProvider())
	reg.Register(serde.FormatCBOR, cbor.NewProvider())

	return reg
}

func transcodeAction(c *urfave.Context, in io.Reader, out io.Writer) error {
	from := c.String("from")
	to := c.String("to")

	if path := c.String("config"); path != "" {
		cfg, err := loadConfig(path)
		if err != nil {
			return err
		}

		if from == "" {
			from = cfg.DefaultFormat
		}

		if to == "" {
			to = cfg.DefaultFormat
		}
	}

	if from == "" || to == "" {
		return xerrors.New("both the input and output formats must be set")
	}

	source, err := parseFormat(from)
	if err != nil {
		return err
	}

	target, err := parseFormat(to)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return xerrors.Errorf("couldn't read the payload: %v", err)
	}

	result, err := transcode(newRegistry(), source, target, data)
	if err != nil {
		return err
	}

	_, err = out.Write(result)
	if err != nil {
		return xerrors.Errorf("couldn't write the payload: %v", err)
	}

	return nil
}

// transcode decodes the payload into a document with the source format and
// writes the document back with the target format.
func transcode(reg registry.Registry, from, to serde.Format, data []byte) ([]byte, error) {
	deser, err := reg.Get(from).Deserializer(data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't open the payload: %v", err)
	}

	reader, ok := deser.(serde.PrimitiveDeserializer)
	if !ok {
		return nil, xerrors.Errorf("format '%s' cannot read a document", from)
	}

	doc, err := reader.ReadDocument()
	if err != nil {
		return nil, xerrors.Errorf("couldn't read the document: %v", err)
	}

	ser := reg.Get(to).Serializer()

	err = ser.SerializeDocument(doc)
	if err != nil {
		return nil, xerrors.Errorf("couldn't write the document: %v", err)
	}

	out, err := ser.Bytes()
	if err != nil {
		return nil, xerrors.Errorf("couldn't write the document: %v", err)
	}

	return out, nil
}

func loadConfig(path string) (config, error) {
	cfg := config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, xerrors.Errorf("couldn't read the configuration: %v", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, xerrors.Errorf("couldn't parse the configuration: %v", err)
	}

	return cfg, nil
}
