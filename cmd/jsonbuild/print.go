package main

import (
	"fmt"
	"os"

	"github.com/danderson/jsonbuild"
	"github.com/fxamacker/cbor/v2"
	"github.com/kr/pretty"
	"gopkg.in/yaml.v3"
)

// printer writes converted values to stdout in one output format.
type printer struct {
	format string
}

func newPrinter(format string) (*printer, error) {
	switch format {
	case "json", "yaml", "cbor", "go":
		return &printer{format}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

func (p *printer) print(label string, v any) error {
	if p.format == "go" {
		fmt.Printf("# %s\n%# v\n\n", label, pretty.Formatter(v))
		return nil
	}

	n, err := jsonbuild.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Printf("# %s\n", label)
	switch p.format {
	case "json":
		bs, err := n.MarshalJSON()
		if err != nil {
			return err
		}
		os.Stdout.Write(append(bs, '\n'))
	case "yaml":
		bs, err := yaml.Marshal(n)
		if err != nil {
			return err
		}
		os.Stdout.Write(bs)
	case "cbor":
		bs, err := cbor.Marshal(n)
		if err != nil {
			return err
		}
		diag, err := cbor.Diagnose(bs)
		if err != nil {
			return err
		}
		fmt.Printf("%x\n%s\n", bs, diag)
	}
	fmt.Println()
	return nil
}
