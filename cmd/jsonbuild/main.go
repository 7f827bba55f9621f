package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/mds/slice"
	"github.com/danderson/jsonbuild"
	"github.com/danderson/jsonbuild/bluetooth"
	"github.com/danderson/jsonbuild/record"
	"github.com/danderson/jsonbuild/wiretest"
)

var globalArgs struct {
	Format string `flag:"format,default=json,Output format: json|yaml|cbor|go"`
}

var discoverArgs struct {
	Verbose bool `flag:"v,Trace discovery cache activity"`
}

func main() {
	root := &command.C{
		Name:     "jsonbuild",
		Usage:    "command args...",
		Help:     "Inspect how values are converted to RPC wire documents.",
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Commands: []*command.C{
			{
				Name:  "rules",
				Usage: "rules",
				Help:  "List the conversion steps, in the order they are tried.",
				Run:   command.Adapt(runRules),
			},
			{
				Name:  "sample",
				Usage: "sample [name...]",
				Help: `Convert sample records and print the result.

With no arguments, converts every sample. Otherwise, converts only the
named samples. Use "sample list" to see the available names.`,
				Run: runSample,
			},
			{
				Name:     "discover",
				Usage:    "discover",
				Help:     "Run a simulated Bluetooth discovery session, and print the events and devices it produces.",
				SetFlags: command.Flags(flax.MustBind, &discoverArgs),
				Run:      command.Adapt(runDiscover),
			},
			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	env := root.NewEnv(nil).SetContext(ctx)
	command.RunOrFail(env, os.Args[1:])
}

func runRules(env *command.Env) error {
	for i, r := range jsonbuild.Rules() {
		fmt.Printf("%2d. %s\n", i+1, r)
	}
	return nil
}

func runSample(env *command.Env) error {
	out, err := newPrinter(globalArgs.Format)
	if err != nil {
		return env.Usagef("%v", err)
	}

	samples := wiretest.Samples()
	if len(env.Args) == 1 && env.Args[0] == "list" {
		for _, s := range samples {
			fmt.Println(s.Name)
		}
		return nil
	}
	if len(env.Args) > 0 {
		want := mapset.New(env.Args...)
		samples = slices.Collect(slice.Select(samples, func(s wiretest.Sample) bool {
			return want.Has(s.Name)
		}))
		for _, s := range samples {
			want.Remove(s.Name)
		}
		if !want.IsEmpty() {
			return fmt.Errorf("unknown samples: %v", want.Slice())
		}
	}

	var errs []error
	for _, s := range samples {
		if err := out.print(s.Name, s.Value); err != nil {
			errs = append(errs, fmt.Errorf("sample %s: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}

func runDiscover(env *command.Env) error {
	out, err := newPrinter(globalArgs.Format)
	if err != nil {
		return env.Usagef("%v", err)
	}

	d := bluetooth.NewDiscovery()
	if discoverArgs.Verbose {
		d.Logf = log.Printf
	}
	defer d.Clear()

	sightings := []*record.BluetoothDevice{
		wiretest.Device(),
		{Address: "11:22:33:44:55:66", Type: record.DeviceLE, State: record.BondNone},
		{Address: "66:55:44:33:22:11", Name: "Headphones", Alias: "cans", Type: record.DeviceDual, State: record.BondBonding},
		// A repeat sighting, which the cache ignores.
		{Address: "AA:BB:CC:DD:EE:FF", Name: "Pixel (renamed)", Alias: "renamed"},
	}
	for _, dev := range sightings {
		if err := env.Context().Err(); err != nil {
			return err
		}
		d.Found(dev)
	}
	d.Finish()

	for i, ev := range d.Events() {
		if err := out.print(fmt.Sprintf("event %d", i), ev); err != nil {
			return err
		}
	}
	if err := out.print("devices", d.Devices()); err != nil {
		return err
	}
	for _, id := range []string{"cans", "renamed"} {
		if dev, err := d.Lookup(id); err != nil {
			fmt.Printf("lookup %q: %v\n", id, err)
		} else {
			fmt.Printf("lookup %q: %s\n", id, dev.Address)
		}
	}
	return nil
}
