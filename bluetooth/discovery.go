// Package bluetooth tracks the remote devices seen during a Bluetooth
// discovery session.
package bluetooth

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/mds/queue"
	"github.com/danderson/jsonbuild/record"
)

// Event names posted by a Discovery.
const (
	EventDeviceFound        = "BluetoothDeviceFound"
	EventDiscoveryFinished  = "BluetoothDiscoveryFinished"
	maxDiscoveryEventsQueue = 64
)

// ErrNotFound is the error returned by [Discovery.Lookup] when no
// cached device matches.
var ErrNotFound = errors.New("device not found")

// A Discovery is the set of devices found during one discovery
// session.
//
// A Discovery is created when discovery starts, and cleared when the
// caller is done with its results. It is safe for concurrent use.
type Discovery struct {
	// Logf, if set, is called to trace cache activity.
	Logf func(msg string, args ...any)

	mu       sync.Mutex
	devices  map[string]*record.BluetoothDevice
	finished bool
	events   queue.Queue[record.Event]
	// now is the event clock, overridden in tests.
	now func() time.Time
}

// NewDiscovery returns an empty Discovery.
func NewDiscovery() *Discovery {
	return &Discovery{
		devices: map[string]*record.BluetoothDevice{},
		now:     time.Now,
	}
}

func (d *Discovery) logf(msg string, args ...any) {
	if d.Logf != nil {
		d.Logf(msg, args...)
	}
}

// Found records a sighting of dev.
//
// The first sighting of an address caches the device under its
// address and, if the device has an alias, under its alias. Later
// sightings of the same address are ignored, so a cached device keeps
// the identity it was first seen with.
func (d *Discovery) Found(dev *record.BluetoothDevice) {
	if dev == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.devices[dev.Address]; ok {
		return
	}
	if dev.Alias != "" {
		d.devices[dev.Alias] = dev
	}
	d.devices[dev.Address] = dev
	d.logf("discovery: found %s (%q)", dev.Address, dev.Alias)
	d.postLocked(record.Event{
		Name: EventDeviceFound,
		Data: dev,
		Time: d.now(),
	})
}

// Finish marks the end of discovery, and returns the event announcing
// it. The cached devices remain available until [Discovery.Clear].
func (d *Discovery) Finish() record.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.finished = true
	ev := record.Event{
		Name: EventDiscoveryFinished,
		Data: record.Bundle{},
		Time: d.now(),
	}
	d.logf("discovery: finished with %d devices", len(d.distinctLocked()))
	d.postLocked(ev)
	return ev
}

// Finished reports whether [Discovery.Finish] has been called since
// the Discovery was created or last cleared.
func (d *Discovery) Finished() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.finished
}

// postLocked queues ev, discarding the oldest queued event if the
// queue is full.
func (d *Discovery) postLocked(ev record.Event) {
	if d.events.Len() >= maxDiscoveryEventsQueue {
		dropped, _ := d.events.Pop()
		d.logf("discovery: event queue full, dropped %s", dropped.Name)
	}
	d.events.Add(ev)
}

// Events returns the events queued since the last call to Events, in
// the order they occurred.
func (d *Discovery) Events() []record.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	ret := make([]record.Event, 0, d.events.Len())
	for {
		ev, ok := d.events.Pop()
		if !ok {
			return ret
		}
		ret = append(ret, ev)
	}
}

// Devices returns the distinct cached devices, sorted by address.
func (d *Discovery) Devices() []*record.BluetoothDevice {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.distinctLocked()
}

func (d *Discovery) distinctLocked() []*record.BluetoothDevice {
	seen := mapset.New[*record.BluetoothDevice]()
	var ret []*record.BluetoothDevice
	for _, dev := range d.devices {
		if seen.Has(dev) {
			continue
		}
		seen.Add(dev)
		ret = append(ret, dev)
	}
	slices.SortFunc(ret, func(a, b *record.BluetoothDevice) int {
		return cmp.Compare(a.Address, b.Address)
	})
	return ret
}

// Lookup returns the cached device whose alias or address is id.
func (d *Discovery) Lookup(id string) (*record.BluetoothDevice, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if dev, ok := d.devices[id]; ok {
		return dev, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Exists reports whether a cached device's alias or address is id.
func (d *Discovery) Exists(id string) bool {
	_, err := d.Lookup(id)
	return err == nil
}

// Clear discards all cached devices and queued events.
func (d *Discovery) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	clear(d.devices)
	d.events.Clear()
	d.finished = false
}

// Match reports whether id is the alias or the address of dev.
func Match(dev *record.BluetoothDevice, id string) bool {
	if dev == nil {
		return false
	}
	return (dev.Alias != "" && id == dev.Alias) || id == dev.Address
}

// Find returns the first device in devs that [Match]es id.
func Find(devs []*record.BluetoothDevice, id string) (*record.BluetoothDevice, error) {
	for _, dev := range devs {
		if Match(dev, id) {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
}
