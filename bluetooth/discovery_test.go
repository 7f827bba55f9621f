package bluetooth

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/danderson/jsonbuild"
	"github.com/danderson/jsonbuild/record"
	"github.com/google/go-cmp/cmp"
)

var testTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestDiscovery(t *testing.T) *Discovery {
	d := NewDiscovery()
	d.now = func() time.Time { return testTime }
	d.Logf = t.Logf
	return d
}

func addresses(devs []*record.BluetoothDevice) []string {
	var ret []string
	for _, dev := range devs {
		ret = append(ret, dev.Address)
	}
	return ret
}

func TestDiscovery(t *testing.T) {
	d := newTestDiscovery(t)

	pixel := &record.BluetoothDevice{Address: "AA:BB:CC:DD:EE:FF", Name: "Pixel", Alias: "pixel", State: record.BondBonded, Type: record.DeviceClassic}
	beacon := &record.BluetoothDevice{Address: "11:22:33:44:55:66", Type: record.DeviceLE}
	d.Found(pixel)
	d.Found(beacon)
	// Resighting with a different alias doesn't change the cache.
	d.Found(&record.BluetoothDevice{Address: pixel.Address, Alias: "renamed"})
	d.Found(nil)

	if diff := cmp.Diff(addresses(d.Devices()), []string{"11:22:33:44:55:66", "AA:BB:CC:DD:EE:FF"}); diff != "" {
		t.Errorf("Devices() wrong (-got+want):\n%s", diff)
	}

	for _, id := range []string{"pixel", "AA:BB:CC:DD:EE:FF"} {
		got, err := d.Lookup(id)
		if err != nil {
			t.Errorf("Lookup(%q) got err: %v", id, err)
		} else if got != pixel {
			t.Errorf("Lookup(%q) = %v, want %v", id, got, pixel)
		}
	}
	if d.Exists("renamed") {
		t.Error(`Exists("renamed") = true, want false`)
	}
	if _, err := d.Lookup("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf(`Lookup("nope") got err %v, want ErrNotFound`, err)
	}

	if d.Finished() {
		t.Error("Finished() = true before Finish")
	}
	fin := d.Finish()
	if !d.Finished() {
		t.Error("Finished() = false after Finish")
	}
	if fin.Name != EventDiscoveryFinished {
		t.Errorf("Finish() event name = %q, want %q", fin.Name, EventDiscoveryFinished)
	}
	if !d.Exists("pixel") {
		t.Error("Finish() dropped cached devices")
	}

	evs := d.Events()
	var names []string
	for _, ev := range evs {
		names = append(names, ev.Name)
	}
	want := []string{EventDeviceFound, EventDeviceFound, EventDiscoveryFinished}
	if diff := cmp.Diff(names, want); diff != "" {
		t.Errorf("Events() wrong (-got+want):\n%s", diff)
	}
	if got := d.Events(); len(got) != 0 {
		t.Errorf("second Events() returned %d events, want 0", len(got))
	}

	d.Clear()
	if got := d.Devices(); len(got) != 0 {
		t.Errorf("Devices() after Clear = %v, want none", addresses(got))
	}
	if d.Finished() {
		t.Error("Finished() = true after Clear")
	}
}

func TestFinishEventWire(t *testing.T) {
	d := newTestDiscovery(t)
	n, err := jsonbuild.Marshal(d.Finish())
	if err != nil {
		t.Fatalf("Marshal(Finish()) got err: %v", err)
	}
	got, err := n.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON got err: %v", err)
	}
	want := fmt.Sprintf(`{"name":"BluetoothDiscoveryFinished","data":{},"time":%d}`, testTime.UnixMilli())
	if string(got) != want {
		t.Errorf("Finish() event = %s, want %s", got, want)
	}
}

func TestEventQueueBound(t *testing.T) {
	d := newTestDiscovery(t)
	d.Logf = nil
	for i := range maxDiscoveryEventsQueue + 10 {
		d.Found(&record.BluetoothDevice{Address: fmt.Sprintf("00:00:00:00:%02X:%02X", i/256, i%256)})
	}
	evs := d.Events()
	if len(evs) != maxDiscoveryEventsQueue {
		t.Fatalf("Events() returned %d events, want %d", len(evs), maxDiscoveryEventsQueue)
	}
	first := evs[0].Data.(*record.BluetoothDevice)
	if want := "00:00:00:00:00:0A"; first.Address != want {
		t.Errorf("oldest queued event is for %s, want %s", first.Address, want)
	}
}

func TestDiscoveryConcurrent(t *testing.T) {
	d := NewDiscovery()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			addr := fmt.Sprintf("00:00:00:00:00:%02X", i%8)
			d.Found(&record.BluetoothDevice{Address: addr})
			d.Exists(addr)
			d.Devices()
		}()
	}
	wg.Wait()
	if got := len(d.Devices()); got != 8 {
		t.Errorf("Devices() has %d devices, want 8", got)
	}
}

func TestFind(t *testing.T) {
	devs := []*record.BluetoothDevice{
		{Address: "AA:BB:CC:DD:EE:FF", Alias: "pixel"},
		{Address: "11:22:33:44:55:66"},
	}
	tests := []struct {
		id      string
		want    string
		wantErr bool
	}{
		{"pixel", "AA:BB:CC:DD:EE:FF", false},
		{"11:22:33:44:55:66", "11:22:33:44:55:66", false},
		{"", "", true},
		{"Pixel", "", true},
	}
	for _, tc := range tests {
		got, err := Find(devs, tc.id)
		if gotErr := err != nil; gotErr != tc.wantErr {
			t.Errorf("Find(%q) got err %v, want err %v", tc.id, err, tc.wantErr)
			continue
		}
		if err == nil && got.Address != tc.want {
			t.Errorf("Find(%q) = %s, want %s", tc.id, got.Address, tc.want)
		}
	}
	if Match(nil, "") {
		t.Error(`Match(nil, "") = true, want false`)
	}
}
