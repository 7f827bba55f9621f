package jsonbuild

import (
	"image"
	"net"
	"net/netip"
	"slices"

	"github.com/danderson/jsonbuild/wire"
)

var builtinRules = slices.Concat(stdRules, platformRules)

var stdRules = []Rule{
	RuleFor("point", func(e *wire.Encoder, p image.Point) (wire.Node, error) {
		return wire.Object(
			wire.Field{Key: "x", Value: wire.Int(int64(p.X))},
			wire.Field{Key: "y", Value: wire.Int(int64(p.Y))},
		), nil
	}),
	RuleFor("tcp address", func(e *wire.Encoder, a net.TCPAddr) (wire.Node, error) {
		return socketAddr(a.AddrPort().Addr(), a.Port), nil
	}),
	RuleFor("udp address", func(e *wire.Encoder, a net.UDPAddr) (wire.Node, error) {
		return socketAddr(a.AddrPort().Addr(), a.Port), nil
	}),
	RuleFor("address and port", func(e *wire.Encoder, a netip.AddrPort) (wire.Node, error) {
		return socketAddr(a.Addr(), int(a.Port())), nil
	}),
}

// socketAddr returns the [host, port] pair that socket addresses
// convert to. The host is null if ip is the zero Addr.
func socketAddr(ip netip.Addr, port int) wire.Node {
	host := wire.Null()
	if ip.IsValid() {
		host = wire.String(ip.Unmap().String())
	}
	return wire.Array(host, wire.Int(int64(port)))
}
