//go:build unix

package jsonbuild

import (
	"net/netip"

	"github.com/danderson/jsonbuild/wire"
	"golang.org/x/sys/unix"
)

var platformRules = []Rule{
	RuleFor("inet4 sockaddr", func(e *wire.Encoder, sa unix.SockaddrInet4) (wire.Node, error) {
		return socketAddr(netip.AddrFrom4(sa.Addr), sa.Port), nil
	}),
	RuleFor("inet6 sockaddr", func(e *wire.Encoder, sa unix.SockaddrInet6) (wire.Node, error) {
		return socketAddr(netip.AddrFrom16(sa.Addr), sa.Port), nil
	}),
}
