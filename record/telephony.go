package record

import "github.com/danderson/jsonbuild/wire"

// CellLocation is the location of the serving cell, in the form the
// radio technology provides it. It is either a GsmCellLocation or a
// CdmaCellLocation.
type CellLocation interface {
	MarshalWire(e *wire.Encoder) (wire.Node, error)
	isCellLocation()
}

// GsmCellLocation is the location of a GSM or UMTS cell. Unknown
// values are -1.
type GsmCellLocation struct {
	LAC int32
	CID int32
}

func (GsmCellLocation) isCellLocation() {}

func (l GsmCellLocation) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("lac", wire.Int(int64(l.LAC)))
		o.Put("cid", wire.Int(int64(l.CID)))
		return nil
	})
}

// CdmaCellLocation is the location of a CDMA base station. The base
// station coordinates are in units of 0.25 seconds of arc.
type CdmaCellLocation struct {
	BaseStationID        int32
	BaseStationLatitude  int32
	BaseStationLongitude int32
	SystemID             int32
	NetworkID            int32
}

func (CdmaCellLocation) isCellLocation() {}

func (l CdmaCellLocation) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("baseStationId", wire.Int(int64(l.BaseStationID)))
		o.Put("baseStationLatitude", wire.Int(int64(l.BaseStationLatitude)))
		o.Put("baseStationLongitude", wire.Int(int64(l.BaseStationLongitude)))
		o.Put("systemId", wire.Int(int64(l.SystemID)))
		o.Put("networkId", wire.Int(int64(l.NetworkID)))
		return nil
	})
}

// NeighboringCellInfo is a cell visible to the radio other than the
// serving cell.
type NeighboringCellInfo struct {
	CID  int32
	RSSI int32
}

func (c NeighboringCellInfo) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("cid", wire.Int(int64(c.CID)))
		o.Put("rssi", wire.Int(int64(c.RSSI)))
		return nil
	})
}

// SmsMessage is a received text message.
type SmsMessage struct {
	OriginatingAddress string
	MessageBody        string
}

func (m SmsMessage) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("originatingAddress", wire.OptString(m.OriginatingAddress))
		o.Put("messageBody", wire.OptString(m.MessageBody))
		return nil
	})
}

// PhoneAccountHandle identifies a calling account.
type PhoneAccountHandle struct {
	ID string
}

func (h PhoneAccountHandle) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("id", wire.OptString(h.ID))
		return nil
	})
}
