package record

import (
	"github.com/danderson/jsonbuild/wire"
	"github.com/google/uuid"
)

// GATT service types.
const (
	ServicePrimary   = 0
	ServiceSecondary = 1
)

// GATT characteristic property bits.
const (
	PropBroadcast    = 0x01
	PropRead         = 0x02
	PropWriteNoResp  = 0x04
	PropWrite        = 0x08
	PropNotify       = 0x10
	PropIndicate     = 0x20
	PropSignedWrite  = 0x40
	PropExtendedProp = 0x80
)

// GATT attribute permission bits.
const (
	PermRead        = 0x01
	PermReadCrypt   = 0x02
	PermReadMITM    = 0x04
	PermWrite       = 0x10
	PermWriteCrypt  = 0x20
	PermWriteMITM   = 0x40
	PermWriteSigned = 0x80
)

// GATT characteristic write types.
const (
	WriteNoResponse = 1
	WriteDefault    = 2
	WriteSigned     = 4
)

// GattService is a service exposed by a GATT server.
type GattService struct {
	UUID       uuid.UUID
	InstanceID int32
	Type       int32

	Characteristics  []*GattCharacteristic
	IncludedServices []*GattService
}

// MarshalWire converts s to an object. The characteristic and
// included service lists are always arrays, even when empty.
func (s *GattService) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("instanceId", wire.Int(int64(s.InstanceID)))
		o.Put("type", wire.Int(int64(s.Type)))
		chars, err := e.Array(len(s.Characteristics), func(i int) (wire.Node, error) {
			return e.Value(s.Characteristics[i])
		})
		if err != nil {
			return err
		}
		o.Put("gattCharacteristicList", chars)
		incl, err := e.Array(len(s.IncludedServices), func(i int) (wire.Node, error) {
			return e.Value(s.IncludedServices[i])
		})
		if err != nil {
			return err
		}
		o.Put("includedServices", incl)
		o.Put("uuid", wire.String(s.UUID.String()))
		return nil
	})
}

// GattCharacteristic is a characteristic of a GATT service.
type GattCharacteristic struct {
	UUID        uuid.UUID
	InstanceID  int32
	Permissions int32
	Properties  int32
	WriteType   int32
	Descriptors []*GattDescriptor
	// Value is the last value read or written, if any.
	Value []byte
}

// Ref returns a reference to c, suitable for use as the parent of a
// descriptor.
func (c *GattCharacteristic) Ref() *CharacteristicRef {
	return &CharacteristicRef{UUID: c.UUID, InstanceID: c.InstanceID}
}

// AddDescriptor appends d to the descriptors of c, and points d back
// at c.
func (c *GattCharacteristic) AddDescriptor(d *GattDescriptor) {
	d.Characteristic = c.Ref()
	c.Descriptors = append(c.Descriptors, d)
}

func (c *GattCharacteristic) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("instanceId", wire.Int(int64(c.InstanceID)))
		o.Put("permissions", wire.Int(int64(c.Permissions)))
		o.Put("properties", wire.Int(int64(c.Properties)))
		o.Put("writeType", wire.Int(int64(c.WriteType)))
		descs, err := e.Array(len(c.Descriptors), func(i int) (wire.Node, error) {
			return e.Value(c.Descriptors[i])
		})
		if err != nil {
			return err
		}
		o.Put("descriptorsList", descs)
		o.Put("uuid", wire.String(c.UUID.String()))
		return o.Value("value", c.Value)
	})
}

// CharacteristicRef identifies a characteristic without carrying its
// descriptors, so that a descriptor can name its parent without
// creating a cycle.
type CharacteristicRef struct {
	UUID       uuid.UUID
	InstanceID int32
}

func (r CharacteristicRef) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("instanceId", wire.Int(int64(r.InstanceID)))
		o.Put("uuid", wire.String(r.UUID.String()))
		return nil
	})
}

// GattDescriptor is a descriptor of a GATT characteristic.
type GattDescriptor struct {
	UUID        uuid.UUID
	InstanceID  int32
	Permissions int32
	// Characteristic is the characteristic the descriptor belongs
	// to, if known.
	Characteristic *CharacteristicRef
	Value          []byte
}

func (d *GattDescriptor) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("instanceId", wire.Int(int64(d.InstanceID)))
		o.Put("permissions", wire.Int(int64(d.Permissions)))
		if err := o.Value("characteristic", d.Characteristic); err != nil {
			return err
		}
		o.Put("uuid", wire.String(d.UUID.String()))
		return o.Value("value", d.Value)
	})
}
