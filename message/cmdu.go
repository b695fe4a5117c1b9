package message

// TLV is a type-length-value record inside a 1905.1 CMDU.
type TLV struct {
	Type  uint8
	Value []byte
}

// 1905.1 TLV types used by the core.
const (
	TLVTypeEndOfMessage   uint8 = 0x00
	TLVTypeVendorSpecific uint8 = 0x0b
	TLVTypeWSC            uint8 = 0x11
)

// VendorHeader is the header every vendor-specific CMDU starts with.
type VendorHeader struct {
	Action    Action
	Op        ActionOp
	Direction Direction
	ID        uint16
	RadioMAC  MAC
}

// CMDU is a control message data unit. A vendor-specific CMDU carries the
// vendor header and a typed payload; a standardised 1905.1 CMDU carries TLVs.
type CMDU struct {
	Type    Type
	MID     uint16
	Vendor  *VendorHeader
	Payload any
	TLVs    []TLV
}

// NewVendor builds a vendor-specific CMDU for the given opcode. The action is
// derived from the opcode's block.
func NewVendor(op ActionOp, payload any) *CMDU {
	return &CMDU{
		Type: TypeVendorSpecific,
		Vendor: &VendorHeader{
			Action: ActionFor(op),
			Op:     op,
		},
		Payload: payload,
	}
}

// New1905 builds a standardised 1905.1 CMDU.
func New1905(t Type, mid uint16, tlvs ...TLV) *CMDU {
	return &CMDU{Type: t, MID: mid, TLVs: tlvs}
}

// WithID sets the vendor transaction id, typically echoed from a request.
func (c *CMDU) WithID(id uint16) *CMDU {
	if c.Vendor != nil {
		c.Vendor.ID = id
	}
	return c
}

// Op returns the vendor opcode, or zero for non-vendor CMDUs.
func (c *CMDU) Op() ActionOp {
	if c.Vendor == nil {
		return 0
	}
	return c.Vendor.Op
}

// FirstTLV returns the first TLV of the given type, if present.
func (c *CMDU) FirstTLV(t uint8) (TLV, bool) {
	for _, tlv := range c.TLVs {
		if tlv.Type == t {
			return tlv, true
		}
	}
	return TLV{}, false
}
