package message

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/abelviageiro/prplMesh/errors"
)

// Frame layout, all integers big-endian:
//
//	u32 length | u16 type | u16 mid | body
//
// Vendor-specific body:
//
//	u8 action | u16 op | u8 direction | u16 id | 6B radio mac | payload (JSON)
//
// Standardised 1905.1 body: repeated TLVs {u8 type | u16 len | value},
// terminated by the end-of-message TLV.
const (
	headerLen       = 4
	cmduFixedLen    = 4
	vendorFixedLen  = 12
	tlvHeaderLen    = 3
	// MaxFrameSize bounds a single CMDU on the local bus.
	MaxFrameSize = 256 * 1024
)

// Encode serialises a CMDU into a length-prefixed frame.
func Encode(c *CMDU) ([]byte, error) {
	var body bytes.Buffer
	_ = binary.Write(&body, binary.BigEndian, uint16(c.Type))
	_ = binary.Write(&body, binary.BigEndian, c.MID)

	if c.Type == TypeVendorSpecific {
		if c.Vendor == nil {
			return nil, errors.WrapInvalid(errors.ErrMalformedFrame, "codec", "Encode", "missing vendor header")
		}
		body.WriteByte(uint8(c.Vendor.Action))
		_ = binary.Write(&body, binary.BigEndian, uint16(c.Vendor.Op))
		body.WriteByte(uint8(c.Vendor.Direction))
		_ = binary.Write(&body, binary.BigEndian, c.Vendor.ID)
		body.Write(c.Vendor.RadioMAC[:])

		if c.Payload != nil {
			raw, err := json.Marshal(c.Payload)
			if err != nil {
				return nil, errors.WrapInvalid(err, "codec", "Encode", "payload marshal")
			}
			body.Write(raw)
		}
	} else {
		for _, tlv := range c.TLVs {
			body.WriteByte(tlv.Type)
			_ = binary.Write(&body, binary.BigEndian, uint16(len(tlv.Value)))
			body.Write(tlv.Value)
		}
		body.WriteByte(TLVTypeEndOfMessage)
		_ = binary.Write(&body, binary.BigEndian, uint16(0))
	}

	if body.Len() > MaxFrameSize {
		return nil, errors.WrapInvalid(fmt.Errorf("frame of %d bytes", body.Len()),
			"codec", "Encode", "frame size check")
	}

	frame := make([]byte, headerLen+body.Len())
	binary.BigEndian.PutUint32(frame, uint32(body.Len()))
	copy(frame[headerLen:], body.Bytes())
	return frame, nil
}

// Decode parses one length-prefixed frame back into a CMDU.
func Decode(frame []byte) (*CMDU, error) {
	if len(frame) < headerLen+cmduFixedLen {
		return nil, errors.WrapInvalid(errors.ErrMalformedFrame, "codec", "Decode", "frame length check")
	}
	length := binary.BigEndian.Uint32(frame)
	if int(length) != len(frame)-headerLen {
		return nil, errors.WrapInvalid(errors.ErrMalformedFrame, "codec", "Decode", "length prefix check")
	}

	body := frame[headerLen:]
	c := &CMDU{
		Type: Type(binary.BigEndian.Uint16(body)),
		MID:  binary.BigEndian.Uint16(body[2:]),
	}
	body = body[cmduFixedLen:]

	if c.Type == TypeVendorSpecific {
		return decodeVendor(c, body)
	}
	return decodeTLVs(c, body)
}

func decodeVendor(c *CMDU, body []byte) (*CMDU, error) {
	if len(body) < vendorFixedLen {
		return nil, errors.WrapInvalid(errors.ErrMalformedFrame, "codec", "decodeVendor", "vendor header length")
	}

	hdr := &VendorHeader{
		Action:    Action(body[0]),
		Op:        ActionOp(binary.BigEndian.Uint16(body[1:])),
		Direction: Direction(body[3]),
		ID:        binary.BigEndian.Uint16(body[4:]),
	}
	copy(hdr.RadioMAC[:], body[6:12])

	if ActionFor(hdr.Op) != hdr.Action {
		return nil, errors.WrapInvalid(errors.ErrUnknownActionOp, "codec", "decodeVendor", "opcode block check")
	}
	c.Vendor = hdr

	raw := body[vendorFixedLen:]
	if len(raw) == 0 {
		return c, nil
	}

	payload := NewPayload(hdr.Op)
	if payload == nil {
		return nil, errors.WrapInvalid(errors.ErrUnknownActionOp, "codec", "decodeVendor",
			fmt.Sprintf("unexpected payload for %s", hdr.Op))
	}
	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, errors.WrapInvalid(err, "codec", "decodeVendor", "payload unmarshal")
	}
	c.Payload = payload
	return c, nil
}

func decodeTLVs(c *CMDU, body []byte) (*CMDU, error) {
	for {
		if len(body) < tlvHeaderLen {
			return nil, errors.WrapInvalid(errors.ErrMalformedFrame, "codec", "decodeTLVs", "tlv header length")
		}
		t := body[0]
		l := int(binary.BigEndian.Uint16(body[1:]))
		body = body[tlvHeaderLen:]
		if t == TLVTypeEndOfMessage {
			return c, nil
		}
		if len(body) < l {
			return nil, errors.WrapInvalid(errors.ErrMalformedFrame, "codec", "decodeTLVs", "tlv value length")
		}
		value := make([]byte, l)
		copy(value, body[:l])
		c.TLVs = append(c.TLVs, TLV{Type: t, Value: value})
		body = body[l:]
	}
}

// WriteFrame encodes a CMDU and writes the full frame to w.
func WriteFrame(w io.Writer, c *CMDU) error {
	frame, err := Encode(c)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return errors.WrapTransient(err, "codec", "WriteFrame", "frame write")
	}
	return nil
}

// ReadFrame reads one length-prefixed frame from r and decodes it.
func ReadFrame(r io.Reader) (*CMDU, error) {
	var lenBuf [headerLen]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(lenBuf[:])
	if length > MaxFrameSize {
		return nil, errors.WrapInvalid(errors.ErrMalformedFrame, "codec", "ReadFrame", "frame size check")
	}
	frame := make([]byte, headerLen+int(length))
	copy(frame, lenBuf[:])
	if _, err := io.ReadFull(r, frame[headerLen:]); err != nil {
		return nil, err
	}
	return Decode(frame)
}
