package grid

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// signature is the 8-byte magic every persisted program begins with.
const signature = "brstmata"

// storageVersion is the on-disk format version this package writes and the
// only version it will accept on load.
const storageVersion int32 = 1

// onDiskValue is the fixed 12-byte wire layout of a Value: a little-endian
// int32 tag, two flag bytes, two bytes of explicit padding (encoding/binary
// never inserts padding on its own, so this keeps every record a constant
// size regardless of future field additions), and a little-endian int32
// literal.
type onDiskValue struct {
	Tag     int32
	Powered uint8
	Pulse   uint8
	_       uint16
	Literal int32
}

func toOnDisk(v Value) onDiskValue {
	out := onDiskValue{Tag: int32(v.Tag), Literal: v.Literal}
	if v.Powered {
		out.Powered = 1
	}
	if v.Pulse {
		out.Pulse = 1
	}
	return out
}

func fromOnDisk(d onDiskValue) Value {
	return Value{
		Tag:     Tag(d.Tag),
		Powered: d.Powered != 0,
		Pulse:   d.Pulse != 0,
		Literal: d.Literal,
	}
}

// ModelStorage is the subset of a Model that survives a save/load round
// trip: the register file and the map, but not the beat counter or the rng
// stream, which loading a program leaves as they were.
type ModelStorage struct {
	Registers [Radix]Value
	Map       [Height][Width]Value
}

// Snapshot copies the persisted portion of m out into a ModelStorage.
func (m *Model) Snapshot() ModelStorage {
	var s ModelStorage
	s.Registers = m.Registers
	s.Map = m.Map
	return s
}

// Restore overwrites m's registers and map from s, leaving its frame counter
// and rng stream untouched.
func (m *Model) Restore(s ModelStorage) {
	m.Registers = s.Registers
	m.Map = s.Map
}

// Encode serializes s into the persisted file format: an 8-byte signature,
// a little-endian int32 version, the register file, then the map in
// row-major order.
func Encode(s ModelStorage) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(signature)
	binary.Write(buf, binary.LittleEndian, storageVersion)
	for _, v := range s.Registers {
		binary.Write(buf, binary.LittleEndian, toOnDisk(v))
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			binary.Write(buf, binary.LittleEndian, toOnDisk(s.Map[y][x]))
		}
	}
	return buf.Bytes()
}

// Decode parses the persisted file format produced by Encode, rejecting any
// buffer whose signature, version, or length doesn't match exactly.
func Decode(data []byte) (ModelStorage, error) {
	var s ModelStorage

	header := len(signature) + 4
	if len(data) < header || string(data[:len(signature)]) != signature {
		return s, fmt.Errorf("grid: bad signature")
	}

	version := int32(binary.LittleEndian.Uint32(data[len(signature):header]))
	if version != storageVersion {
		return s, fmt.Errorf("grid: unsupported version %d", version)
	}

	const recordSize = 12
	want := header + recordSize*(Radix+Width*Height)
	if len(data) != want {
		return s, fmt.Errorf("grid: bad file size: got %d want %d", len(data), want)
	}

	r := bytes.NewReader(data[header:])
	for i := range s.Registers {
		var d onDiskValue
		if err := binary.Read(r, binary.LittleEndian, &d); err != nil {
			return ModelStorage{}, err
		}
		s.Registers[i] = fromOnDisk(d)
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			var d onDiskValue
			if err := binary.Read(r, binary.LittleEndian, &d); err != nil {
				return ModelStorage{}, err
			}
			s.Map[y][x] = fromOnDisk(d)
		}
	}
	return s, nil
}
