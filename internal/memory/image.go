// Package memory implements the byte-addressable memory image that the
// assembler writes into and the datapath reads and writes during
// simulation (spec §6). It is the external collaborator both cores share;
// neither the assembler nor the datapath owns it directly, matching the §9
// redesign note that the directive executor should hold a plain reference
// to the image rather than reach back into the assembler for it.
package memory

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Listener is invoked synchronously, inside Write, after the buffer
// mutation completes, with the exact slice that was written.
type Listener func(written []byte)

// Image is a flat, fixed-size byte-addressable buffer.
type Image struct {
	buf       []byte
	listeners map[uint32][]Listener
}

// New allocates an Image of the given size, zero-filled.
func New(size uint32) *Image {
	return &Image{
		buf:       make([]byte, size),
		listeners: make(map[uint32][]Listener),
	}
}

// Size returns the capacity of the image in bytes.
func (m *Image) Size() uint32 {
	return uint32(len(m.buf))
}

// Write validates address+len <= Size(), writes bytes starting at address,
// and fires any listener registered at exactly address with the written
// slice.
func (m *Image) Write(address uint32, data []byte) error {
	end := uint64(address) + uint64(len(data))
	if end > uint64(len(m.buf)) {
		return errors.Errorf("memory: write at 0x%x (%d bytes) exceeds size 0x%x", address, len(data), len(m.buf))
	}
	copy(m.buf[address:end], data)
	for _, l := range m.listeners[address] {
		l(data)
	}
	return nil
}

// ReadByte reads a single byte at address.
func (m *Image) ReadByte(address uint32) (byte, error) {
	if uint64(address) >= uint64(len(m.buf)) {
		return 0, errors.Errorf("memory: read_byte at 0x%x exceeds size 0x%x", address, len(m.buf))
	}
	return m.buf[address], nil
}

// ReadWord reads four consecutive bytes starting at address, big-endian
// (bit 31 of the word is the MSB of the byte at address), per §6.
func (m *Image) ReadWord(address uint32) (uint32, error) {
	end := uint64(address) + 4
	if end > uint64(len(m.buf)) {
		return 0, errors.Errorf("memory: read_word at 0x%x exceeds size 0x%x", address, len(m.buf))
	}
	return binary.BigEndian.Uint32(m.buf[address:end]), nil
}

// AddListener registers fn to fire on any Write starting exactly at
// address.
func (m *Image) AddListener(address uint32, fn Listener) {
	m.listeners[address] = append(m.listeners[address], fn)
}

// Clear zeroes every byte and drops all registered listeners.
func (m *Image) Clear() {
	for i := range m.buf {
		m.buf[i] = 0
	}
	m.listeners = make(map[uint32][]Listener)
}
