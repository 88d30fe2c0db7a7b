package memory

import "testing"

func TestWriteReadByte(t *testing.T) {
	m := New(16)
	if err := m.Write(4, []byte{0xAB}); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := m.ReadByte(4)
	if err != nil {
		t.Fatalf("read_byte: %v", err)
	}
	if b != 0xAB {
		t.Fatalf("got %#x, want 0xAB", b)
	}
}

func TestReadWordBigEndian(t *testing.T) {
	m := New(16)
	if err := m.Write(0, []byte{0x01, 0x02, 0x03, 0x04}); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := m.ReadWord(0)
	if err != nil {
		t.Fatalf("read_word: %v", err)
	}
	if w != 0x01020304 {
		t.Fatalf("got %#x, want 0x01020304", w)
	}
}

func TestWriteOutOfBounds(t *testing.T) {
	m := New(4)
	if err := m.Write(2, []byte{1, 2, 3}); err == nil {
		t.Fatal("expected an out-of-bounds error")
	}
}

func TestReadWordOutOfBounds(t *testing.T) {
	m := New(4)
	if _, err := m.ReadWord(1); err == nil {
		t.Fatal("expected an out-of-bounds error")
	}
}

func TestListenerFiresOnExactAddress(t *testing.T) {
	m := New(16)
	var got []byte
	m.AddListener(8, func(written []byte) { got = written })

	if err := m.Write(4, []byte{9, 9}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got != nil {
		t.Fatal("listener fired for a write at a different address")
	}

	if err := m.Write(8, []byte{1, 2, 3}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(got) != 3 || got[0] != 1 {
		t.Fatalf("listener did not receive the written bytes, got %v", got)
	}
}

func TestClear(t *testing.T) {
	m := New(8)
	fired := false
	m.AddListener(0, func([]byte) { fired = true })
	_ = m.Write(0, []byte{0xFF})
	m.Clear()

	b, _ := m.ReadByte(0)
	if b != 0 {
		t.Fatalf("byte 0 not cleared, got %#x", b)
	}
	fired = false
	_ = m.Write(0, []byte{0xFF})
	if fired {
		t.Fatal("listener survived Clear")
	}
}
