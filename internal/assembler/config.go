package assembler

// Config controls the two addresses the assembler has to pick before any
// source is read. Both default to the values documented as this project's
// resolution of the spec's open questions on segment placement.
type Config struct {
	TextBase uint32
	DataBase uint32
	MemSize  uint32
	Trace    bool
}

// Option configures the assembler away from its defaults.
type Option func(*Config)

// defaultConfig matches DESIGN.md's Open Questions section: .text starts at
// address 0, .data at 0x800, and the memory image backing both is 64 KiB
// unless the caller asks for more.
func defaultConfig() Config {
	return Config{
		TextBase: 0x00000000,
		DataBase: 0x00000800,
		MemSize:  0x00010000,
	}
}

// WithDataBase overrides the .data segment's base address.
func WithDataBase(addr uint32) Option {
	return func(c *Config) { c.DataBase = addr }
}

// WithTextBase overrides the .text segment's base address.
func WithTextBase(addr uint32) Option {
	return func(c *Config) { c.TextBase = addr }
}

// WithMemorySize overrides the backing memory image's size in bytes.
func WithMemorySize(n uint32) Option {
	return func(c *Config) { c.MemSize = n }
}

// WithTrace turns on a pp-formatted dump, to pp's default output, of the
// symbol table's label names and the final real-instruction list, printed
// once after every instruction has been encoded and loaded.
func WithTrace() Option {
	return func(c *Config) { c.Trace = true }
}
