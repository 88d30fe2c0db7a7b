// Command mipsasm assembles a MIPS-I source file into a memory image and,
// optionally, runs it to completion on the single-cycle datapath simulator.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"mipskit/internal/assembler"
	"mipskit/internal/datapath"

	"github.com/k0kubun/pp/v3"
)

func main() {
	var (
		dataBase = flag.Uint("data-base", 0x800, "address of the .data segment")
		memSize  = flag.Uint("mem-size", 0x10000, "backing memory image size in bytes")
		run      = flag.Bool("run", false, "run the assembled program on the datapath simulator")
		steps    = flag.Int("steps", 10000, "maximum clock cycles when -run is set")
		trace    = flag.Bool("trace", false, "dump the label names and resolved instructions")
		dumpRegs = flag.Bool("dump-regs", false, "print the register file after -run finishes")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: mipsasm [flags] <source.asm>")
		os.Exit(2)
	}

	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("reading source: %v", err)
	}

	opts := []assembler.Option{
		assembler.WithDataBase(uint32(*dataBase)),
		assembler.WithMemorySize(uint32(*memSize)),
	}
	if *trace {
		opts = append(opts, assembler.WithTrace())
	}

	result, err := assembler.Assemble(string(src), opts...)
	if err != nil {
		log.Fatalf("assemble: %v", err)
	}

	fmt.Printf("assembled %d instruction(s), entry point 0x%08X\n", len(result.Instructions), result.EntryPoint)

	if !*run {
		return
	}

	cpu := datapath.New(result.Memory, result.EntryPoint)
	ran, err := cpu.Run(*steps)
	if err != nil {
		log.Fatalf("simulate: %v (after %d cycles)", err, ran)
	}
	fmt.Printf("ran %d cycle(s), final PC 0x%08X\n", ran, cpu.PC.Out.Read())

	if *dumpRegs {
		pp.Println(cpu.Regs.Snapshot())
	}
}
