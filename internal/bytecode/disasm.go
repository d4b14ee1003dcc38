package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders words as a human-readable instruction listing, one
// line per word, indexed from 0.
func Disassemble(words []uint64) string {
	var sb strings.Builder
	for i, w := range words {
		fmt.Fprintf(&sb, "%04d  %s\n", i, DisassembleOne(w))
	}
	return sb.String()
}

// DisassembleOne renders a single instruction word.
func DisassembleOne(w uint64) string {
	switch DecodeFamily(w) {
	case FamilyBinaryType:
		op, dst, a, b, typeTag := DecodeBinaryType(w)
		return fmt.Sprintf("%-5s r%d, r%d, r%d  ; type=%d", op, dst, a, b, typeTag)
	case FamilyBinaryBits:
		op, dst, a, b, width := DecodeBinaryBits(w)
		return fmt.Sprintf("%-5s r%d, r%d, r%d  ; width=%d", op, dst, a, b, width)
	case FamilyBranch:
		op, offset := DecodeBranch(w)
		return fmt.Sprintf("%-5s %+d", op, offset)
	case FamilySignedImm:
		return fmt.Sprintf("imm.s %d", DecodeSignedImm(w))
	case FamilyUnsignedImm:
		return fmt.Sprintf("imm.u %d", DecodeUnsignedImm(w))
	default:
		return fmt.Sprintf("<invalid 0x%016x>", w)
	}
}

// DisassembleSection decodes sec's content as a stream of little-endian
// uint64 instruction words and renders it via Disassemble. Content whose
// length is not a multiple of 8 is truncated at the last whole word,
// matching how the container format never pads content itself beyond
// its own 8-byte section-header alignment.
func DisassembleSection(sec Section) string {
	n := len(sec.Content) / 8
	words := make([]uint64, n)
	for i := 0; i < n; i++ {
		words[i] = leUint64(sec.Content[i*8 : i*8+8])
	}
	return Disassemble(words)
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
