// Package testutil provides a tiny RV64 assembler used by tests to
// build user programs without checking in binary fixtures. Each helper
// returns one 32-bit instruction word; Program packs words into the
// little-endian byte stream the loader expects.
package testutil

import "encoding/binary"

// ABI register numbers used by test programs.
const (
	Zero = 0
	RA   = 1
	SP   = 2
	T0   = 5
	T1   = 6
	A0   = 10
	A1   = 11
	A2   = 12
	A7   = 17
)

func encR(f7, rs2, rs1, f3, rd, op uint32) uint32 {
	return f7<<25 | rs2<<20 | rs1<<15 | f3<<12 | rd<<7 | op
}

func encI(imm int32, rs1, f3, rd, op uint32) uint32 {
	return uint32(imm)<<20 | rs1<<15 | f3<<12 | rd<<7 | op
}

func encS(imm int32, rs2, rs1, f3, op uint32) uint32 {
	u := uint32(imm)
	return u>>5<<25 | rs2<<20 | rs1<<15 | f3<<12 | u&0x1F<<7 | op
}

func encB(imm int32, rs2, rs1, f3, op uint32) uint32 {
	u := uint32(imm)
	return u>>12&1<<31 | u>>5&0x3F<<25 | rs2<<20 | rs1<<15 |
		f3<<12 | u>>1&0xF<<8 | u>>11&1<<7 | op
}

func encU(imm uint32, rd, op uint32) uint32 {
	return imm&0xFFFFF000 | rd<<7 | op
}

func encJ(imm int32, rd, op uint32) uint32 {
	u := uint32(imm)
	return u>>20&1<<31 | u>>1&0x3FF<<21 | u>>11&1<<20 |
		u>>12&0xFF<<12 | rd<<7 | op
}

// Upper-immediate and control transfer.

func LUI(rd uint32, imm uint32) uint32   { return encU(imm, rd, 0x37) }
func AUIPC(rd uint32, imm uint32) uint32 { return encU(imm, rd, 0x17) }
func JAL(rd uint32, off int32) uint32    { return encJ(off, rd, 0x6F) }

func JALR(rd, rs1 uint32, off int32) uint32 { return encI(off, rs1, 0, rd, 0x67) }

// Conditional branches. Offsets are relative to the branch itself.

func BEQ(rs1, rs2 uint32, off int32) uint32  { return encB(off, rs2, rs1, 0, 0x63) }
func BNE(rs1, rs2 uint32, off int32) uint32  { return encB(off, rs2, rs1, 1, 0x63) }
func BLT(rs1, rs2 uint32, off int32) uint32  { return encB(off, rs2, rs1, 4, 0x63) }
func BGE(rs1, rs2 uint32, off int32) uint32  { return encB(off, rs2, rs1, 5, 0x63) }
func BLTU(rs1, rs2 uint32, off int32) uint32 { return encB(off, rs2, rs1, 6, 0x63) }
func BGEU(rs1, rs2 uint32, off int32) uint32 { return encB(off, rs2, rs1, 7, 0x63) }

// Loads and stores.

func LB(rd, rs1 uint32, off int32) uint32  { return encI(off, rs1, 0, rd, 0x03) }
func LH(rd, rs1 uint32, off int32) uint32  { return encI(off, rs1, 1, rd, 0x03) }
func LW(rd, rs1 uint32, off int32) uint32  { return encI(off, rs1, 2, rd, 0x03) }
func LD(rd, rs1 uint32, off int32) uint32  { return encI(off, rs1, 3, rd, 0x03) }
func LBU(rd, rs1 uint32, off int32) uint32 { return encI(off, rs1, 4, rd, 0x03) }
func LHU(rd, rs1 uint32, off int32) uint32 { return encI(off, rs1, 5, rd, 0x03) }
func LWU(rd, rs1 uint32, off int32) uint32 { return encI(off, rs1, 6, rd, 0x03) }

func SB(rs2, rs1 uint32, off int32) uint32 { return encS(off, rs2, rs1, 0, 0x23) }
func SH(rs2, rs1 uint32, off int32) uint32 { return encS(off, rs2, rs1, 1, 0x23) }
func SW(rs2, rs1 uint32, off int32) uint32 { return encS(off, rs2, rs1, 2, 0x23) }
func SD(rs2, rs1 uint32, off int32) uint32 { return encS(off, rs2, rs1, 3, 0x23) }

// Register-immediate arithmetic.

func ADDI(rd, rs1 uint32, imm int32) uint32  { return encI(imm, rs1, 0, rd, 0x13) }
func SLTI(rd, rs1 uint32, imm int32) uint32  { return encI(imm, rs1, 2, rd, 0x13) }
func SLTIU(rd, rs1 uint32, imm int32) uint32 { return encI(imm, rs1, 3, rd, 0x13) }
func XORI(rd, rs1 uint32, imm int32) uint32  { return encI(imm, rs1, 4, rd, 0x13) }
func ORI(rd, rs1 uint32, imm int32) uint32   { return encI(imm, rs1, 6, rd, 0x13) }
func ANDI(rd, rs1 uint32, imm int32) uint32  { return encI(imm, rs1, 7, rd, 0x13) }

func SLLI(rd, rs1, shamt uint32) uint32 { return encI(int32(shamt), rs1, 1, rd, 0x13) }
func SRLI(rd, rs1, shamt uint32) uint32 { return encI(int32(shamt), rs1, 5, rd, 0x13) }
func SRAI(rd, rs1, shamt uint32) uint32 {
	return encI(int32(0x400|shamt), rs1, 5, rd, 0x13)
}

func ADDIW(rd, rs1 uint32, imm int32) uint32 { return encI(imm, rs1, 0, rd, 0x1B) }
func SLLIW(rd, rs1, shamt uint32) uint32     { return encI(int32(shamt), rs1, 1, rd, 0x1B) }
func SRLIW(rd, rs1, shamt uint32) uint32     { return encI(int32(shamt), rs1, 5, rd, 0x1B) }
func SRAIW(rd, rs1, shamt uint32) uint32 {
	return encI(int32(0x400|shamt), rs1, 5, rd, 0x1B)
}

// Register-register arithmetic, including the M extension.

func ADD(rd, rs1, rs2 uint32) uint32  { return encR(0x00, rs2, rs1, 0, rd, 0x33) }
func SUB(rd, rs1, rs2 uint32) uint32  { return encR(0x20, rs2, rs1, 0, rd, 0x33) }
func SLL(rd, rs1, rs2 uint32) uint32  { return encR(0x00, rs2, rs1, 1, rd, 0x33) }
func SLT(rd, rs1, rs2 uint32) uint32  { return encR(0x00, rs2, rs1, 2, rd, 0x33) }
func SLTU(rd, rs1, rs2 uint32) uint32 { return encR(0x00, rs2, rs1, 3, rd, 0x33) }
func XOR(rd, rs1, rs2 uint32) uint32  { return encR(0x00, rs2, rs1, 4, rd, 0x33) }
func SRL(rd, rs1, rs2 uint32) uint32  { return encR(0x00, rs2, rs1, 5, rd, 0x33) }
func SRA(rd, rs1, rs2 uint32) uint32  { return encR(0x20, rs2, rs1, 5, rd, 0x33) }
func OR(rd, rs1, rs2 uint32) uint32   { return encR(0x00, rs2, rs1, 6, rd, 0x33) }
func AND(rd, rs1, rs2 uint32) uint32  { return encR(0x00, rs2, rs1, 7, rd, 0x33) }

func ADDW(rd, rs1, rs2 uint32) uint32 { return encR(0x00, rs2, rs1, 0, rd, 0x3B) }
func SUBW(rd, rs1, rs2 uint32) uint32 { return encR(0x20, rs2, rs1, 0, rd, 0x3B) }
func SLLW(rd, rs1, rs2 uint32) uint32 { return encR(0x00, rs2, rs1, 1, rd, 0x3B) }
func SRLW(rd, rs1, rs2 uint32) uint32 { return encR(0x00, rs2, rs1, 5, rd, 0x3B) }
func SRAW(rd, rs1, rs2 uint32) uint32 { return encR(0x20, rs2, rs1, 5, rd, 0x3B) }

func MUL(rd, rs1, rs2 uint32) uint32    { return encR(1, rs2, rs1, 0, rd, 0x33) }
func MULH(rd, rs1, rs2 uint32) uint32   { return encR(1, rs2, rs1, 1, rd, 0x33) }
func MULHSU(rd, rs1, rs2 uint32) uint32 { return encR(1, rs2, rs1, 2, rd, 0x33) }
func MULHU(rd, rs1, rs2 uint32) uint32  { return encR(1, rs2, rs1, 3, rd, 0x33) }
func DIV(rd, rs1, rs2 uint32) uint32    { return encR(1, rs2, rs1, 4, rd, 0x33) }
func DIVU(rd, rs1, rs2 uint32) uint32   { return encR(1, rs2, rs1, 5, rd, 0x33) }
func REM(rd, rs1, rs2 uint32) uint32    { return encR(1, rs2, rs1, 6, rd, 0x33) }
func REMU(rd, rs1, rs2 uint32) uint32   { return encR(1, rs2, rs1, 7, rd, 0x33) }

func MULW(rd, rs1, rs2 uint32) uint32  { return encR(1, rs2, rs1, 0, rd, 0x3B) }
func DIVW(rd, rs1, rs2 uint32) uint32  { return encR(1, rs2, rs1, 4, rd, 0x3B) }
func DIVUW(rd, rs1, rs2 uint32) uint32 { return encR(1, rs2, rs1, 5, rd, 0x3B) }
func REMW(rd, rs1, rs2 uint32) uint32  { return encR(1, rs2, rs1, 6, rd, 0x3B) }
func REMUW(rd, rs1, rs2 uint32) uint32 { return encR(1, rs2, rs1, 7, rd, 0x3B) }

// System instructions.

func ECALL() uint32  { return 0x0000_0073 }
func EBREAK() uint32 { return 0x0010_0073 }
func MRET() uint32   { return 0x3020_0073 }
func WFI() uint32    { return 0x1050_0073 }
func FENCE() uint32  { return 0x0000_000F }

func CSRRW(rd, csr, rs1 uint32) uint32 { return encI(int32(csr), rs1, 1, rd, 0x73) }
func CSRRS(rd, csr, rs1 uint32) uint32 { return encI(int32(csr), rs1, 2, rd, 0x73) }

// LoadImm expands to an LUI+ADDIW pair materializing a 32-bit signed
// constant in rd.
func LoadImm(rd uint32, v int32) []uint32 {
	hi := uint32(v) + 0x800
	return []uint32{LUI(rd, hi), ADDIW(rd, rd, v<<20>>20)}
}

// Exit returns the instruction sequence a well-behaved program ends
// with: exit status in a0, syscall 93 in a7, ecall.
func Exit(status int32) []uint32 {
	return []uint32{ADDI(A0, Zero, status), ADDI(A7, Zero, 93), ECALL()}
}

// Program packs instruction words into little-endian bytes.
func Program(words ...uint32) []byte {
	b := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(b[4*i:], w)
	}
	return b
}

// Flatten joins instruction groups (such as LoadImm or Exit expansions)
// and single words into one sequence.
func Flatten(parts ...any) []uint32 {
	var out []uint32
	for _, p := range parts {
		switch v := p.(type) {
		case uint32:
			out = append(out, v)
		case []uint32:
			out = append(out, v...)
		}
	}
	return out
}
