package rv64

import "math/bits"

// Major opcodes.
const (
	opLUI    = 0x37
	opAUIPC  = 0x17
	opJAL    = 0x6F
	opJALR   = 0x67
	opBranch = 0x63
	opLoad   = 0x03
	opStore  = 0x23
	opImm    = 0x13
	opImm32  = 0x1B
	opReg    = 0x33
	opReg32  = 0x3B
	opFence  = 0x0F
	opSystem = 0x73
)

// exec decodes and executes one instruction word. On success it advances
// PC (sequentially or to the branch/jump target) and returns nil.
func (c *CPU) exec(inst uint32) *Trap {
	op := inst & 0x7F
	rd := int(inst >> 7 & 0x1F)
	rs1 := int(inst >> 15 & 0x1F)
	rs2 := int(inst >> 20 & 0x1F)
	f3 := inst >> 12 & 0x7
	f7 := inst >> 25
	npc := c.PC + 4

	switch op {
	case opLUI:
		c.setReg(rd, uint64(int64(int32(inst&0xFFFFF000))))

	case opAUIPC:
		c.setReg(rd, c.PC+uint64(int64(int32(inst&0xFFFFF000))))

	case opJAL:
		c.setReg(rd, npc)
		npc = c.PC + uint64(immJ(inst))

	case opJALR:
		if f3 != 0 {
			return c.illegal(inst)
		}
		target := (c.Regs[rs1] + uint64(immI(inst))) &^ 1
		c.setReg(rd, npc)
		npc = target

	case opBranch:
		a, b := c.Regs[rs1], c.Regs[rs2]
		var taken bool
		switch f3 {
		case 0:
			taken = a == b
		case 1:
			taken = a != b
		case 4:
			taken = int64(a) < int64(b)
		case 5:
			taken = int64(a) >= int64(b)
		case 6:
			taken = a < b
		case 7:
			taken = a >= b
		default:
			return c.illegal(inst)
		}
		if taken {
			npc = c.PC + uint64(immB(inst))
		}

	case opLoad:
		addr := c.Regs[rs1] + uint64(immI(inst))
		v, tr := c.load(addr, f3, inst)
		if tr != nil {
			return tr
		}
		c.setReg(rd, v)

	case opStore:
		addr := c.Regs[rs1] + uint64(immS(inst))
		if tr := c.store(addr, f3, c.Regs[rs2], inst); tr != nil {
			return tr
		}

	case opImm:
		v, tr := c.aluImm(inst, f3, c.Regs[rs1])
		if tr != nil {
			return tr
		}
		c.setReg(rd, v)

	case opImm32:
		v, tr := c.aluImm32(inst, f3, c.Regs[rs1])
		if tr != nil {
			return tr
		}
		c.setReg(rd, v)

	case opReg:
		v, tr := c.aluReg(inst, f3, f7, c.Regs[rs1], c.Regs[rs2])
		if tr != nil {
			return tr
		}
		c.setReg(rd, v)

	case opReg32:
		v, tr := c.aluReg32(inst, f3, f7, c.Regs[rs1], c.Regs[rs2])
		if tr != nil {
			return tr
		}
		c.setReg(rd, v)

	case opFence:
		// FENCE and FENCE.I order nothing on a single in-order hart.

	case opSystem:
		return c.system(inst, f3, rd, rs1, &npc)

	default:
		return c.illegal(inst)
	}

	c.PC = npc
	return nil
}

func (c *CPU) system(inst, f3 uint32, rd, rs1 int, npc *uint64) *Trap {
	switch {
	case inst == 0x0000_0073: // ECALL
		if c.Priv == PrivMachine {
			return c.trap(CauseEcallFromM, 0)
		}
		return c.trap(CauseEcallFromU, 0)

	case inst == 0x0010_0073: // EBREAK
		return c.trap(CauseBreakpoint, c.PC)

	case inst == 0x3020_0073: // MRET
		if c.Priv != PrivMachine {
			return c.illegal(inst)
		}
		*npc = c.csr.mepc
		c.Priv = Priv(c.csr.mstatus >> 11 & 3)
		c.csr.mstatus &^= 3 << 11

	case inst == 0x1050_0073: // WFI: a hint; retires immediately (TW=0).

	case f3 == 0 || f3 == 4:
		return c.illegal(inst)

	default: // Zicsr
		// No counter access is delegated to user mode (mcounteren=0),
		// so every CSR touch below machine mode is illegal.
		if c.Priv != PrivMachine {
			return c.illegal(inst)
		}
		num := inst >> 20
		old := c.csr.read(num)
		src := c.Regs[rs1]
		if f3 >= 5 {
			src = uint64(rs1) // immediate forms use the field as a zimm
		}
		switch f3 & 3 {
		case 1: // CSRRW / CSRRWI
			c.csr.write(num, src)
		case 2: // CSRRS / CSRRSI
			if rs1 != 0 {
				c.csr.write(num, old|src)
			}
		case 3: // CSRRC / CSRRCI
			if rs1 != 0 {
				c.csr.write(num, old&^src)
			}
		}
		c.setReg(rd, old)
	}

	c.PC = *npc
	return nil
}

func (c *CPU) load(addr uint64, f3, inst uint32) (uint64, *Trap) {
	width := uint64(1) << (f3 & 3)
	if addr%width != 0 {
		return 0, c.trap(CauseMisalignedLoad, addr)
	}
	switch f3 {
	case 0: // LB
		v, ok := c.bus.Read8(addr)
		if !ok {
			return 0, c.trap(CauseLoadFault, addr)
		}
		return uint64(int64(int8(v))), nil
	case 1: // LH
		v, ok := c.bus.Read16(addr)
		if !ok {
			return 0, c.trap(CauseLoadFault, addr)
		}
		return uint64(int64(int16(v))), nil
	case 2: // LW
		v, ok := c.bus.Read32(addr)
		if !ok {
			return 0, c.trap(CauseLoadFault, addr)
		}
		return uint64(int64(int32(v))), nil
	case 3: // LD
		v, ok := c.bus.Read64(addr)
		if !ok {
			return 0, c.trap(CauseLoadFault, addr)
		}
		return v, nil
	case 4: // LBU
		v, ok := c.bus.Read8(addr)
		if !ok {
			return 0, c.trap(CauseLoadFault, addr)
		}
		return uint64(v), nil
	case 5: // LHU
		v, ok := c.bus.Read16(addr)
		if !ok {
			return 0, c.trap(CauseLoadFault, addr)
		}
		return uint64(v), nil
	case 6: // LWU
		v, ok := c.bus.Read32(addr)
		if !ok {
			return 0, c.trap(CauseLoadFault, addr)
		}
		return uint64(v), nil
	default:
		return 0, c.illegal(inst)
	}
}

func (c *CPU) store(addr uint64, f3 uint32, v uint64, inst uint32) *Trap {
	width := uint64(1) << f3
	if f3 > 3 {
		return c.illegal(inst)
	}
	if addr%width != 0 {
		return c.trap(CauseMisalignedStore, addr)
	}
	var ok bool
	switch f3 {
	case 0:
		ok = c.bus.Write8(addr, uint8(v))
	case 1:
		ok = c.bus.Write16(addr, uint16(v))
	case 2:
		ok = c.bus.Write32(addr, uint32(v))
	case 3:
		ok = c.bus.Write64(addr, v)
	}
	if !ok {
		return c.trap(CauseStoreFault, addr)
	}
	return nil
}

func (c *CPU) aluImm(inst, f3 uint32, a uint64) (uint64, *Trap) {
	imm := uint64(immI(inst))
	switch f3 {
	case 0: // ADDI
		return a + imm, nil
	case 1: // SLLI
		if inst>>26 != 0 {
			return 0, c.illegal(inst)
		}
		return a << (inst >> 20 & 0x3F), nil
	case 2: // SLTI
		if int64(a) < int64(imm) {
			return 1, nil
		}
		return 0, nil
	case 3: // SLTIU
		if a < imm {
			return 1, nil
		}
		return 0, nil
	case 4: // XORI
		return a ^ imm, nil
	case 5: // SRLI / SRAI
		shamt := inst >> 20 & 0x3F
		switch inst >> 26 {
		case 0x00:
			return a >> shamt, nil
		case 0x10:
			return uint64(int64(a) >> shamt), nil
		default:
			return 0, c.illegal(inst)
		}
	case 6: // ORI
		return a | imm, nil
	default: // ANDI
		return a & imm, nil
	}
}

func (c *CPU) aluImm32(inst, f3 uint32, a uint64) (uint64, *Trap) {
	switch f3 {
	case 0: // ADDIW
		return sext32(uint32(a) + uint32(immI(inst))), nil
	case 1: // SLLIW
		if inst>>25 != 0 {
			return 0, c.illegal(inst)
		}
		return sext32(uint32(a) << (inst >> 20 & 0x1F)), nil
	case 5: // SRLIW / SRAIW
		shamt := inst >> 20 & 0x1F
		switch inst >> 25 {
		case 0x00:
			return sext32(uint32(a) >> shamt), nil
		case 0x20:
			return uint64(int64(int32(a)) >> shamt), nil
		default:
			return 0, c.illegal(inst)
		}
	default:
		return 0, c.illegal(inst)
	}
}

func (c *CPU) aluReg(inst, f3, f7 uint32, a, b uint64) (uint64, *Trap) {
	if f7 == 1 {
		return c.mulDiv(f3, a, b), nil
	}
	switch {
	case f3 == 0 && f7 == 0x00: // ADD
		return a + b, nil
	case f3 == 0 && f7 == 0x20: // SUB
		return a - b, nil
	case f3 == 1 && f7 == 0x00: // SLL
		return a << (b & 0x3F), nil
	case f3 == 2 && f7 == 0x00: // SLT
		if int64(a) < int64(b) {
			return 1, nil
		}
		return 0, nil
	case f3 == 3 && f7 == 0x00: // SLTU
		if a < b {
			return 1, nil
		}
		return 0, nil
	case f3 == 4 && f7 == 0x00: // XOR
		return a ^ b, nil
	case f3 == 5 && f7 == 0x00: // SRL
		return a >> (b & 0x3F), nil
	case f3 == 5 && f7 == 0x20: // SRA
		return uint64(int64(a) >> (b & 0x3F)), nil
	case f3 == 6 && f7 == 0x00: // OR
		return a | b, nil
	case f3 == 7 && f7 == 0x00: // AND
		return a & b, nil
	default:
		return 0, c.illegal(inst)
	}
}

func (c *CPU) aluReg32(inst, f3, f7 uint32, a, b uint64) (uint64, *Trap) {
	if f7 == 1 {
		v, ok := c.mulDiv32(f3, uint32(a), uint32(b))
		if !ok {
			return 0, c.illegal(inst)
		}
		return v, nil
	}
	switch {
	case f3 == 0 && f7 == 0x00: // ADDW
		return sext32(uint32(a) + uint32(b)), nil
	case f3 == 0 && f7 == 0x20: // SUBW
		return sext32(uint32(a) - uint32(b)), nil
	case f3 == 1 && f7 == 0x00: // SLLW
		return sext32(uint32(a) << (b & 0x1F)), nil
	case f3 == 5 && f7 == 0x00: // SRLW
		return sext32(uint32(a) >> (b & 0x1F)), nil
	case f3 == 5 && f7 == 0x20: // SRAW
		return uint64(int64(int32(a)) >> (b & 0x1F)), nil
	default:
		return 0, c.illegal(inst)
	}
}

func (c *CPU) mulDiv(f3 uint32, a, b uint64) uint64 {
	switch f3 {
	case 0: // MUL
		return a * b
	case 1: // MULH
		hi, _ := bits.Mul64(a, b)
		if int64(a) < 0 {
			hi -= b
		}
		if int64(b) < 0 {
			hi -= a
		}
		return hi
	case 2: // MULHSU
		hi, _ := bits.Mul64(a, b)
		if int64(a) < 0 {
			hi -= b
		}
		return hi
	case 3: // MULHU
		hi, _ := bits.Mul64(a, b)
		return hi
	case 4: // DIV
		switch {
		case b == 0:
			return ^uint64(0)
		case int64(a) == -1<<63 && int64(b) == -1:
			return a
		default:
			return uint64(int64(a) / int64(b))
		}
	case 5: // DIVU
		if b == 0 {
			return ^uint64(0)
		}
		return a / b
	case 6: // REM
		switch {
		case b == 0:
			return a
		case int64(a) == -1<<63 && int64(b) == -1:
			return 0
		default:
			return uint64(int64(a) % int64(b))
		}
	default: // REMU
		if b == 0 {
			return a
		}
		return a % b
	}
}

func (c *CPU) mulDiv32(f3 uint32, a, b uint32) (uint64, bool) {
	switch f3 {
	case 0: // MULW
		return sext32(a * b), true
	case 4: // DIVW
		switch {
		case b == 0:
			return ^uint64(0), true
		case int32(a) == -1<<31 && int32(b) == -1:
			return sext32(a), true
		default:
			return uint64(int64(int32(a) / int32(b))), true
		}
	case 5: // DIVUW
		if b == 0 {
			return ^uint64(0), true
		}
		return sext32(a / b), true
	case 6: // REMW
		switch {
		case b == 0:
			return sext32(a), true
		case int32(a) == -1<<31 && int32(b) == -1:
			return 0, true
		default:
			return uint64(int64(int32(a) % int32(b))), true
		}
	case 7: // REMUW
		if b == 0 {
			return sext32(a), true
		}
		return sext32(a % b), true
	default:
		return 0, false
	}
}

func (c *CPU) setReg(rd int, v uint64) {
	if rd != RegZero {
		c.Regs[rd] = v
	}
}

func (c *CPU) illegal(inst uint32) *Trap {
	return c.trap(CauseIllegalInstruction, uint64(inst))
}

func sext32(v uint32) uint64 { return uint64(int64(int32(v))) }

// Immediate extractors for the I, S, B and J formats.

func immI(i uint32) int64 { return int64(int32(i)) >> 20 }

func immS(i uint32) int64 {
	return int64(int32(i&0xFE00_0000))>>20 | int64(i>>7&0x1F)
}

func immB(i uint32) int64 {
	return int64(int32(i&0x8000_0000))>>19 |
		int64(i>>7&1)<<11 |
		int64(i>>25&0x3F)<<5 |
		int64(i>>8&0xF)<<1
}

func immJ(i uint32) int64 {
	return int64(int32(i&0x8000_0000))>>11 |
		int64(i&0xF_F000) |
		int64(i>>20&1)<<11 |
		int64(i>>21&0x3FF)<<1
}
