// Package rv64 is a small RV64IM interpreter: the execution core behind
// the kernel's privilege-switch engine. It runs user-mode machine code
// against a system bus and reports every trap back to the caller instead
// of vectoring to in-simulator handler code, because the machine-mode
// side of this system is native Go.
//
// The implemented surface is what the platform's user programs need:
// the RV64I base instruction set, the M extension, FENCE (as a no-op),
// ECALL/EBREAK, WFI, and the Zicsr operations. Compressed instructions,
// atomics and floating point are not implemented and decode as illegal
// instructions, as on the rv64im hardware this models.
package rv64
