//go:build !force32 && (amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x || wasm)

package c25519

// limbs is the limb layout backing Scalar on 64-bit targets
type limbs = scalar56

const backendName = "56x5"
