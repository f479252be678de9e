//go:build force32 || !(amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x || wasm)

package c25519

// limbs is the limb layout backing Scalar on 32-bit targets, or anywhere
// when built with the force32 tag
type limbs = scalar29

const backendName = "29x9"
