// Package wellknown holds program addresses shared across more than one
// package (the SPL Token programs are consulted by both the walker's
// swap-data scan and the standalone account parser).
package wellknown

import "github.com/Estereg/solana-streamer/pkg/solkey"

// SplTokenProgramID is the classic SPL Token program.
var SplTokenProgramID = solkey.MustFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

// Token2022ProgramID is the Token-2022 program.
var Token2022ProgramID = solkey.MustFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
