package walker

import (
	"github.com/Estereg/solana-streamer/pkg/byteutil"
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/protocol"
	"github.com/Estereg/solana-streamer/pkg/solkey"
	"github.com/Estereg/solana-streamer/pkg/wellknown"
)

// SplTokenProgramID is the classic SPL Token program, the owner of the
// Transfer/TransferChecked instructions the swap-data scan looks for.
var SplTokenProgramID = wellknown.SplTokenProgramID

const (
	splDiscTransfer        = 3
	splDiscTransferChecked = 12
)

// extractSwapData scans siblings from scanFrom looking for the first two
// SPL-Token transfers (classic Transfer or TransferChecked), treating the
// first as the "from" leg and the second as the "to" leg of a swap (§4.G.g:
// "inspecting SPL-Token-style transfers inside subsequent inner
// instructions until the amounts ... are found"). Token-account-to-mint
// resolution is outside this pipeline's data model, so FromMint/ToMint are
// left zero; only the amounts and user are populated.
func extractSwapData(siblings []CompiledInstruction, scanFrom int, allAccounts []solkey.Pubkey) *event.SwapData {
	var amounts []uint64
	var authority solkey.Pubkey

	for p := scanFrom; p < len(siblings); p++ {
		inst := siblings[p]
		pid, inRange := accountAt(allAccounts, inst.ProgramIDIndex)
		if !inRange || pid != SplTokenProgramID {
			continue
		}
		if len(inst.Data) == 0 {
			continue
		}

		switch inst.Data[0] {
		case splDiscTransfer:
			amount, ok := byteutil.ReadU64LE(inst.Data, 1)
			if !ok {
				continue
			}
			amounts = append(amounts, amount)
			accs := protocol.PadAccounts(allAccounts, inst.AccountIndices)
			if len(accs) >= 3 && authority == solkey.Zero {
				authority = accs[2]
			}

		case splDiscTransferChecked:
			amount, ok := byteutil.ReadU64LE(inst.Data, 1)
			if !ok {
				continue
			}
			amounts = append(amounts, amount)
			accs := protocol.PadAccounts(allAccounts, inst.AccountIndices)
			if len(accs) >= 4 && authority == solkey.Zero {
				authority = accs[3]
			}
		}

		if len(amounts) >= 2 {
			break
		}
	}

	if len(amounts) < 2 {
		return nil
	}
	return &event.SwapData{
		FromAmount: amounts[0],
		ToAmount:   amounts[1],
		User:       authority,
	}
}
