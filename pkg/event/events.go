package event

import "github.com/Estereg/solana-streamer/pkg/solkey"

// --- compute budget (Common) ---

type ComputeBudgetSetComputeUnitLimitEvent struct {
	Metadata Metadata
	Units    uint32
}

func (e *ComputeBudgetSetComputeUnitLimitEvent) Meta() *Metadata { return &e.Metadata }

type ComputeBudgetSetComputeUnitPriceEvent struct {
	Metadata      Metadata
	MicroLamports uint64
}

func (e *ComputeBudgetSetComputeUnitPriceEvent) Meta() *Metadata { return &e.Metadata }

// --- PumpFun ---

type PumpFunCreateTokenEvent struct {
	Metadata     Metadata
	Name         string
	Symbol       string
	URI          string
	Mint         solkey.Pubkey
	BondingCurve solkey.Pubkey
	User         solkey.Pubkey
	Creator      solkey.Pubkey
}

func (e *PumpFunCreateTokenEvent) Meta() *Metadata { return &e.Metadata }

type PumpFunCreateV2TokenEvent struct {
	Metadata     Metadata
	Name         string
	Symbol       string
	URI          string
	Mint         solkey.Pubkey
	BondingCurve solkey.Pubkey
	User         solkey.Pubkey
	Creator      solkey.Pubkey
	Decimals     uint8
}

func (e *PumpFunCreateV2TokenEvent) Meta() *Metadata { return &e.Metadata }

type PumpFunTradeEvent struct {
	Metadata             Metadata
	Mint                 solkey.Pubkey
	User                 solkey.Pubkey
	Creator              solkey.Pubkey
	SolAmount            uint64
	TokenAmount          uint64
	IsBuy                bool
	VirtualSolReserves   uint64
	VirtualTokenReserves uint64

	// Filled by the post-processor (§4.I), not by the wire parser.
	IsDevCreateTokenTrade bool
	IsBot                 bool
}

func (e *PumpFunTradeEvent) Meta() *Metadata { return &e.Metadata }

type PumpFunMigrateEvent struct {
	Metadata Metadata
	Mint     solkey.Pubkey
	Pool     solkey.Pubkey
	User     solkey.Pubkey
}

func (e *PumpFunMigrateEvent) Meta() *Metadata { return &e.Metadata }

type PumpFunCompleteEvent struct {
	Metadata  Metadata
	Mint      solkey.Pubkey
	User      solkey.Pubkey
	Timestamp int64
}

func (e *PumpFunCompleteEvent) Meta() *Metadata { return &e.Metadata }

// --- PumpSwap ---

type PumpSwapCreatePoolEvent struct {
	Metadata      Metadata
	Pool          solkey.Pubkey
	BaseMint      solkey.Pubkey
	QuoteMint     solkey.Pubkey
	Creator       solkey.Pubkey
	BaseAmountIn  uint64
	QuoteAmountIn uint64
}

func (e *PumpSwapCreatePoolEvent) Meta() *Metadata { return &e.Metadata }

type PumpSwapBuyEvent struct {
	Metadata      Metadata
	Pool          solkey.Pubkey
	User          solkey.Pubkey
	BaseMint      solkey.Pubkey
	QuoteMint     solkey.Pubkey
	BaseAmountOut uint64
	QuoteAmountIn uint64
}

func (e *PumpSwapBuyEvent) Meta() *Metadata { return &e.Metadata }

type PumpSwapBuyExactQuoteInEvent struct {
	Metadata      Metadata
	Pool          solkey.Pubkey
	User          solkey.Pubkey
	BaseMint      solkey.Pubkey
	QuoteMint     solkey.Pubkey
	QuoteAmountIn uint64
	BaseAmountOut uint64
}

func (e *PumpSwapBuyExactQuoteInEvent) Meta() *Metadata { return &e.Metadata }

type PumpSwapSellEvent struct {
	Metadata       Metadata
	Pool           solkey.Pubkey
	User           solkey.Pubkey
	BaseMint       solkey.Pubkey
	QuoteMint      solkey.Pubkey
	BaseAmountIn   uint64
	QuoteAmountOut uint64
}

func (e *PumpSwapSellEvent) Meta() *Metadata { return &e.Metadata }

type PumpSwapDepositEvent struct {
	Metadata         Metadata
	Pool             solkey.Pubkey
	User             solkey.Pubkey
	BaseAmountIn     uint64
	QuoteAmountIn    uint64
	LpTokenAmountOut uint64
}

func (e *PumpSwapDepositEvent) Meta() *Metadata { return &e.Metadata }

type PumpSwapWithdrawEvent struct {
	Metadata        Metadata
	Pool            solkey.Pubkey
	User            solkey.Pubkey
	LpTokenAmountIn uint64
	BaseAmountOut   uint64
	QuoteAmountOut  uint64
}

func (e *PumpSwapWithdrawEvent) Meta() *Metadata { return &e.Metadata }

// --- Bonk ---

type BonkPoolCreateEvent struct {
	Metadata  Metadata
	Pool      solkey.Pubkey
	BaseMint  solkey.Pubkey
	QuoteMint solkey.Pubkey
	Creator   solkey.Pubkey
}

func (e *BonkPoolCreateEvent) Meta() *Metadata { return &e.Metadata }

type BonkTradeEvent struct {
	Metadata  Metadata
	Pool      solkey.Pubkey
	User      solkey.Pubkey
	Creator   solkey.Pubkey
	AmountIn  uint64
	AmountOut uint64
	IsBuy     bool

	IsDevCreateTokenTrade bool
	IsBot                 bool
}

func (e *BonkTradeEvent) Meta() *Metadata { return &e.Metadata }

// --- Raydium AMM V4 (legacy, 1-byte discriminator) ---

type RaydiumAmmV4SwapBaseInEvent struct {
	Metadata               Metadata
	AmmID                  solkey.Pubkey
	UserSourceTokenAccount solkey.Pubkey
	UserDestTokenAccount   solkey.Pubkey
	UserOwner              solkey.Pubkey
	AmountIn               uint64
	MinimumAmountOut       uint64
}

func (e *RaydiumAmmV4SwapBaseInEvent) Meta() *Metadata { return &e.Metadata }

type RaydiumAmmV4SwapBaseOutEvent struct {
	Metadata               Metadata
	AmmID                  solkey.Pubkey
	UserSourceTokenAccount solkey.Pubkey
	UserDestTokenAccount   solkey.Pubkey
	UserOwner              solkey.Pubkey
	MaxAmountIn            uint64
	AmountOut              uint64
}

func (e *RaydiumAmmV4SwapBaseOutEvent) Meta() *Metadata { return &e.Metadata }

type RaydiumAmmV4DepositEvent struct {
	Metadata      Metadata
	AmmID         solkey.Pubkey
	UserOwner     solkey.Pubkey
	MaxCoinAmount uint64
	MaxPcAmount   uint64
	BaseSide      uint64
}

func (e *RaydiumAmmV4DepositEvent) Meta() *Metadata { return &e.Metadata }

type RaydiumAmmV4WithdrawEvent struct {
	Metadata  Metadata
	AmmID     solkey.Pubkey
	UserOwner solkey.Pubkey
	Amount    uint64
}

func (e *RaydiumAmmV4WithdrawEvent) Meta() *Metadata { return &e.Metadata }

type RaydiumAmmV4Initialize2Event struct {
	Metadata  Metadata
	AmmID     solkey.Pubkey
	UserOwner solkey.Pubkey
	CoinMint  solkey.Pubkey
	PcMint    solkey.Pubkey
	Nonce     uint8
	OpenTime  uint64
}

func (e *RaydiumAmmV4Initialize2Event) Meta() *Metadata { return &e.Metadata }

// --- Raydium CPMM ---

type RaydiumCpmmSwapEvent struct {
	Metadata            Metadata
	PoolState           solkey.Pubkey
	InputTokenAccount   solkey.Pubkey
	OutputTokenAccount  solkey.Pubkey
	Payer               solkey.Pubkey
	AmountIn            uint64
	MinimumAmountOut    uint64
}

func (e *RaydiumCpmmSwapEvent) Meta() *Metadata { return &e.Metadata }

type RaydiumCpmmWithdrawEvent struct {
	Metadata            Metadata
	PoolState           solkey.Pubkey
	Owner               solkey.Pubkey
	LpTokenAmount       uint64
	MinimumToken0Amount uint64
	MinimumToken1Amount uint64
}

func (e *RaydiumCpmmWithdrawEvent) Meta() *Metadata { return &e.Metadata }

type RaydiumCpmmDepositEvent struct {
	Metadata            Metadata
	PoolState           solkey.Pubkey
	Owner               solkey.Pubkey
	LpTokenAmount       uint64
	MaximumToken0Amount uint64
	MaximumToken1Amount uint64
}

func (e *RaydiumCpmmDepositEvent) Meta() *Metadata { return &e.Metadata }

type RaydiumCpmmInitializeEvent struct {
	Metadata  Metadata
	PoolState solkey.Pubkey
	Creator   solkey.Pubkey
	Token0Mint solkey.Pubkey
	Token1Mint solkey.Pubkey
	OpenTime  uint64
}

func (e *RaydiumCpmmInitializeEvent) Meta() *Metadata { return &e.Metadata }

// --- Raydium CLMM ---

type RaydiumClmmSwapEvent struct {
	Metadata              Metadata
	PoolState             solkey.Pubkey
	Payer                 solkey.Pubkey
	AmountIn              uint64
	AmountOutMinimum      uint64
	SqrtPriceLimitX64Lo   uint64
	SqrtPriceLimitX64Hi   uint64
}

func (e *RaydiumClmmSwapEvent) Meta() *Metadata { return &e.Metadata }

type RaydiumClmmSwapV2Event struct {
	Metadata            Metadata
	PoolState           solkey.Pubkey
	Payer               solkey.Pubkey
	AmountIn            uint64
	AmountOutMinimum    uint64
	SqrtPriceLimitX64Lo uint64
	SqrtPriceLimitX64Hi uint64
	IsBaseInput         bool
}

func (e *RaydiumClmmSwapV2Event) Meta() *Metadata { return &e.Metadata }

type RaydiumClmmIncreaseLiquidityEvent struct {
	Metadata    Metadata
	PoolState   solkey.Pubkey
	Owner       solkey.Pubkey
	LiquidityLo uint64
	LiquidityHi uint64
	AmountMax0  uint64
	AmountMax1  uint64
}

func (e *RaydiumClmmIncreaseLiquidityEvent) Meta() *Metadata { return &e.Metadata }

type RaydiumClmmDecreaseLiquidityEvent struct {
	Metadata    Metadata
	PoolState   solkey.Pubkey
	Owner       solkey.Pubkey
	LiquidityLo uint64
	LiquidityHi uint64
	AmountMin0  uint64
	AmountMin1  uint64
}

func (e *RaydiumClmmDecreaseLiquidityEvent) Meta() *Metadata { return &e.Metadata }

// --- Meteora DLMM ---

type MeteoraDlmmSwapEvent struct {
	Metadata     Metadata
	LbPair       solkey.Pubkey
	User         solkey.Pubkey
	AmountIn     uint64
	MinAmountOut uint64
}

func (e *MeteoraDlmmSwapEvent) Meta() *Metadata { return &e.Metadata }

type MeteoraDlmmAddLiquidityEvent struct {
	Metadata Metadata
	LbPair   solkey.Pubkey
	User     solkey.Pubkey
	AmountX  uint64
	AmountY  uint64
}

func (e *MeteoraDlmmAddLiquidityEvent) Meta() *Metadata { return &e.Metadata }

type MeteoraDlmmRemoveLiquidityEvent struct {
	Metadata Metadata
	LbPair   solkey.Pubkey
	User     solkey.Pubkey
	AmountX  uint64
	AmountY  uint64
}

func (e *MeteoraDlmmRemoveLiquidityEvent) Meta() *Metadata { return &e.Metadata }

type MeteoraDlmmInitializeLbPairEvent struct {
	Metadata    Metadata
	LbPair      solkey.Pubkey
	TokenMintX  solkey.Pubkey
	TokenMintY  solkey.Pubkey
	BinStep     uint16
}

func (e *MeteoraDlmmInitializeLbPairEvent) Meta() *Metadata { return &e.Metadata }

// --- Account snapshots (§4.J) ---

type NonceAccountEvent struct {
	Metadata                        Metadata
	Account                         solkey.Pubkey
	Authority                       solkey.Pubkey
	Nonce                           solkey.Pubkey
	LamportsPerSignatureFeeCalc     uint64
}

func (e *NonceAccountEvent) Meta() *Metadata { return &e.Metadata }

type TokenInfoEvent struct {
	Metadata        Metadata
	Mint            solkey.Pubkey
	MintAuthority   *solkey.Pubkey
	Supply          uint64
	Decimals        uint8
	IsInitialized   bool
	FreezeAuthority *solkey.Pubkey
	Token2022       bool
}

func (e *TokenInfoEvent) Meta() *Metadata { return &e.Metadata }

type TokenAccountEvent struct {
	Metadata  Metadata
	Account   solkey.Pubkey
	Mint      solkey.Pubkey
	Owner     solkey.Pubkey
	Amount    uint64
	State     uint8
	Token2022 bool
}

func (e *TokenAccountEvent) Meta() *Metadata { return &e.Metadata }
