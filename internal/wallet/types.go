package wallet

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrUnsupported       = errors.New("wallet: unsupported wallet kind")
	ErrHandshakeFailed   = errors.New("wallet: handshake failed")
	ErrNotFound          = errors.New("wallet: no saved wallet")
	ErrInvalidTransition = errors.New("wallet: invalid state transition")
	ErrInvalidLanguage   = errors.New("wallet: invalid language code")
)

// Kind identifies a supported wallet provider. The empty Kind means none.
type Kind string

const (
	KindNone          Kind = ""
	KindMetaMask      Kind = "metamask"
	KindTrust         Kind = "trust"
	KindPhantom       Kind = "phantom"
	KindWalletConnect Kind = "walletconnect"
)

type KindInfo struct {
	ID          Kind   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Network     string `json:"network"`
}

var kinds = []KindInfo{
	{ID: KindMetaMask, Name: "MetaMask", Description: "Connect to your MetaMask wallet", Network: "ethereum"},
	{ID: KindTrust, Name: "Trust Wallet", Description: "Connect using Trust Wallet", Network: "multi-chain"},
	{ID: KindPhantom, Name: "Phantom", Description: "Connect your Solana wallet with Phantom", Network: "solana"},
	{ID: KindWalletConnect, Name: "WalletConnect", Description: "Connect using WalletConnect protocol", Network: "mobile"},
}

// Kinds lists the supported wallet providers in display order.
func Kinds() []KindInfo {
	return append([]KindInfo(nil), kinds...)
}

func (k Kind) Info() (KindInfo, bool) {
	for _, info := range kinds {
		if info.ID == k {
			return info, true
		}
	}
	return KindInfo{}, false
}

func (k Kind) Valid() bool {
	_, ok := k.Info()
	return ok
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return KindNone, fmt.Errorf("%w: %q", ErrUnsupported, s)
	}
	return k, nil
}

type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
)

type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

type TxStatus string

const (
	TxCompleted TxStatus = "completed"
	TxPending   TxStatus = "pending"
	TxFailed    TxStatus = "failed"
)

// Transaction is a synthetic display-only history entry.
type Transaction struct {
	ID                  string          `json:"id"`
	Direction           Direction       `json:"direction"`
	Amount              decimal.Decimal `json:"amount"`
	Timestamp           time.Time       `json:"timestamp"`
	USDValue            decimal.Decimal `json:"usdValue"`
	CounterpartyAddress string          `json:"counterpartyAddress"`
	Status              TxStatus        `json:"status"`
}

// Session is a point-in-time copy of the wallet state.
//
// Status connected implies Address != nil and Kind != KindNone; status
// disconnected implies Address == nil.
type Session struct {
	Kind         Kind                       `json:"walletKind"`
	Address      *string                    `json:"address"`
	Status       Status                     `json:"status"`
	Balances     map[string]decimal.Decimal `json:"balances"`
	Transactions []Transaction              `json:"transactions"`
	LastError    string                     `json:"lastError,omitempty"`
}

func (s Session) Connected() bool { return s.Status == StatusConnected }

func (s Session) clone() Session {
	out := s
	if s.Address != nil {
		addr := *s.Address
		out.Address = &addr
	}
	out.Balances = cloneBalances(s.Balances)
	out.Transactions = append([]Transaction(nil), s.Transactions...)
	return out
}
