package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"

	"yap-backend/internal/common/logger"
)

const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"}
]`

// gasHeadroomPercent is added on top of the node's gas estimate.
const gasHeadroomPercent = 20

var (
	// ErrNotConfigured means the token address is missing.
	ErrNotConfigured = errors.New("token contract not configured")
	// ErrNoSigner means the client can read balances but holds no signing key.
	ErrNoSigner = errors.New("token client has no signing key")
)

// Backend is the part of ethclient.Client the token client needs.
type Backend interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

type Config struct {
	RPCURL       string
	TokenAddress string
	PrivateKey   string
	ChainID      int64
}

// ERC20Client talks to one ERC-20 contract. Transfers are signed locally with
// a single key; nonce assignment and broadcast are serialized.
type ERC20Client struct {
	backend Backend
	abi     abi.ABI
	token   common.Address
	key     *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int
	closer  func()

	sendMu sync.Mutex

	decMu    sync.Mutex
	decimals *uint8
}

// Dial connects to the RPC endpoint. It returns ErrNotConfigured when no token
// address is set; a missing private key yields a read-only client.
func Dial(ctx context.Context, cfg Config) (*ERC20Client, error) {
	if cfg.TokenAddress == "" {
		return nil, ErrNotConfigured
	}

	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc %s: %w", cfg.RPCURL, err)
	}

	client, err := NewERC20Client(ctx, eth, cfg)
	if err != nil {
		eth.Close()
		return nil, err
	}
	client.closer = eth.Close

	logger.Info().
		Str("rpc_url", cfg.RPCURL).
		Str("token", client.token.Hex()).
		Bool("can_transfer", client.CanTransfer()).
		Str("chain_id", client.chainID.String()).
		Msg("ERC-20 token client initialized")

	return client, nil
}

// NewERC20Client builds a client over an existing backend.
func NewERC20Client(ctx context.Context, backend Backend, cfg Config) (*ERC20Client, error) {
	if !common.IsHexAddress(cfg.TokenAddress) {
		return nil, fmt.Errorf("invalid token address %q", cfg.TokenAddress)
	}

	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}

	c := &ERC20Client{
		backend: backend,
		abi:     parsed,
		token:   common.HexToAddress(cfg.TokenAddress),
	}

	if cfg.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		c.key = key
		c.from = crypto.PubkeyToAddress(key.PublicKey)
	}

	if cfg.ChainID > 0 {
		c.chainID = big.NewInt(cfg.ChainID)
	} else {
		id, err := backend.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch chain id: %w", err)
		}
		c.chainID = id
	}

	return c, nil
}

// CanTransfer reports whether the client holds a signing key.
func (c *ERC20Client) CanTransfer() bool {
	return c != nil && c.key != nil
}

// Sender returns the treasury address transfers are sent from.
func (c *ERC20Client) Sender() common.Address {
	return c.from
}

func (c *ERC20Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// Decimals returns the token's decimals, cached after the first successful call.
func (c *ERC20Client) Decimals(ctx context.Context) (uint8, error) {
	c.decMu.Lock()
	defer c.decMu.Unlock()

	if c.decimals != nil {
		return *c.decimals, nil
	}

	out, err := c.call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	d, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("unexpected decimals type %T", out[0])
	}
	c.decimals = &d
	return d, nil
}

// BalanceOf returns the owner's balance in whole-token units.
func (c *ERC20Client) BalanceOf(ctx context.Context, owner string) (decimal.Decimal, error) {
	if !common.IsHexAddress(owner) {
		return decimal.Zero, fmt.Errorf("invalid owner address %q", owner)
	}
	decimals, err := c.Decimals(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	out, err := c.call(ctx, "balanceOf", common.HexToAddress(owner))
	if err != nil {
		return decimal.Zero, err
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return decimal.Zero, fmt.Errorf("unexpected balance type %T", out[0])
	}
	return FromBaseUnits(balance, decimals), nil
}

// Transfer sends amount tokens to the recipient and waits for the receipt
// until ctx is done. When the transaction was broadcast but not confirmed the
// hash is returned together with the error.
func (c *ERC20Client) Transfer(ctx context.Context, to string, amount decimal.Decimal) (string, error) {
	if !c.CanTransfer() {
		return "", ErrNoSigner
	}
	if !common.IsHexAddress(to) {
		return "", fmt.Errorf("invalid recipient address %q", to)
	}

	decimals, err := c.Decimals(ctx)
	if err != nil {
		return "", err
	}
	units, err := ToBaseUnits(amount, decimals)
	if err != nil {
		return "", err
	}

	data, err := c.abi.Pack("transfer", common.HexToAddress(to), units)
	if err != nil {
		return "", fmt.Errorf("pack transfer: %w", err)
	}

	signed, err := c.send(ctx, data)
	if err != nil {
		return "", err
	}
	hash := signed.Hash().Hex()

	receipt, err := bind.WaitMined(ctx, c.backend, signed)
	if err != nil {
		return hash, fmt.Errorf("wait for transfer %s: %w", hash, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return hash, fmt.Errorf("transfer %s reverted", hash)
	}
	return hash, nil
}

func (c *ERC20Client) send(ctx context.Context, data []byte) (*types.Transaction, error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	nonce, err := c.backend.PendingNonceAt(ctx, c.from)
	if err != nil {
		return nil, fmt.Errorf("fetch nonce: %w", err)
	}
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}
	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{From: c.from, To: &c.token, Data: data})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}
	gas += gas * gasHeadroomPercent / 100

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &c.token,
		Value:    big.NewInt(0),
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return nil, fmt.Errorf("sign transfer: %w", err)
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("send transfer: %w", err)
	}
	return signed, nil
}

func (c *ERC20Client) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	res, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &c.token, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	out, err := c.abi.Unpack(method, res)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty %s result", method)
	}
	return out, nil
}
