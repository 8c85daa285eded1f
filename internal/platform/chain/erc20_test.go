package chain

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tokenAddr     = "0x1000000000000000000000000000000000000001"
	recipientAddr = "0x52908400098527886e0f7030069857d2e4169ee7"
)

type fakeBackend struct {
	mu            sync.Mutex
	decimals      uint8
	balance       *big.Int
	receiptStatus uint64
	sendErr       error
	decimalsCalls int
	nonce         uint64
	sent          []*types.Transaction
}

func (f *fakeBackend) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	parsed := mustABI()
	switch {
	case bytes.HasPrefix(call.Data, parsed.Methods["decimals"].ID):
		f.mu.Lock()
		f.decimalsCalls++
		f.mu.Unlock()
		return parsed.Methods["decimals"].Outputs.Pack(f.decimals)
	case bytes.HasPrefix(call.Data, parsed.Methods["balanceOf"].ID):
		return parsed.Methods["balanceOf"].Outputs.Pack(f.balance)
	}
	return nil, errors.New("unexpected call")
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x1}, nil
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nonce, nil
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 50_000, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	f.nonce++
	return nil
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	return &types.Receipt{Status: f.receiptStatus, TxHash: hash}, nil
}

func (f *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	return big.NewInt(1115), nil
}

func newTestClient(t *testing.T, backend *fakeBackend, withKey bool) *ERC20Client {
	t.Helper()
	cfg := Config{TokenAddress: tokenAddr}
	if withKey {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		cfg.PrivateKey = common.Bytes2Hex(crypto.FromECDSA(key))
	}
	c, err := NewERC20Client(context.Background(), backend, cfg)
	require.NoError(t, err)
	return c
}

func TestERC20Client_Transfer(t *testing.T) {
	backend := &fakeBackend{decimals: 18, receiptStatus: types.ReceiptStatusSuccessful}
	c := newTestClient(t, backend, true)

	hash, err := c.Transfer(context.Background(), recipientAddr, decimal.NewFromInt(1))
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)

	tx := backend.sent[0]
	assert.Equal(t, tx.Hash().Hex(), hash)
	assert.Equal(t, common.HexToAddress(tokenAddr), *tx.To())
	assert.Equal(t, uint64(60_000), tx.Gas())
	assert.Equal(t, big.NewInt(1115), tx.ChainId())

	args, err := mustABI().Methods["transfer"].Inputs.Unpack(tx.Data()[4:])
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(recipientAddr), args[0])
	assert.Equal(t, "1000000000000000000", args[1].(*big.Int).String())

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1115)), tx)
	require.NoError(t, err)
	assert.Equal(t, c.Sender(), sender)
}

func TestERC20Client_TransferReverted(t *testing.T) {
	backend := &fakeBackend{decimals: 18, receiptStatus: types.ReceiptStatusFailed}
	c := newTestClient(t, backend, true)

	hash, err := c.Transfer(context.Background(), recipientAddr, decimal.NewFromInt(1))
	require.Error(t, err)
	assert.NotEmpty(t, hash)
	assert.Contains(t, err.Error(), "reverted")
}

func TestERC20Client_TransferSendError(t *testing.T) {
	backend := &fakeBackend{decimals: 18, sendErr: errors.New("insufficient funds for gas")}
	c := newTestClient(t, backend, true)

	hash, err := c.Transfer(context.Background(), recipientAddr, decimal.NewFromInt(1))
	require.Error(t, err)
	assert.Empty(t, hash)
}

func TestERC20Client_ReadOnly(t *testing.T) {
	backend := &fakeBackend{decimals: 6, balance: big.NewInt(2_500_000)}
	c := newTestClient(t, backend, false)

	assert.False(t, c.CanTransfer())
	_, err := c.Transfer(context.Background(), recipientAddr, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrNoSigner)

	balance, err := c.BalanceOf(context.Background(), recipientAddr)
	require.NoError(t, err)
	assert.Equal(t, "2.5", balance.String())

	_, err = c.BalanceOf(context.Background(), recipientAddr)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.decimalsCalls)
}

func TestERC20Client_InvalidInput(t *testing.T) {
	_, err := NewERC20Client(context.Background(), &fakeBackend{}, Config{TokenAddress: "nope"})
	assert.Error(t, err)

	_, err = NewERC20Client(context.Background(), &fakeBackend{}, Config{TokenAddress: tokenAddr, PrivateKey: "zz"})
	assert.Error(t, err)

	c := newTestClient(t, &fakeBackend{decimals: 18}, true)
	_, err = c.Transfer(context.Background(), "not-an-address", decimal.NewFromInt(1))
	assert.Error(t, err)
}

func TestDial_NotConfigured(t *testing.T) {
	_, err := Dial(context.Background(), Config{RPCURL: "http://127.0.0.1:0"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
