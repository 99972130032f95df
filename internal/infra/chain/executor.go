package chain

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"
	"time"

	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/pkg/errs"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	ErrMinterRoleRevoked = errs.New("signer no longer holds the minter role")
	ErrReceiptTimeout    = errs.New("timed out waiting for transaction receipt")
	ErrTxReverted        = errs.New("mint transaction reverted on chain")
)

// Backend is the slice of the RPC client the executor needs.
type Backend interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// MintExecutor signs and submits mint transactions against the token
// contract, then waits for the configured number of confirmations.
type MintExecutor struct {
	client         Backend
	privateKey     *ecdsa.PrivateKey
	signer         common.Address
	chainID        *big.Int
	token          common.Address
	decimals       int
	confirmations  uint64
	receiptTimeout time.Duration
}

func NewMintExecutor(client Backend, cfg config.ChainConfig) (*MintExecutor, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.MinterPrivateKey, "0x"))
	if err != nil {
		return nil, errs.Wrap(err, "failed to parse minter private key")
	}

	return &MintExecutor{
		client:         client,
		privateKey:     key,
		signer:         crypto.PubkeyToAddress(key.PublicKey),
		chainID:        big.NewInt(cfg.ChainID),
		token:          common.HexToAddress(cfg.TokenContract),
		decimals:       cfg.TokenDecimals,
		confirmations:  cfg.Confirmations,
		receiptTimeout: cfg.ReceiptTimeout,
	}, nil
}

func Dial(rpcURL string) (*ethclient.Client, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errs.Wrap(err, "failed to dial chain RPC")
	}
	return client, nil
}

// ScaleAmount converts whole TZS into token base units.
func ScaleAmount(amountTZS int64, decimals int) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return new(big.Int).Mul(big.NewInt(amountTZS), scale)
}

// Signer returns the minter account address derived from the signing key.
func (e *MintExecutor) Signer() common.Address {
	return e.signer
}

// HasMinterRole asks the contract whether the signer can still mint. The
// check runs before every submission because the role can be revoked at any
// time by the token's admin.
func (e *MintExecutor) HasMinterRole(ctx context.Context) (bool, error) {
	input, err := tokenABI.Pack("hasRole", minterRole, e.signer)
	if err != nil {
		return false, errs.Wrap(err, "failed to pack hasRole call")
	}

	out, err := e.client.CallContract(ctx, ethereum.CallMsg{To: &e.token, Data: input}, nil)
	if err != nil {
		return false, errs.Wrap(err, "hasRole call failed")
	}

	results, err := tokenABI.Unpack("hasRole", out)
	if err != nil {
		return false, errs.Wrap(err, "failed to unpack hasRole result")
	}
	has, ok := results[0].(bool)
	if !ok {
		return false, errs.New("unexpected hasRole result type")
	}
	return has, nil
}

// Mint submits a mint for amountTZS (scaled to base units) to the wallet and
// returns the transaction hash without waiting for inclusion.
func (e *MintExecutor) Mint(ctx context.Context, wallet string, amountTZS int64) (string, error) {
	has, err := e.HasMinterRole(ctx)
	if err != nil {
		return "", err
	}
	if !has {
		return "", ErrMinterRoleRevoked
	}

	to := common.HexToAddress(wallet)
	amount := ScaleAmount(amountTZS, e.decimals)

	input, err := tokenABI.Pack("mint", to, amount)
	if err != nil {
		return "", errs.Wrap(err, "failed to pack mint call")
	}

	nonce, err := e.client.PendingNonceAt(ctx, e.signer)
	if err != nil {
		return "", errs.Wrap(err, "failed to fetch pending nonce")
	}

	gasPrice, err := e.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", errs.Wrap(err, "failed to fetch gas price")
	}

	gasLimit, err := e.client.EstimateGas(ctx, ethereum.CallMsg{
		From: e.signer,
		To:   &e.token,
		Data: input,
	})
	if err != nil {
		return "", errs.Wrap(err, "failed to estimate gas")
	}

	tx := types.NewTransaction(nonce, e.token, big.NewInt(0), gasLimit, gasPrice, input)
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(e.chainID), e.privateKey)
	if err != nil {
		return "", errs.Wrap(err, "failed to sign mint transaction")
	}

	if err := e.client.SendTransaction(ctx, signedTx); err != nil {
		return "", errs.Wrap(err, "failed to send mint transaction")
	}

	return signedTx.Hash().Hex(), nil
}

// WaitMined polls for the receipt until the transaction has the configured
// confirmations. A reverted receipt is a hard failure.
func (e *MintExecutor) WaitMined(ctx context.Context, txHash string) (*types.Receipt, error) {
	hash := common.HexToHash(txHash)

	deadline := time.NewTimer(e.receiptTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		receipt, err := e.client.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return receipt, ErrTxReverted
			}
			confirmed, err := e.isConfirmed(ctx, receipt)
			if err != nil {
				return nil, err
			}
			if confirmed {
				return receipt, nil
			}
		} else if err != nil && !errs.Is(err, ethereum.NotFound) {
			return nil, errs.Wrap(err, "failed to fetch transaction receipt")
		}

		select {
		case <-ctx.Done():
			return nil, errs.Wrap(ctx.Err(), "mint wait cancelled")
		case <-deadline.C:
			return nil, ErrReceiptTimeout
		case <-ticker.C:
		}
	}
}

func (e *MintExecutor) isConfirmed(ctx context.Context, receipt *types.Receipt) (bool, error) {
	if e.confirmations <= 1 {
		return true, nil
	}
	head, err := e.client.BlockNumber(ctx)
	if err != nil {
		return false, errs.Wrap(err, "failed to fetch head block number")
	}
	return head >= receipt.BlockNumber.Uint64()+e.confirmations-1, nil
}

// TotalSupply reads the token's current total supply in base units.
func (e *MintExecutor) TotalSupply(ctx context.Context) (*big.Int, error) {
	input, err := tokenABI.Pack("totalSupply")
	if err != nil {
		return nil, errs.Wrap(err, "failed to pack totalSupply call")
	}

	out, err := e.client.CallContract(ctx, ethereum.CallMsg{To: &e.token, Data: input}, nil)
	if err != nil {
		return nil, errs.Wrap(err, "totalSupply call failed")
	}

	results, err := tokenABI.Unpack("totalSupply", out)
	if err != nil {
		return nil, errs.Wrap(err, "failed to unpack totalSupply result")
	}
	supply, ok := results[0].(*big.Int)
	if !ok {
		return nil, errs.New("unexpected totalSupply result type")
	}
	return supply, nil
}
