package tokenloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	jsoniter "github.com/json-iterator/go"

	"wallet_networks/internal/app/port"
	"wallet_networks/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TokenFileLoader reads per-chain token watchlists named <chainId>.json from a directory.
type TokenFileLoader struct {
	tokenDirPath string
	registry     port.NetworkRegistry
	logger       port.Logger
}

// NewTokenLoader creates a new TokenFileLoader.
func NewTokenLoader(tokenDirPath string, registry port.NetworkRegistry, logger port.Logger) *TokenFileLoader {
	return &TokenFileLoader{
		tokenDirPath: tokenDirPath,
		registry:     registry,
		logger:       logger,
	}
}

// GetTokensByChainID returns the valid tokens of every known chain, keyed by chain id.
// A missing directory yields an empty result. Unreadable files, files for unknown chains and
// tokens with a mismatched chain id or malformed address are skipped with a warning.
func (l *TokenFileLoader) GetTokensByChainID() (map[string][]entity.TokenInfo, error) {
	tokensByChainID := make(map[string][]entity.TokenInfo)

	files, err := os.ReadDir(l.tokenDirPath)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("Token directory not found, no tokens will be loaded", "path", l.tokenDirPath)
		return tokensByChainID, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token directory %s: %w", l.tokenDirPath, err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".json") {
			continue
		}

		chainID := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		network, ok := l.registry.NetworkByChainID(chainID)
		if !ok {
			l.logger.Warn("Token file found for an unknown chain, skipping", "file", file.Name())
			continue
		}

		filePath := filepath.Join(l.tokenDirPath, file.Name())
		data, err := os.ReadFile(filePath)
		if err != nil {
			l.logger.Warn("Failed to read token file, skipping file", "path", filePath, "error", err)
			continue
		}

		var tokensInFile []entity.TokenInfo
		if err := json.Unmarshal(data, &tokensInFile); err != nil {
			l.logger.Warn("Failed to unmarshal tokens from file, skipping file", "path", filePath, "error", err)
			continue
		}

		valid := make([]entity.TokenInfo, 0, len(tokensInFile))
		for _, token := range tokensInFile {
			if token.ChainID != "" && token.ChainID != chainID {
				l.logger.Warn("Token has mismatched chain id, skipping token",
					"file", filePath, "symbol", token.Symbol, "tokenChainId", token.ChainID, "expectedChainId", chainID)
				continue
			}
			if !common.IsHexAddress(token.Address) {
				l.logger.Warn("Token has malformed address, skipping token", "file", filePath, "symbol", token.Symbol, "address", token.Address)
				continue
			}
			token.ChainID = chainID
			valid = append(valid, token)
		}

		if len(valid) > 0 {
			tokensByChainID[chainID] = append(tokensByChainID[chainID], valid...)
			l.logger.Info("Loaded tokens for network", "network", network.Name, "chainId", chainID, "count", len(valid))
		}
	}

	return tokensByChainID, nil
}

// Addresses flattens a token list into addresses, sorted for stable batching.
func Addresses(tokens []entity.TokenInfo) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Address)
	}
	sort.Strings(out)
	return out
}
