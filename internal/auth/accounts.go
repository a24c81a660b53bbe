// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

package auth

import (
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/phototeka/phototeka/internal/logging"
	"github.com/phototeka/phototeka/internal/models"
)

// LoadAccounts reads the credential file: a JSON array of account records.
// Usernames must be unique after case folding, since authentication matches
// them case-insensitively.
func LoadAccounts(path string) ([]models.Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	var accounts []models.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("failed to parse accounts file %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(accounts))
	for i, acc := range accounts {
		if acc.Username == "" {
			return nil, fmt.Errorf("account %d: username is required", i)
		}
		if !models.IsValidRole(acc.Role) {
			return nil, fmt.Errorf("account %q: invalid role %q", acc.Username, acc.Role)
		}
		key := strings.ToLower(acc.Username)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("account %q: duplicate username", acc.Username)
		}
		seen[key] = struct{}{}
	}

	logging.Info().
		Str("path", path).
		Int("accounts", len(accounts)).
		Msg("Accounts loaded")

	return accounts, nil
}
