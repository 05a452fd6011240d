package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database.max_conns (%d) must be >= min_conns (%d)",
			c.Database.MaxConns, c.Database.MinConns)
	}

	if c.Ledger.TxMaxRetries < 0 {
		return fmt.Errorf("ledger.tx_max_retries must be >= 0 (got %d)", c.Ledger.TxMaxRetries)
	}
	if c.Ledger.TxRetryBaseDelay <= 0 {
		return fmt.Errorf("ledger.tx_retry_base_delay must be > 0 (got %v)", c.Ledger.TxRetryBaseDelay)
	}

	return nil
}
