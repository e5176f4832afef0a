// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the back-office key check and ID generation.

# Admin Keys

The back-office key is an HMAC-SHA256 of AdminScope under ADMIN_KEY_SALT:

	adminKey := auth.GenerateAdminKey(auth.AdminScope, salt)
	err := auth.ValidateAdminKey(auth.AdminScope, adminKey, salt)

The key is URL-safe base64 encoded without padding. It is deterministic, so
nothing is stored; rotating the salt revokes it. Run the server with
-print-admin-key to obtain it.

# ID Generation

Random hex IDs for ballot receipts:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

Client addresses are hashed before they reach the logs:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
