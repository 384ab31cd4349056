// Package rpc bridges to the native vault backend. The backend owns all
// vault crypto and storage; this side only issues named commands with
// JSON-serializable arguments and decodes results or structured errors.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Backend command names.
const (
	CmdSwitchDatabase             = "switch_database"
	CmdIsMasterPasswordConfigured = "is_master_password_configured"
	CmdSetMasterPassword          = "set_master_password"
	CmdUnlock                     = "unlock"
	CmdUnlockWithBiometrics       = "unlock_with_biometrics"
	CmdLock                       = "lock"
	CmdGetPasswordItems           = "get_password_items"
	CmdDeletePasswordItem         = "delete_password_item"
	CmdUpdatePasswordTags         = "update_password_tags"
	CmdGetButtons                 = "get_buttons"
	CmdExportVaultBackend         = "export_vault_backend"
	CmdExportVault                = "export_vault"
	CmdRestoreVaultBackend        = "restore_vault_backend"
	CmdImportVault                = "import_vault"
	CmdRestoreVaultSnapshot       = "restore_vault_snapshot"
	CmdElevatedCopy               = "elevated_copy"
	CmdCheckFileExists            = "check_file_exists"
	CmdApplyClipboardPolicy       = "apply_clipboard_policy"
	CmdGetClipboardCapabilities   = "get_clipboard_capabilities"
	CmdClearClipboard             = "clear_clipboard"
	CmdListDevices                = "list_devices"
	CmdRemoveDevice               = "remove_device"
	CmdRevokeAllDevices           = "revoke_all_devices"
	CmdGetActivityLog             = "get_activity_log"
	CmdClearActivityLog           = "clear_activity_log"
	CmdGetSecurityReport          = "get_security_report"
	CmdWipeVaultDatabase          = "wipe_vault_database"
	CmdListVaults                 = "list_vaults"
	CmdPickOpenFile               = "pick_open_file"
	CmdPickSaveFile               = "pick_save_file"
)

// CodeCancelled is the structured error code the backend uses when the user
// dismissed a dialog mid-call.
const CodeCancelled = "cancelled"

// Error is a structured error returned by the backend.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend error %s: %s", e.Code, e.Message)
}

// Bridge issues named commands against the vault backend.
type Bridge interface {
	Call(ctx context.Context, method string, args, result any) error
}

// Client is an HTTP Bridge posting JSON envelopes to the backend process.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Client against the given backend base URL.
func NewClient(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

type callEnvelope struct {
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

type replyEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  *Error          `json:"error"`
}

// Call invokes a backend command. A non-nil result is populated from the
// reply; a structured backend failure is returned as *Error.
func (c *Client) Call(ctx context.Context, method string, args, result any) error {
	body, err := json.Marshal(callEnvelope{Method: method, Params: args})
	if err != nil {
		return fmt.Errorf("encoding %s args: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rpc", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("calling %s: backend returned status %d", method, resp.StatusCode)
	}

	var reply replyEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return fmt.Errorf("decoding %s reply: %w", method, err)
	}
	if reply.Error != nil {
		return reply.Error
	}
	if result != nil && len(reply.Result) > 0 {
		if err := json.Unmarshal(reply.Result, result); err != nil {
			return fmt.Errorf("decoding %s result: %w", method, err)
		}
	}
	return nil
}
