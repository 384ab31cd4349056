package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/keyforge/keyforge-go/internal/rpc"
)

// knownCommands is the allowlist of backend commands that may be forwarded.
var knownCommands = map[string]bool{
	rpc.CmdSwitchDatabase:             true,
	rpc.CmdIsMasterPasswordConfigured: true,
	rpc.CmdSetMasterPassword:          true,
	rpc.CmdUnlock:                     true,
	rpc.CmdUnlockWithBiometrics:       true,
	rpc.CmdLock:                       true,
	rpc.CmdGetPasswordItems:           true,
	rpc.CmdDeletePasswordItem:         true,
	rpc.CmdUpdatePasswordTags:         true,
	rpc.CmdGetButtons:                 true,
	rpc.CmdExportVaultBackend:         true,
	rpc.CmdExportVault:                true,
	rpc.CmdRestoreVaultBackend:        true,
	rpc.CmdImportVault:                true,
	rpc.CmdRestoreVaultSnapshot:       true,
	rpc.CmdElevatedCopy:               true,
	rpc.CmdCheckFileExists:            true,
	rpc.CmdApplyClipboardPolicy:       true,
	rpc.CmdGetClipboardCapabilities:   true,
	rpc.CmdClearClipboard:             true,
	rpc.CmdListDevices:                true,
	rpc.CmdRemoveDevice:               true,
	rpc.CmdRevokeAllDevices:           true,
	rpc.CmdGetActivityLog:             true,
	rpc.CmdClearActivityLog:           true,
	rpc.CmdGetSecurityReport:          true,
	rpc.CmdWipeVaultDatabase:          true,
	rpc.CmdListVaults:                 true,
	rpc.CmdPickOpenFile:               true,
	rpc.CmdPickSaveFile:               true,
}

// BackendHandler forwards user actions to the native vault backend. The
// backend owns all vault crypto and storage; this side only relays commands.
type BackendHandler struct {
	bridge rpc.Bridge
}

// NewBackendHandler creates a new BackendHandler.
func NewBackendHandler(bridge rpc.Bridge) *BackendHandler {
	return &BackendHandler{bridge: bridge}
}

// HandleCommand handles POST /api/v1/backend/{command} requests.
func (h *BackendHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	command := chi.URLParam(r, "command")
	if !knownCommands[command] {
		writeJSON(w, http.StatusNotFound, errorResponse("unknown backend command"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 10<<20) // 10MB

	// Commands without arguments may arrive with an empty body.
	var params json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil && !errors.Is(err, io.EOF) {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	var result json.RawMessage
	if err := h.bridge.Call(r.Context(), command, params, &result); err != nil {
		var rpcErr *rpc.Error
		if errors.As(err, &rpcErr) {
			writeJSON(w, http.StatusBadGateway, map[string]string{
				"code":  rpcErr.Code,
				"error": rpcErr.Message,
			})
			return
		}
		writeJSON(w, http.StatusBadGateway, errorResponse("backend unavailable"))
		return
	}

	if len(result) == 0 {
		result = json.RawMessage("null")
	}
	writeJSON(w, http.StatusOK, map[string]json.RawMessage{"result": result})
}
