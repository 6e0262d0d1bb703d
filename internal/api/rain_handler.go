package api

import (
	"fmt"
	"log/slog"
	"net/http"
)

// RainHandler handles POST /rain, the operator/cron trigger for a
// distribution run.
func (h *HandlerProvider) RainHandler(w http.ResponseWriter, r *http.Request) {
	report, err := h.rain.DistributePool(r.Context(), h.rainPool)
	if err != nil {
		slog.Error("rain run failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to run LSC Rain.")
		return
	}

	if report.Recipients == 0 {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "No active users for LSC Rain.",
		})
		return
	}

	updated := report.Recipients - len(report.Failures)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("LSC Rain complete. %d users updated.", updated),
	})
}

type channelAuthRequest struct {
	SocketID    string `json:"socket_id"    validate:"required"`
	ChannelName string `json:"channel_name" validate:"required"`
}

// ChannelAuthHandler handles POST /broadcast/auth, signing private-channel
// subscription requests.
func (h *HandlerProvider) ChannelAuthHandler(w http.ResponseWriter, r *http.Request) {
	var req channelAuthRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "socket_id and channel_name are required.")
		return
	}

	auth, err := h.channelAuth.AuthorizeSubscription(req.SocketID, req.ChannelName)
	if err != nil {
		slog.Error("channel auth failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to authenticate channel.")
		return
	}

	writeJSON(w, http.StatusOK, auth)
}
