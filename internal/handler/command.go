package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/listbot/internal/command"
	"github.com/vyrodovalexey/listbot/internal/model"
	"github.com/vyrodovalexey/listbot/internal/store"
)

// Version is the application version.
const Version = "1.0.0"

// maxBodyBytes caps inbound command payloads.
const maxBodyBytes = 1 << 16

var errUnsupportedBody = errors.New("unsupported request body")

// CommandHandler receives chat commands and replies with list results.
type CommandHandler struct {
	executor *command.Executor
	store    store.ListStore
	logger   *zap.Logger
}

// NewCommandHandler creates a new CommandHandler instance.
func NewCommandHandler(executor *command.Executor, s store.ListStore, logger *zap.Logger) *CommandHandler {
	return &CommandHandler{
		executor: executor,
		store:    s,
		logger:   logger,
	}
}

// RegisterRoutes registers the webhook and probe routes with the router.
func (h *CommandHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/ready", h.ReadyCheck).Methods(http.MethodGet)
	router.HandleFunc("/", h.HandleCommand).Methods(http.MethodPost)
}

// HealthCheck handles GET /health requests.
func (h *CommandHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:  "healthy",
		Version: Version,
	}
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(response))
}

// ReadyCheck handles GET /ready requests by pinging the store.
func (h *CommandHandler) ReadyCheck(w http.ResponseWriter, r *http.Request) {
	if pinger, ok := h.store.(store.Pinger); ok {
		if err := pinger.Ping(r.Context()); err != nil {
			h.logger.Warn("store not ready", zap.Error(err))
			h.writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{Status: "unavailable"})
			return
		}
	}

	h.writeJSON(w, http.StatusOK, ReadyResponse{Status: "ready"})
}

// HandleCommand handles POST / requests. Every parsed command is answered
// with 200 and an in-channel text reply, including invalid commands and
// store failures.
func (h *CommandHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeRequest(w, r)
	if err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trigger := req.Trigger()
	cmd := command.Parse(command.StripTrigger(req.Text, trigger))

	result := h.executor.Execute(r.Context(), command.Request{
		Command:   cmd,
		ChannelID: req.ChannelID,
		UserName:  req.UserName,
		Trigger:   trigger,
	})

	h.logger.Debug("command handled",
		zap.String("command", cmd.Kind.String()),
		zap.String("outcome", string(result.Outcome)),
		zap.String("channel_id", req.ChannelID),
		zap.String("user_id", req.UserID),
	)

	h.writeJSON(w, http.StatusOK, model.NewCommandResponse(result.Text))
}

// decodeRequest reads the command fields from a form or JSON body.
func (h *CommandHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*model.CommandRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, err
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/json":
		var req model.CommandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &req, nil
	case "", "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return &model.CommandRequest{
			Command:     r.PostFormValue("command"),
			TriggerWord: r.PostFormValue("trigger_word"),
			Text:        r.PostFormValue("text"),
			ChannelID:   r.PostFormValue("channel_id"),
			UserID:      r.PostFormValue("user_id"),
			UserName:    r.PostFormValue("user_name"),
		}, nil
	default:
		return nil, errUnsupportedBody
	}
}

// writeJSON writes a JSON response with the given status code.
func (h *CommandHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError writes an error response with the given status code and message.
func (h *CommandHandler) writeError(w http.ResponseWriter, status int, message string) {
	response := model.ErrorResponse{
		Code:    status,
		Message: message,
	}
	h.writeJSON(w, status, response)
}

// NotFound answers unmatched routes with a generic JSON 404.
func (h *CommandHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("route not found",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	h.writeError(w, http.StatusNotFound, "Not Found")
}
