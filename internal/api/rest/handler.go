// Package rest принимает запуски плагина от хост-платформы по HTTP.
package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"label-image-tool/internal/domain/entity"
)

// Plugin то, что нужно обработчику от плагина
type Plugin interface {
	Execute(ctx context.Context, props entity.Properties)
	PropertyOptions(appDef entity.AppDefinition) string
}

const maxBodyBytes = 1 << 20

type Handler struct {
	plugin Plugin
	logger *slog.Logger
}

func NewHandler(plugin Plugin, logger *slog.Logger) *Handler {
	return &Handler{
		plugin: plugin,
		logger: logger.With("system", "rest"),
	}
}

// Routes регистрирует маршруты
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /execute", h.execute)
	mux.HandleFunc("GET /properties", h.properties)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// execute отвечает 204 на любой разобранный запуск: результат виден
// только по записи, переменным процесса и логу.
func (h *Handler) execute(w http.ResponseWriter, r *http.Request) {
	var props entity.Properties
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&props); err != nil {
		h.logger.Warn("invalid invocation body", "error", err)
		http.Error(w, "invalid property bag", http.StatusBadRequest)
		return
	}

	// обрыв соединения хоста не прерывает запуск
	h.plugin.Execute(context.WithoutCancel(r.Context()), props)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) properties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	appDef := entity.AppDefinition{ID: q.Get("appId")}
	if v := q.Get("appVersion"); v != "" {
		version, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid appVersion", http.StatusBadRequest)
			return
		}
		appDef.Version = version
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(h.plugin.PropertyOptions(appDef)))
}
