package worker

// email_worker.go
// Processes welcome-email jobs from QueueEmail via SMTP.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AnnCris/ROYDENT/internal/infra"

	"github.com/rs/zerolog/log"
)

// BienvenidaPayload is the job envelope for welcome emails.
type BienvenidaPayload struct {
	Destinatario   string `json:"destinatario"`
	NombreCompleto string `json:"nombre_completo"`
	NombreUsuario  string `json:"nombre_usuario"`
}

// EmailWorker sends queued emails through the circuit-breaker-guarded mailer.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends the welcome email. A returned error means the pool should
// retry (or dead-letter after too many attempts).
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload BienvenidaPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // malformed payloads never become sendable; do not retry
	}
	if payload.Destinatario == "" {
		log.Warn().Msg("email_worker: empty destinatario — skipping")
		return nil
	}

	if err := w.mailer.SendBienvenida(payload.Destinatario, payload.NombreCompleto, payload.NombreUsuario); err != nil {
		return fmt.Errorf("enviar bienvenida a %s: %w", payload.Destinatario, err)
	}
	log.Info().Str("to", payload.Destinatario).Msg("email_worker: bienvenida enviada")
	return nil
}
