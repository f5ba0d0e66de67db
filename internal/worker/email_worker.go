package worker

// Sends plain-text emails, currently the monthly partner settlement.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// EmailPayload is the job envelope sent to QueueEmail.
type EmailPayload struct {
	Para   string `json:"para"`
	Asunto string `json:"asunto"`
	Cuerpo string `json:"cuerpo"`
}

// Remitente sends email. *infra.Mailer satisfies it.
type Remitente interface {
	Configurado() bool
	SendTexto(to, subject, body string) error
}

type EmailWorker struct {
	mailer Remitente
}

func NewEmailWorker(mailer Remitente) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var p EmailPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Permanente(fmt.Errorf("email_worker: invalid payload: %w", err))
	}
	if p.Para == "" {
		log.Warn().Msg("email_worker: destinatario vacío, se descarta")
		return nil
	}
	if !w.mailer.Configurado() {
		log.Warn().Str("to", p.Para).Msg("email_worker: SMTP no configurado, se descarta")
		return nil
	}

	if err := w.mailer.SendTexto(p.Para, p.Asunto, p.Cuerpo); err != nil {
		return err
	}
	log.Info().Str("to", p.Para).Msg("email_worker: email enviado")
	return nil
}
