package infra

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// ErrAsistenteRechazo marks a 4xx answer from the sidecar: the request was
// understood and refused, so it does not count against the circuit breaker.
var ErrAsistenteRechazo = errors.New("asistente: solicitud rechazada")

// VentaExtraida is one ledger row read from a photo by the sidecar.
type VentaExtraida struct {
	Fecha          string           `json:"date"`
	NombreProducto string           `json:"productName"`
	Canal          string           `json:"channel"`
	MetodoPago     string           `json:"paymentMethod"`
	MontoTotal     decimal.Decimal  `json:"totalAmount"`
	MontoPagado    *decimal.Decimal `json:"paidAmount,omitempty"`
}

// ProductoReferencia is the catalog excerpt sent along with invoice text so
// the sidecar can answer with catalog ids.
type ProductoReferencia struct {
	ID      string   `json:"id"`
	Nombre  string   `json:"name"`
	Marca   string   `json:"brand"`
	Sabores []string `json:"flavors,omitempty"`
}

// ItemFactura is one invoice line matched to a catalog id by the sidecar.
type ItemFactura struct {
	ProductoID     string           `json:"id"`
	Cantidad       int              `json:"quantity"`
	CostoProveedor *decimal.Decimal `json:"providerCost,omitempty"`
}

// AsistenteClient talks to the sidecar that wraps the generative model.
// Every call goes through the circuit breaker.
type AsistenteClient struct {
	baseURL    string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewAsistenteClient(baseURL string, timeout time.Duration, cb *CircuitBreaker) *AsistenteClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if cb == nil {
		cb = NewCircuitBreaker(DefaultCBConfig())
	}
	return &AsistenteClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		cb:         cb,
	}
}

// Estado exposes the breaker state for the health endpoint.
func (c *AsistenteClient) Estado() CBState { return c.cb.State() }

// Generar returns free text produced from prompt.
func (c *AsistenteClient) Generar(ctx context.Context, prompt string) (string, error) {
	var out struct {
		Texto string `json:"texto"`
	}
	if err := c.post(ctx, "/generar", map[string]string{"prompt": prompt}, &out); err != nil {
		return "", err
	}
	return out.Texto, nil
}

// ExtraerVentas reads the rows of a handwritten sales ledger photo.
func (c *AsistenteClient) ExtraerVentas(ctx context.Context, imagen []byte, mime string) ([]VentaExtraida, error) {
	payload := map[string]string{
		"imagen_base64": base64.StdEncoding.EncodeToString(imagen),
		"mime":          mime,
	}
	var out struct {
		Ventas []VentaExtraida `json:"ventas"`
	}
	if err := c.post(ctx, "/ventas/imagen", payload, &out); err != nil {
		return nil, err
	}
	return out.Ventas, nil
}

// InterpretarFactura matches pasted invoice text against the given catalog.
func (c *AsistenteClient) InterpretarFactura(ctx context.Context, texto string, productos []ProductoReferencia) ([]ItemFactura, error) {
	payload := struct {
		Texto     string               `json:"texto"`
		Productos []ProductoReferencia `json:"productos"`
	}{texto, productos}

	var out struct {
		Items []ItemFactura `json:"items"`
	}
	if err := c.post(ctx, "/compras/factura", payload, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Transcribir forwards an audio clip and returns its transcription.
func (c *AsistenteClient) Transcribir(ctx context.Context, audio []byte, mime string) (string, error) {
	payload := map[string]string{
		"audio_base64": base64.StdEncoding.EncodeToString(audio),
		"mime":         mime,
	}
	var out struct {
		Texto string `json:"texto"`
	}
	if err := c.post(ctx, "/transcribir", payload, &out); err != nil {
		return "", err
	}
	return out.Texto, nil
}

func (c *AsistenteClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("asistente: marshal payload: %w", err)
	}

	var rechazo error
	err = c.cb.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("asistente: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("asistente: sidecar unreachable: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("asistente: sidecar returned %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			rechazo = fmt.Errorf("%w (%d)", ErrAsistenteRechazo, resp.StatusCode)
			return nil
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("asistente: decode response: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return rechazo
}
