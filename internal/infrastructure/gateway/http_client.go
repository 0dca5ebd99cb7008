// Package gateway implementa el cliente HTTP del gateway de mensajería.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/notify"
	"github.com/Check-karim/apartement-management-system-sub000/pkg/config"
)

var _ notify.MessageGateway = (*HTTPMessageGateway)(nil)

// HTTPMessageGateway implementa notify.MessageGateway contra un gateway de
// mensajería HTTP con autenticación Bearer. Usa net/http de la stdlib; no
// requiere librerías de terceros.
type HTTPMessageGateway struct {
	url        string
	token      string
	httpClient *http.Client
}

// NewHTTPMessageGateway construye el cliente con la configuración de notificaciones.
func NewHTTPMessageGateway(cfg config.NotifyConfig) *HTTPMessageGateway {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPMessageGateway{
		url:        cfg.GatewayURL,
		token:      cfg.APIToken,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// gatewayResponse respuesta JSON del gateway.
type gatewayResponse struct {
	Accepted bool   `json:"accepted"`
	Error    string `json:"error"`
}

// Send entrega el mensaje al gateway. Un error de red o un status no-2xx se
// devuelve como error; un rechazo del gateway (accepted=false) llega en el
// resultado con su texto.
func (g *HTTPMessageGateway) Send(ctx context.Context, req notify.SendRequest) (*notify.SendResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal send request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gateway HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var gr gatewayResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	return &notify.SendResult{Accepted: gr.Accepted, Error: gr.Error}, nil
}
