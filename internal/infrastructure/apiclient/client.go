package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jhoicas/nexus-inventory/internal/application/auth"
	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/pkg/logger"
)

const maxBodyBytes = 4 << 20

// Client realiza las llamadas autenticadas al API de inventario y normaliza los errores.
// No reintenta: la política de reintentos es del caller.
type Client struct {
	baseURL    string
	tokens     auth.TokenSource
	httpClient *http.Client
	log        *logger.Logger
	metrics    *Metrics
}

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el http.Client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger asigna el logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics asigna las métricas prometheus.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New construye el cliente. El transporte está instrumentado con otelhttp para propagar la traza al servidor.
func New(baseURL string, tokens auth.TokenSource, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do envía method path con in serializado como JSON (si no es nil) y decodifica la respuesta en out.
// Un 204 no decodifica nada. Status no 2xx -> *domain.RequestFailedError; sin respuesta -> *domain.NetworkError.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("apiclient: serializar body de %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("apiclient: crear request %s %s: %w", method, path, err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")
	if c.tokens != nil {
		if tok, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	route := routeOf(path)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(method, route, 0, time.Since(start))
		c.log.WithContext(ctx).Warn().Err(err).Str("method", method).Str("path", path).Msg("apiclient: sin respuesta")
		return &domain.NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	elapsed := time.Since(start)
	c.metrics.observe(method, route, resp.StatusCode, elapsed)
	c.log.WithContext(ctx).Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", elapsed).
		Msg("apiclient: request")
	if err != nil {
		return &domain.NetworkError{Method: method, Path: path, Err: fmt.Errorf("leer respuesta: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.RequestFailedError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, resp.Header.Get("content-type"), raw),
		}
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("apiclient: %s %s: respuesta vacía con status %d", method, path, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("apiclient: decodificar respuesta de %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage extrae el texto legible del cuerpo de error.
// JSON con "message" string -> ese texto; otro JSON -> el cuerpo serializado; texto -> el texto;
// vacío -> la frase del status HTTP.
func errorMessage(status int, contentType string, raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	msg := ""
	if strings.Contains(contentType, "json") || (contentType == "" && json.Valid(trimmed) && len(trimmed) > 0) {
		var envelope any
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			msg = http.StatusText(status)
		} else if obj, ok := envelope.(map[string]any); ok && isString(obj["message"]) {
			msg = obj["message"].(string)
		} else {
			var compact bytes.Buffer
			if err := json.Compact(&compact, trimmed); err == nil {
				msg = compact.String()
			} else {
				msg = string(trimmed)
			}
		}
	} else {
		msg = string(trimmed)
		if msg == "" {
			msg = http.StatusText(status)
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("Request failed with %d", status)
	}
	return msg
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}
