package httpclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 4 << 10
)

// Config del cliente HTTP compartido por los adapters que hablan con el backend.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// RetryCount aplica solo a errores de transporte. Default 0: los POST no son idempotentes.
	RetryCount int
	RetryWait  time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

// New crea un *resty.Client con BaseURL + timeout + headers JSON por defecto.
func New(cfg Config) (*resty.Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errors.New("httpclient: base url required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(base, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if cfg.RetryCount > 0 {
		wait := cfg.RetryWait
		if wait <= 0 {
			wait = 500 * time.Millisecond
		}
		c.SetRetryCount(cfg.RetryCount).
			SetRetryWaitTime(wait).
			SetRetryMaxWaitTime(4 * wait)
	}
	if cfg.Transport != nil {
		c.SetTransport(cfg.Transport)
	}
	return c, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// HTTPStatus permite clasificar el error sin depender de este paquete.
func (e *HTTPError) HTTPStatus() int { return e.StatusCode }

// Detail extrae el texto que manda el servidor. Soporta ProblemDetails
// ({"title","detail"}) y los formatos {"message"} / {"error"}; si el body
// no es JSON se devuelve tal cual.
func (e *HTTPError) Detail() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return ""
	}

	var pd struct {
		Title   string `json:"title"`
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &pd); err != nil {
		return body
	}
	for _, s := range []string{pd.Detail, pd.Message, pd.Error, pd.Title} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// Check convierte una respuesta no-2xx en *HTTPError.
func Check(resp *resty.Response) error {
	if resp == nil {
		return errors.New("httpclient: nil response")
	}
	if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
		return nil
	}

	raw := resp.Body()
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody]
	}
	return &HTTPError{
		StatusCode: resp.StatusCode(),
		Body:       strings.TrimSpace(string(raw)),
	}
}

// DecodeData decodifica un body que puede venir "pelado" o envuelto en {"data": ...}.
// Devuelve found=false si el body está vacío o si data es null.
func DecodeData(raw []byte, out any) (found bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false, nil
	}

	if raw[0] == '{' {
		var env map[string]json.RawMessage
		if err := json.Unmarshal(raw, &env); err != nil {
			return false, fmt.Errorf("httpclient: unmarshal json: %w", err)
		}
		if data, ok := env["data"]; ok && isEnvelope(env) {
			data = bytes.TrimSpace(data)
			if len(data) == 0 || bytes.Equal(data, []byte("null")) {
				return false, nil
			}
			raw = data
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return true, nil
}

// Un sobre tiene "data" y ningún campo propio de un registro: lo que venga al
// lado (count, statusCode, meta...) son metadatos.
func isEnvelope(env map[string]json.RawMessage) bool {
	if _, ok := env["data"]; !ok {
		return false
	}
	_, hasID := env["id"]
	return !hasID
}
