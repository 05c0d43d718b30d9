package herdapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"farm-animals/internal/domain/animals"
	"farm-animals/internal/platform/httpclient"
	"farm-animals/internal/ports/session"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("herd api client not configured")

// Headers hacia el backend de rodeo.
const (
	HeaderFarmID    = "X-Farm-Id"
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderRequestID = "X-Request-Id"
)

const (
	pathAnimals       = "/v1/animals"
	pathAnimal        = "/v1/animals/{id}"
	pathWeight        = "/v1/animals/{id}/weight"
	pathMovements     = "/v1/animals/{id}/movements"
	pathBreeds        = "/v1/breeds"
	pathCategories    = "/v1/categories"
	pathPaddocks      = "/v1/paddocks"
	pathBatches       = "/v1/batches"
	pathMovementTypes = "/v1/movement-types"
)

// Client implementa animals.Backend contra el API de rodeo.
// La sesión (token, granja, usuario) se toma del contexto de cada llamada.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

func NewClient(cfg httpclient.Config, log *zap.Logger) (*Client, error) {
	hc, err := httpclient.New(cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{http: hc, log: log.Named("herdapi")}
	hc.OnBeforeRequest(c.sessionHeaders)
	return c, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil
}

func (c *Client) sessionHeaders(_ *resty.Client, r *resty.Request) error {
	ctx := r.Context()
	if s, ok := session.FromContext(ctx); ok {
		if s.Token != "" {
			r.SetAuthToken(s.Token)
		}
		setIf(r, HeaderFarmID, s.FarmID)
		setIf(r, HeaderUserID, s.UserID)
		setIf(r, HeaderUserEmail, s.Email)
	}
	id := chimw.GetReqID(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	r.SetHeader(HeaderRequestID, id)
	return nil
}

func setIf(r *resty.Request, header, v string) {
	if v = strings.TrimSpace(v); v != "" {
		r.SetHeader(header, v)
	}
}

func (c *Client) ListAnimals(ctx context.Context, farmID string) ([]animals.Record, error) {
	var out []animals.Record
	if _, err := c.do(ctx, http.MethodGet, pathAnimals, call{query: farmQuery(farmID), out: &out}); err != nil {
		return nil, err
	}
	if out == nil {
		out = []animals.Record{}
	}
	return out, nil
}

// GetAnimal devuelve (nil, nil) ante 404 o cuerpo vacío.
func (c *Client) GetAnimal(ctx context.Context, id string) (*animals.Record, error) {
	var rec animals.Record
	found, err := c.do(ctx, http.MethodGet, pathAnimal, call{id: id, out: &rec})
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && he.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &rec, nil
}

// CreateAnimal acepta la respuesta pelada o en {data: ...}.
func (c *Client) CreateAnimal(ctx context.Context, dto animals.AnimalDTO) (animals.Record, error) {
	var rec animals.Record
	if _, err := c.do(ctx, http.MethodPost, pathAnimals, call{body: dto, out: &rec}); err != nil {
		return animals.Record{}, err
	}
	if rec.ID.IsZero() {
		c.log.Warn("create response without id")
	}
	return rec, nil
}

func (c *Client) UpdateAnimal(ctx context.Context, id string, dto animals.AnimalDTO) (animals.Record, error) {
	var rec animals.Record
	found, err := c.do(ctx, http.MethodPut, pathAnimal, call{id: id, body: dto, out: &rec})
	if err != nil {
		return animals.Record{}, err
	}
	if !found || rec.ID.IsZero() {
		rec.ID = animals.ID(id)
	}
	if !found {
		rec.Name = dto.Name
	}
	return rec, nil
}

func (c *Client) DeleteAnimal(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, pathAnimal, call{id: id})
	return err
}

func (c *Client) UpdateWeight(ctx context.Context, id string, w animals.WeightObservation) error {
	_, err := c.do(ctx, http.MethodPut, pathWeight, call{id: id, body: w})
	return err
}

func (c *Client) RegisterMovement(ctx context.Context, id string, m animals.MovementEvent) error {
	_, err := c.do(ctx, http.MethodPost, pathMovements, call{id: id, body: m})
	return err
}

// Datos de referencia.

func (c *Client) Breeds(ctx context.Context) ([]animals.Reference, error) {
	return c.references(ctx, pathBreeds, nil)
}

func (c *Client) Categories(ctx context.Context) ([]animals.Reference, error) {
	return c.references(ctx, pathCategories, nil)
}

func (c *Client) Paddocks(ctx context.Context, farmID string) ([]animals.Reference, error) {
	return c.references(ctx, pathPaddocks, farmQuery(farmID))
}

func (c *Client) Batches(ctx context.Context, farmID string) ([]animals.Reference, error) {
	return c.references(ctx, pathBatches, farmQuery(farmID))
}

func (c *Client) MovementTypes(ctx context.Context) ([]animals.Reference, error) {
	return c.references(ctx, pathMovementTypes, nil)
}

func (c *Client) references(ctx context.Context, path string, query map[string]string) ([]animals.Reference, error) {
	var out []animals.Reference
	if _, err := c.do(ctx, http.MethodGet, path, call{query: query, out: &out}); err != nil {
		return nil, err
	}
	if out == nil {
		out = []animals.Reference{}
	}
	return out, nil
}

type call struct {
	id    string
	query map[string]string
	body  any
	out   any
}

// do ejecuta la llamada y decodifica la respuesta. found=false si el cuerpo vino vacío.
func (c *Client) do(ctx context.Context, method, path string, cl call) (bool, error) {
	if !c.IsConfigured() {
		return false, ErrNotConfigured
	}

	req := c.http.R().SetContext(ctx)
	if cl.id != "" {
		req.SetPathParam("id", strings.TrimSpace(cl.id))
	}
	if len(cl.query) > 0 {
		req.SetQueryParams(cl.query)
	}
	if cl.body != nil {
		req.SetBody(cl.body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.Debug("herd api transport error", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return false, fmt.Errorf("herdapi %s %s: %w", method, path, err)
	}
	if err := httpclient.Check(resp); err != nil {
		c.log.Debug("herd api non-2xx", zap.String("method", method), zap.String("path", path),
			zap.Int("status", resp.StatusCode()))
		return false, fmt.Errorf("herdapi %s %s: %w", method, path, err)
	}
	if cl.out == nil {
		return true, nil
	}
	found, err := httpclient.DecodeData(resp.Body(), cl.out)
	if err != nil {
		return false, fmt.Errorf("herdapi %s %s: %w", method, path, err)
	}
	return found, nil
}

func farmQuery(farmID string) map[string]string {
	if farmID = strings.TrimSpace(farmID); farmID == "" {
		return nil
	}
	return map[string]string{"farmId": farmID}
}
