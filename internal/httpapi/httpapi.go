// Package httpapi exposes the image builder over HTTP with echo.
//
// Routes, all under /api:
//
//	POST /build             build from a JSON body or a plain-text URL body
//	GET  /dimensions        target grid size for ?width=&height=[&max_edge=]
//	GET  /analyze?url=      dominant colors and their palette labels
//	GET  /palette           list palette entries
//	GET  /match?color=HEX   closest palette label for a color
//	POST /palette/reload    re-read the config file
//
// Failures are JSON {"kind": ..., "error": ...} with a status chosen by
// StatusFor.
package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"

	"github.com/ironsheep/image-builder-mcp/internal/builder"
	"github.com/ironsheep/image-builder-mcp/internal/config"
	"github.com/ironsheep/image-builder-mcp/internal/imaging"
	"github.com/ironsheep/image-builder-mcp/internal/palette"
)

// MaxBodyBytes caps request bodies on POST /build.
const MaxBodyBytes = 64 << 10

var (
	errInvalidRequest = errors.New("invalid request")
	errBodyTooLarge   = fmt.Errorf("%w: body exceeds %d bytes", errInvalidRequest, MaxBodyBytes)
)

// Reloader refreshes the palette from its source.
type Reloader interface {
	Reload() (*config.ReloadResult, error)
}

// Options configures the HTTP API.
type Options struct {
	Builder  *builder.Builder
	Store    *palette.Store
	Reloader Reloader

	// AccessLog receives one line per request. nil disables request logging.
	AccessLog io.Writer
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
	Usage string `json:"usage,omitempty"`
}

// BuildRequest is the JSON body of POST /build.
type BuildRequest struct {
	URL          string           `json:"url"`
	Origin       builder.Location `json:"origin"`
	MaxEdge      int              `json:"max_edge"`
	IncludeRows  *bool            `json:"include_rows"`
	PreviewScale int              `json:"preview_scale"`
}

// BuildResponse is the body of a successful POST /build.
type BuildResponse struct {
	*builder.Result
	Rows    [][]string             `json:"rows,omitempty"`
	Preview *imaging.PreviewResult `json:"preview,omitempty"`
}

type api struct {
	builder  *builder.Builder
	store    *palette.Store
	reloader Reloader
}

// New returns an echo instance with the API routes registered.
func New(opts Options) *echo.Echo {
	a := &api{builder: opts.Builder, store: opts.Store, reloader: opts.Reloader}

	e := echo.New()
	e.HideBanner = true

	if opts.AccessLog != nil {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Format: middleware.DefaultLoggerConfig.Format,
			Output: opts.AccessLog,
		}))
	}
	e.Use(middleware.Recover())

	g := e.Group("/api")
	g.POST("/build", a.build)
	g.GET("/dimensions", a.dimensions)
	g.GET("/analyze", a.analyze)
	g.GET("/palette", a.paletteList)
	g.GET("/match", a.match)
	g.POST("/palette/reload", a.reload)

	return e
}

// StatusFor maps a failure to an HTTP status.
func StatusFor(err error) int {
	if errors.Is(err, errBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, errInvalidRequest) {
		return http.StatusBadRequest
	}
	switch builder.KindOf(err) {
	case builder.KindFetch:
		return http.StatusBadGateway
	case builder.KindDecode:
		return http.StatusUnprocessableEntity
	case builder.KindNoPalette:
		return http.StatusServiceUnavailable
	case builder.KindInvalidInput:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func fail(c echo.Context, err error) error {
	kind := builder.KindOf(err)
	if errors.Is(err, errInvalidRequest) {
		kind = builder.KindInvalidInput
	}
	body := ErrorResponse{Kind: kind.String(), Error: err.Error()}
	if errors.Is(err, builder.ErrUsage) {
		body.Usage = builder.Usage
	}
	return c.JSON(StatusFor(err), &body)
}

func invalid(msg string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errInvalidRequest, msg, err)
	}
	return fmt.Errorf("%w: %s", errInvalidRequest, msg)
}

func (a *api) build(c echo.Context) error {
	req, err := readBuildRequest(c)
	if err != nil {
		return fail(c, err)
	}
	if req.MaxEdge < 0 {
		return fail(c, invalid("max_edge must be positive", nil))
	}
	if req.PreviewScale < 0 || req.PreviewScale > imaging.MaxPreviewScale {
		return fail(c, invalid(fmt.Sprintf("preview_scale must be between 0 and %d", imaging.MaxPreviewScale), nil))
	}

	res, err := a.builder.Build(c.Request().Context(), builder.Request{
		URL:     req.URL,
		Origin:  req.Origin,
		MaxEdge: req.MaxEdge,
	})
	if err != nil {
		return fail(c, err)
	}

	out := &BuildResponse{Result: res}
	if req.IncludeRows == nil || *req.IncludeRows {
		out.Rows = res.Grid.Rows()
	}
	if req.PreviewScale > 0 && res.Grid.Len() > 0 {
		preview, err := res.Preview(req.PreviewScale)
		if err != nil {
			return fail(c, invalid("preview_scale", err))
		}
		out.Preview = preview
	}
	return c.JSON(http.StatusOK, out)
}

// readBuildRequest accepts a JSON BuildRequest, or any other body as a bare
// URL. Query parameters x, y, z and max_edge apply to plain-text bodies.
func readBuildRequest(c echo.Context) (*BuildRequest, error) {
	r := c.Request()
	req := &BuildRequest{}

	data, err := io.ReadAll(http.MaxBytesReader(c.Response(), r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, invalid("failed to read body", err)
	}

	if strings.HasPrefix(r.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		r.Body = io.NopCloser(bytes.NewReader(data))
		if err := c.Bind(req); err != nil {
			return nil, invalid("malformed JSON body", err)
		}
		return req, nil
	}

	req.URL = strings.TrimSpace(string(data))

	ints := []struct {
		name string
		dst  *int
	}{
		{"x", &req.Origin.X},
		{"y", &req.Origin.Y},
		{"z", &req.Origin.Z},
		{"max_edge", &req.MaxEdge},
		{"preview_scale", &req.PreviewScale},
	}
	for _, p := range ints {
		if err := queryInt(c, p.name, p.dst); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func queryInt(c echo.Context, name string, dst *int) error {
	v := c.QueryParam(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return invalid("query parameter "+name, err)
	}
	*dst = n
	return nil
}

func (a *api) dimensions(c echo.Context) error {
	var width, height int
	maxEdge := a.builder.MaxEdge()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"width", &width}, {"height", &height}, {"max_edge", &maxEdge}} {
		if err := queryInt(c, p.name, p.dst); err != nil {
			return fail(c, err)
		}
	}

	dims, err := imaging.TargetDimensions(width, height, maxEdge)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dims)
}

func (a *api) analyze(c echo.Context) error {
	count := 5
	if err := queryInt(c, "count", &count); err != nil {
		return fail(c, err)
	}
	res, err := a.builder.Analyze(c.Request().Context(), c.QueryParam("url"), count)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (a *api) paletteList(c echo.Context) error {
	p := a.store.Load()
	return c.JSON(http.StatusOK, echo.Map{
		"count":   p.Len(),
		"entries": p.Describe(),
	})
}

func (a *api) match(c echo.Context) error {
	col, err := palette.ParseHex(c.QueryParam("color"))
	if err != nil {
		return fail(c, invalid("color", err))
	}
	m, err := a.store.Load().Match(col)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (a *api) reload(c echo.Context) error {
	if a.reloader == nil {
		return c.JSON(http.StatusNotImplemented, &ErrorResponse{
			Kind:  builder.KindUnknown.String(),
			Error: "palette reload is not configured",
		})
	}
	res, err := a.reloader.Reload()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
