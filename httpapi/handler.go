// Package httpapi exposes a Formatter over HTTP with echo.
//
// # Routes
//
//	GET  /formats                                  {"default": "atom", "formats": ["atom", ...]}
//	GET  /format?date=2019-06-24&format=day&format=year
//	POST /format  {"date": "2019-06-24", "format": ["day", "year"]}
//
// Both /format routes answer {"result": ...} where result is a string for a
// single format, an object (in request order) for several, and null when the
// date is absent. In GET requests an absent date is a missing date parameter;
// in POST bodies it is a missing or null "date".
//
// # Errors
//
//	invalid date input       400
//	invalid format selector  400
//	unknown format           404
package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rickchristie/datefmt"
)

// Handler serves format requests.
type Handler struct {
	formatter *datefmt.Formatter
}

// NewHandler creates a Handler for f.
func NewHandler(f *datefmt.Formatter) *Handler {
	return &Handler{formatter: f}
}

// Register mounts the routes on g, e.g. an *echo.Echo or an *echo.Group.
func (h *Handler) Register(g Router) {
	g.GET("/formats", h.ListFormats)
	g.GET("/format", h.FormatQuery)
	g.POST("/format", h.FormatBody)
}

// Router is the subset of *echo.Echo and *echo.Group used by Register.
type Router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// FormatsResponse is the body of GET /formats.
type FormatsResponse struct {
	Default string   `json:"default"`
	Formats []string `json:"formats"`
}

// FormatRequest is the body of POST /format. Both fields keep their JSON
// shape: a number date is rejected as invalid input, a number format as an
// invalid selector.
type FormatRequest struct {
	Date   any `json:"date"`
	Format any `json:"format"`
}

// FormatResponse is the body of both /format routes.
type FormatResponse struct {
	Result *datefmt.Result `json:"result"`
}

// ListFormats handles GET /formats.
func (h *Handler) ListFormats(c echo.Context) error {
	return c.JSON(http.StatusOK, FormatsResponse{
		Default: h.formatter.DefaultFormat(),
		Formats: h.formatter.Formats(),
	})
}

// FormatQuery handles GET /format.
func (h *Handler) FormatQuery(c echo.Context) error {
	params := c.QueryParams()

	var date any
	if values, ok := params["date"]; ok && len(values) > 0 {
		date = values[0]
	}

	var selector any
	switch formats := params["format"]; len(formats) {
	case 0:
	case 1:
		selector = formats[0]
	default:
		selector = formats
	}

	return h.respond(c, date, selector)
}

// FormatBody handles POST /format.
func (h *Handler) FormatBody(c echo.Context) error {
	var req FormatRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return h.respond(c, req.Date, req.Format)
}

func (h *Handler) respond(c echo.Context, date, selector any) error {
	res, err := h.formatter.Format(date, selector)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, FormatResponse{Result: res})
}

func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, datefmt.ErrUnknownFormat):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, datefmt.ErrInvalidInput),
		errors.Is(err, datefmt.ErrInvalidFormatSelector):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
