package web

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/tab2sql/internal/core"
	"github.com/JonMunkholm/tab2sql/internal/logging"
	"github.com/JonMunkholm/tab2sql/internal/web/templates"
)

// errBadRequest marks bodies, forms and options that could not be read.
var errBadRequest = errors.New("invalid request")

const (
	// multipartOverhead is allowed on top of the input limit for form framing.
	multipartOverhead = 1 << 20

	// multipartMemory is kept in memory before parts spill to temp files.
	multipartMemory = 8 << 20

	defaultPreviewRows = 100
)

// handleIndex renders the conversion form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	req := s.service.DefaultRequest()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Index(formOptions(req, "")).Render(r.Context(), w)
}

// handleHealth reports liveness and load capacity.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"database": s.service.HasDatabase(),
		"loads":    s.service.LimiterStatus(),
	})
}

// handleAPIParse returns the ParseResult as JSON.
func (s *Server) handleAPIParse(w http.ResponseWriter, r *http.Request) {
	body, req, err := s.decode(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer body.Close()

	result, err := s.service.Parse(r.Context(), body, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleAPISQL returns the SQL script as text. With download=true the
// script is sent as an attachment named after the table.
func (s *Server) handleAPISQL(w http.ResponseWriter, r *http.Request) {
	body, req, err := s.decode(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer body.Close()

	result, script, err := s.service.Convert(r.Context(), body, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	download, err := boolOption(r, "download", false)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if download {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", req.Table+".sql"))
	}
	w.Header().Set("X-Row-Count", strconv.Itoa(len(result.Rows)))
	io.WriteString(w, script)
}

// handleAPILoad recreates the table in the configured database.
func (s *Server) handleAPILoad(w http.ResponseWriter, r *http.Request) {
	body, req, err := s.decode(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer body.Close()

	useCopy, err := boolOption(r, "copy", s.cfg.Load.UseCopy)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.service.Load(r.Context(), body, req, useCopy)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.WithFields(r.Context(), "load_id", res.ID).Info("load request completed", "table", res.Table, "rows", res.Rows)
	writeJSON(w, http.StatusCreated, res)
}

// handlePreview renders the inferred table and SQL for the form.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	body, req, err := s.decode(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer body.Close()

	result, script, err := s.service.Convert(r.Context(), body, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Preview(templates.PreviewData{
		Result:  result,
		SQL:     script,
		Table:   req.Table,
		MaxRows: parseIntParam(r, "limit", defaultPreviewRows),
		Form:    formOptions(req, r.PostFormValue("text")),
	}).Render(r.Context(), w)
}

// decode returns the input text reader and the options of the request.
// Input is the multipart "file" field, else the "text" form field, else the
// raw body. Options come from the query string or form fields.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (io.ReadCloser, core.Request, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Parse.MaxInputSize+multipartOverhead)

	body, err := requestBody(r)
	if err != nil {
		return nil, core.Request{}, err
	}

	req, err := s.request(r)
	if err != nil {
		body.Close()
		return nil, core.Request{}, err
	}
	return body, req, nil
}

func requestBody(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		file, _, err := r.FormFile("file")
		switch {
		case err == nil:
			return file, nil
		case errors.Is(err, http.ErrMissingFile):
			return io.NopCloser(strings.NewReader(r.PostFormValue("text"))), nil
		default:
			return nil, fmt.Errorf("%w: %w", errBadRequest, err)
		}

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		return io.NopCloser(strings.NewReader(r.PostFormValue("text"))), nil

	default:
		// Only the query string is parsed; the body stays unread.
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		return r.Body, nil
	}
}

// request overlays the request's options on the configured defaults.
func (s *Server) request(r *http.Request) (core.Request, error) {
	req := s.service.DefaultRequest()

	var err error
	if req.Parse.FirstLineHeaders, err = boolOption(r, "headers", req.Parse.FirstLineHeaders); err != nil {
		return req, err
	}
	if req.Parse.ConvertNullSentinel, err = boolOption(r, "null", req.Parse.ConvertNullSentinel); err != nil {
		return req, err
	}
	if req.Parse.ConvertEmptyStringSentinel, err = boolOption(r, "emptystring", req.Parse.ConvertEmptyStringSentinel); err != nil {
		return req, err
	}
	if table := strings.TrimSpace(lastValue(r, "table")); table != "" {
		req.Table = table
	}
	return req, nil
}

// boolOption reads a boolean option, falling back to def when absent.
// "on" is accepted for HTML checkboxes.
func boolOption(r *http.Request, name string, def bool) (bool, error) {
	v := strings.TrimSpace(lastValue(r, name))
	switch strings.ToLower(v) {
	case "":
		return def, nil
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%w: option %s=%q is not a boolean", errBadRequest, name, v)
	}
	return b, nil
}

// lastValue returns the last value of a form or query field. The HTML form
// sends a hidden "false" before each checkbox, so the last value wins.
func lastValue(r *http.Request, name string) string {
	values := r.Form[name]
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

// parseIntParam parses a positive integer query parameter with a default.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

func formOptions(req core.Request, text string) templates.FormOptions {
	return templates.FormOptions{
		FirstLineHeaders:           req.Parse.FirstLineHeaders,
		ConvertNullSentinel:        req.Parse.ConvertNullSentinel,
		ConvertEmptyStringSentinel: req.Parse.ConvertEmptyStringSentinel,
		Table:                      req.Table,
		Text:                       text,
	}
}
