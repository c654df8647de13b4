package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/jalad-shrimali/cdr-billing/desk"
	"github.com/jalad-shrimali/cdr-billing/metrics"
)

// Handler serves the HTTP API over a single desk.
type Handler struct {
	desk      *desk.Desk
	uploadDir string
	exportDir string
	maxUpload int64
}

// Options holds the upload/export directories and the upload size limit.
// Zero values fall back to the defaults.
type Options struct {
	UploadDir      string
	ExportDir      string
	MaxUploadBytes int64
}

// New returns a Handler for d. It panics on a nil desk.
func New(d *desk.Desk, opts Options) *Handler {
	if d == nil {
		panic("handlers.New: nil desk")
	}
	h := &Handler{desk: d, uploadDir: opts.UploadDir, exportDir: opts.ExportDir, maxUpload: opts.MaxUploadBytes}
	if h.uploadDir == "" {
		h.uploadDir = "uploads"
	}
	if h.exportDir == "" {
		h.exportDir = "filtered"
	}
	if h.maxUpload <= 0 {
		h.maxUpload = 32 << 20
	}
	return h
}

// NewRouter mounts every route and the shared middleware.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(HTTPLogger)
	r.Use(middleware.Recoverer)

	r.Post("/upload", h.Upload)

	r.Route("/records", func(r chi.Router) {
		r.Get("/", h.Records)
		r.Get("/search", h.Search)
		r.Post("/sort", h.Sort)
	})
	r.Post("/export", h.Export)
	r.Handle("/download/*", http.StripPrefix("/download/", http.FileServer(http.Dir(h.exportDir))))

	r.Route("/cities", func(r chi.Router) {
		r.Get("/", h.Cities)
		r.Post("/", h.InsertCity)
		r.Delete("/", h.DeleteCity)
		r.Get("/display", h.DisplayCities)
		r.Get("/middle", h.MiddleCity)
		r.Get("/count", h.CityCount)
	})

	r.Handle("/metrics", metrics.Handler())
	return r
}

/* ──────────── CDR endpoints ──────────── */

// Upload stores the multipart "file" under the upload dir and loads it.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	file, hdr, err := r.FormFile("file")
	if err != nil {
		fail(w, r, http.StatusBadRequest, "request.invalid", "multipart field \"file\" is required", err.Error())
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		fail(w, r, http.StatusInternalServerError, "io.fault", "cannot create upload dir", err.Error())
		return
	}
	name := filepath.Base(hdr.Filename)
	if name == "." || name == string(filepath.Separator) {
		name = "upload.txt"
	}
	// concurrent uploads of the same file name must not share a path
	src := filepath.Join(h.uploadDir, uuid.NewString()+"_"+name)
	if err := saveUploaded(file, src); err != nil {
		fail(w, r, http.StatusInternalServerError, "io.fault", "cannot store upload", err.Error())
		return
	}

	saved, err := os.Open(src)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "io.fault", "cannot reopen upload", err.Error())
		return
	}
	defer saved.Close()

	res, err := h.desk.Execute(r.Context(), desk.LoadReader{Name: name, R: saved})
	reply(w, r, res, err)
}

func saveUploaded(src io.Reader, dst string) error {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (h *Handler) Records(w http.ResponseWriter, r *http.Request) {
	res, err := h.desk.Execute(r.Context(), desk.Records{})
	reply(w, r, res, err)
}

// Search: ?id=...&mode=linear|binary (linear by default).
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	var req desk.Request
	switch mode := strings.ToLower(r.URL.Query().Get("mode")); mode {
	case "", "linear":
		req = desk.LinearSearch{CallID: id}
	case "binary":
		req = desk.BinarySearch{CallID: id}
	default:
		fail(w, r, http.StatusBadRequest, "request.invalid", "mode must be linear or binary", mode)
		return
	}
	res, err := h.desk.Execute(r.Context(), req)
	reply(w, r, res, err)
}

func (h *Handler) Sort(w http.ResponseWriter, r *http.Request) {
	res, err := h.desk.Execute(r.Context(), desk.SortByDuration{})
	reply(w, r, res, err)
}

type exportResponse struct {
	desk.Result
	Download string `json:"download"`
}

// Export: ?format=csv|xlsx. The file lands in the export dir and is served
// from /download/.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		fail(w, r, http.StatusBadRequest, "request.invalid", "format must be csv or xlsx", format)
		return
	}
	if err := os.MkdirAll(h.exportDir, 0o755); err != nil {
		fail(w, r, http.StatusInternalServerError, "io.fault", "cannot create export dir", err.Error())
		return
	}

	name := fmt.Sprintf("cdrs_%s.%s", uuid.NewString(), format)
	dst := filepath.Join(h.exportDir, name)

	var req desk.Request = desk.ExportFile{Path: dst}
	if format == "xlsx" {
		req = desk.ExportWorkbook{Path: dst}
	}
	res, err := h.desk.Execute(r.Context(), req)
	if err != nil {
		reply(w, r, res, err)
		return
	}
	ok(w, r, http.StatusOK, exportResponse{Result: res, Download: "/download/" + name})
}

/* ──────────── city endpoints ──────────── */

type insertCityRequest struct {
	City  string `json:"city"`
	Where string `json:"where"` // beginning | end | position
	Pos   int    `json:"pos"`
}

func (h *Handler) InsertCity(w http.ResponseWriter, r *http.Request) {
	var body insertCityRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		fail(w, r, http.StatusBadRequest, "request.invalid", "invalid body", err.Error())
		return
	}

	var req desk.Request
	switch strings.ToLower(body.Where) {
	case "beginning":
		req = desk.InsertAtBeginning{City: body.City}
	case "", "end":
		req = desk.InsertAtEnd{City: body.City}
	case "position":
		req = desk.InsertAtPosition{City: body.City, Pos: body.Pos}
	default:
		fail(w, r, http.StatusBadRequest, "request.invalid", "where must be beginning, end or position", body.Where)
		return
	}
	res, err := h.desk.Execute(r.Context(), req)
	reply(w, r, res, err)
}

// DeleteCity: ?where=beginning|end|position&pos=N
func (h *Handler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var req desk.Request
	switch where := strings.ToLower(q.Get("where")); where {
	case "beginning":
		req = desk.DeleteAtBeginning{}
	case "end":
		req = desk.DeleteAtEnd{}
	case "position":
		pos, err := strconv.Atoi(strings.TrimSpace(q.Get("pos")))
		if err != nil {
			fail(w, r, http.StatusBadRequest, "request.invalid", "Position must be integer", q.Get("pos"))
			return
		}
		req = desk.DeleteAtPosition{Pos: pos}
	default:
		fail(w, r, http.StatusBadRequest, "request.invalid", "where must be beginning, end or position", where)
		return
	}
	res, err := h.desk.Execute(r.Context(), req)
	reply(w, r, res, err)
}

func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	res, err := h.desk.Execute(r.Context(), desk.Cities{})
	reply(w, r, res, err)
}

// DisplayCities: ?dir=forward|backward
func (h *Handler) DisplayCities(w http.ResponseWriter, r *http.Request) {
	var req desk.Request
	switch dir := strings.ToLower(r.URL.Query().Get("dir")); dir {
	case "", "forward":
		req = desk.DisplayForward{}
	case "backward":
		req = desk.DisplayBackward{}
	default:
		fail(w, r, http.StatusBadRequest, "request.invalid", "dir must be forward or backward", dir)
		return
	}
	res, err := h.desk.Execute(r.Context(), req)
	reply(w, r, res, err)
}

func (h *Handler) MiddleCity(w http.ResponseWriter, r *http.Request) {
	res, err := h.desk.Execute(r.Context(), desk.MiddleCity{})
	reply(w, r, res, err)
}

func (h *Handler) CityCount(w http.ResponseWriter, r *http.Request) {
	res, err := h.desk.Execute(r.Context(), desk.CityCount{})
	reply(w, r, res, err)
}
