package docs

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/http/httpguts"

	"github.com/vitalvas/apidocs/definition"
	"github.com/vitalvas/apidocs/dispatch"
	"github.com/vitalvas/apidocs/introspect"
	"github.com/vitalvas/apidocs/swagger"
)

// DefaultMountPath is the mount path used when Config.MountPath is empty.
const DefaultMountPath = "/api-docs"

// Config configures a Handler. It must not be changed after New.
type Config struct {
	// MountPath is where the resource listing is served (default: "/api-docs").
	// Category documents are served below it.
	MountPath string

	// APIVersion is the documented API version (default: "1.0").
	APIVersion string

	// BasePath is the absolute URI the documented paths are relative to.
	BasePath string

	// Prefix is prepended to every path discovered in the graph.
	Prefix string

	Title          string
	Description    string
	TermsOfService string
	Contact        *definition.Contact
	License        *definition.License

	// Extractors run in order for every element. Nil means
	// introspect.DefaultExtractors().
	Extractors []introspect.Extractor

	CORS CORSConfig

	// Logger receives build diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

func (cfg Config) mountPath() string {
	if cfg.MountPath == "" {
		return DefaultMountPath
	}

	mount := strings.TrimRight(cfg.MountPath, "/")
	if mount != "" && !strings.HasPrefix(mount, "/") {
		mount = "/" + mount
	}
	return mount
}

// snapshot is one published definition.
type snapshot struct {
	def      *definition.Definition
	revision string
	warnings []error
}

// Handler serves the documentation of one dispatch graph. It is safe for
// concurrent use.
type Handler struct {
	graph  dispatch.Reader
	cfg    Config
	mount  string
	cors   *corsPolicy
	logger *slog.Logger

	mu      sync.Mutex
	current atomic.Pointer[snapshot]
}

var _ http.Handler = (*Handler)(nil)

// New creates a Handler for graph. Nothing is computed until the first
// request. It returns an error when the CORS configuration is invalid.
func New(graph dispatch.Reader, cfg Config) (*Handler, error) {
	if graph == nil {
		return nil, errors.New("docs: nil dispatch graph")
	}

	cors, err := newCORSPolicy(cfg.CORS)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		graph:  graph,
		cfg:    cfg,
		mount:  cfg.mountPath(),
		cors:   cors,
		logger: logger,
	}, nil
}

// MountPath returns the normalized mount path. The root mount is "".
func (h *Handler) MountPath() string {
	return h.mount
}

// Definition returns the published definition, building it on first use.
// The returned definition is shared and must not be modified.
func (h *Handler) Definition() (*definition.Definition, error) {
	snap, err := h.load()
	if err != nil {
		return nil, err
	}
	return snap.def, nil
}

// Warnings returns the diagnostics of the published definition, building
// it on first use.
func (h *Handler) Warnings() ([]error, error) {
	snap, err := h.load()
	if err != nil {
		return nil, err
	}
	return snap.warnings, nil
}

// Index returns the resource listing.
func (h *Handler) Index() (*swagger.ResourceListing, error) {
	snap, err := h.load()
	if err != nil {
		return nil, err
	}
	return swagger.ToIndexDocument(snap.def), nil
}

// Detail returns the API declaration of category. An unknown category
// yields a *swagger.UnknownCategoryError.
func (h *Handler) Detail(category string) (*swagger.APIDeclaration, error) {
	snap, err := h.load()
	if err != nil {
		return nil, err
	}
	return swagger.ToDetailDocument(snap.def, category)
}

// load returns the published snapshot, building it when there is none.
// The mutex covers both the check and the build, so concurrent callers
// wait for a single build instead of racing.
func (h *Handler) load() (*snapshot, error) {
	if snap := h.current.Load(); snap != nil {
		return snap, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if snap := h.current.Load(); snap != nil {
		return snap, nil
	}

	snap, err := h.build()
	if err != nil {
		h.logger.Error("failed to build api definition", slog.Any("error", err))
		return nil, err
	}

	h.current.Store(snap)
	return snap, nil
}

func (h *Handler) build() (*snapshot, error) {
	start := time.Now()

	extractors := h.cfg.Extractors
	if extractors == nil {
		extractors = introspect.DefaultExtractors()
	}

	result, err := introspect.New(introspect.Config{
		Graph:          h.graph,
		Prefix:         h.cfg.Prefix,
		Version:        h.cfg.APIVersion,
		BasePath:       h.cfg.BasePath,
		Title:          h.cfg.Title,
		Description:    h.cfg.Description,
		TermsOfService: h.cfg.TermsOfService,
		Contact:        h.cfg.Contact,
		License:        h.cfg.License,
		Extractors:     extractors,
	}).Introspect()
	if err != nil {
		return nil, err
	}

	rev, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("docs: revision: %w", err)
	}

	for _, w := range result.Warnings {
		h.logger.Warn("api definition warning", slog.Any("error", w))
	}

	def := result.Definition
	h.logger.Info("api definition published",
		slog.String("revision", rev.String()),
		slog.Int("resources", len(def.Resources)),
		slog.Int("representations", len(def.Representations())),
		slog.Int("warnings", len(result.Warnings)),
		slog.Duration("duration", time.Since(start)))

	return &snapshot{def: def, revision: rev.String(), warnings: result.Warnings}, nil
}

// Attach registers the handler for the mount path and everything below it.
func (h *Handler) Attach(mux *http.ServeMux) {
	if h.mount == "" {
		mux.Handle("/", h)
		return
	}
	mux.Handle(h.mount, h)
	mux.Handle(h.mount+"/", h)
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.cors.apply(w, r)

	category, ok := h.route(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", allowedMethods)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	opts, err := parseOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := h.load()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var doc any
	if category == "" {
		doc = swagger.ToIndexDocument(snap.def)
	} else {
		decl, err := swagger.ToDetailDocument(snap.def, category)
		if errors.Is(err, swagger.ErrUnknownCategory) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		doc = decl
	}

	h.write(w, r, snap, doc, opts)
}

// route extracts the category from the request path. An empty category
// addresses the resource listing.
func (h *Handler) route(r *http.Request) (string, bool) {
	rest, ok := strings.CutPrefix(r.URL.EscapedPath(), h.mount)
	if !ok {
		return "", false
	}
	if rest != "" && !strings.HasPrefix(rest, "/") {
		return "", false
	}

	rest = strings.Trim(rest, "/")
	if strings.Contains(rest, "/") {
		return "", false
	}

	category, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return category, true
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, snap *snapshot, doc any, opts options) {
	etag := strconv.Quote(snap.revision + "-" + opts.variant())

	w.Header().Set("ETag", etag)
	w.Header().Add("Vary", "Accept")

	if match := r.Header.Values("If-None-Match"); len(match) > 0 {
		if httpguts.HeaderValuesContainsToken(match, etag) || httpguts.HeaderValuesContainsToken(match, "*") {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	data, contentType, err := encode(doc, opts)
	if err != nil {
		h.logger.Error("failed to encode document", slog.String("format", opts.Format), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(data)
}
