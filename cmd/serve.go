package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/incipitdex/catalog"
	"github.com/jsphweid/incipitdex/constants"
	"github.com/jsphweid/incipitdex/editor"
	"github.com/jsphweid/incipitdex/layout"
	"github.com/jsphweid/incipitdex/logger"
	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/pae"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

type session struct {
	bus    *editor.Bus
	cancel context.CancelFunc

	mu   sync.Mutex
	last editor.State
}

func (s *session) state() editor.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

var (
	sessionsMu sync.Mutex
	sessions   = map[string]*session{}

	searcher catalog.Searcher
	works    catalog.WorkStore
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the incipit HTTP API",
	Long:  `Serves decoding, rendering, editing sessions and catalog lookups over HTTP on $PORT.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// LoadServeDeps wires the catalog collaborators from the environment.
func LoadServeDeps() {
	if u := constants.GetCatalogURL(); u != "" {
		searcher = catalog.NewHTTPSearcher(u)
	} else {
		logger.HTTP.Println("CATALOG_URL not set, search disabled")
	}
	store, err := catalog.NewDynamoStore()
	if err != nil {
		logger.HTTP.Printf("works lookup disabled: %v", err)
		return
	}
	works = store
}

// SetCatalog replaces the catalog collaborators; nil disables the route.
func SetCatalog(s catalog.Searcher, w catalog.WorkStore) {
	searcher = s
	works = w
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.HTTP.Printf("could not write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

// readBody decodes a JSON body; an empty body leaves v untouched.
func readBody(r *http.Request, v interface{}) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return errors.Wrap(err, "reading request body")
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(b, v), "could not unmarshal request body")
}

func HandleDecode(w http.ResponseWriter, r *http.Request) {
	var input model.DecodeRequestBody
	if err := readBody(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, decodeResponse(input.PAE))
}

func HandleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = "json"
	}
	writeRender(w, format, pae.ParseIncipit(q.Get("pae")), nil)
}

// writeRender renders into a buffer first so a failure can still be
// reported as JSON.
func writeRender(w http.ResponseWriter, format string, inc model.Incipit, preview *model.Note) {
	var buf bytes.Buffer
	if err := render(&buf, format, renderConfig, inc, preview); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if format == "pdf" {
		w.Header().Set("Content-Type", "application/pdf")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Write(buf.Bytes())
}

func sessionState(id string, st editor.State) model.SessionState {
	events := st.Events
	if events == nil {
		events = []model.Event{}
	}
	skipped := st.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	return model.SessionState{ID: id, PAE: st.PAE, Body: st.Body, Events: events, Skipped: skipped}
}

func HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var input model.SessionRequestBody
	if err := readBody(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id := uuid.New().String()
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{cancel: cancel}
	ed := editor.New(editor.FromPAE(input.PAE), layout.New(renderConfig))
	initial := ed.Snapshot()
	s.last = initial
	s.bus = editor.NewBus(ed, func(st editor.State) {
		s.mu.Lock()
		s.last = st
		s.mu.Unlock()
	})
	go s.bus.Run(ctx)

	sessionsMu.Lock()
	sessions[id] = s
	sessionsMu.Unlock()

	logger.HTTP.Printf("session %s opened", id)
	writeJSON(w, http.StatusCreated, sessionState(id, initial))
}

func lookupSession(w http.ResponseWriter, r *http.Request) (string, *session, bool) {
	id := mux.Vars(r)["id"]
	sessionsMu.Lock()
	s, ok := sessions[id]
	sessionsMu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, errors.Errorf("no session %q", id))
	}
	return id, s, ok
}

func HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id, s, ok := lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionState(id, s.state()))
}

func HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, s, ok := lookupSession(w, r)
	if !ok {
		return
	}
	s.cancel()
	sessionsMu.Lock()
	delete(sessions, id)
	sessionsMu.Unlock()
	logger.HTTP.Printf("session %s closed", id)
	w.WriteHeader(http.StatusNoContent)
}

func commandFromRequest(body model.CommandRequestBody) (editor.Command, error) {
	needY := func() (float64, error) {
		if body.Y == nil {
			return 0, errors.Errorf("%s needs y", body.Type)
		}
		return *body.Y, nil
	}
	switch strings.ToLower(body.Type) {
	case "insert":
		return editor.Insert{Token: body.Token}, nil
	case "sync":
		return editor.Sync{PAE: body.PAE}, nil
	case "clear":
		return editor.Clear{}, nil
	case "undo":
		return editor.Undo{}, nil
	case "leave":
		return editor.Leave{}, nil
	case "click":
		y, err := needY()
		return editor.Click{Y: y}, err
	case "hover":
		y, err := needY()
		return editor.Hover{Y: y}, err
	case "select":
		p := editor.Palette{Duration: body.Duration, Dotted: body.Dotted}
		if p.Duration == 0 {
			p.Duration = model.DefaultDuration
		}
		if body.Accidental != "" {
			acc, ok := model.ParseAccidental(body.Accidental[0])
			if !ok || len(body.Accidental) != 1 {
				return nil, errors.Errorf("unknown accidental %q", body.Accidental)
			}
			p.Accidental = acc
		}
		if !p.Valid() {
			return nil, errors.Errorf("invalid palette duration %d", body.Duration)
		}
		return editor.Select{Palette: p}, nil
	}
	return nil, errors.Errorf("unknown command type %q", body.Type)
}

func HandleSessionCommand(w http.ResponseWriter, r *http.Request) {
	id, s, ok := lookupSession(w, r)
	if !ok {
		return
	}
	var input model.CommandRequestBody
	if err := readBody(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	c, err := commandFromRequest(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	st, err := s.bus.Send(r.Context(), c)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionState(id, st))
}

// HandleSessionRender draws the session's staff; previewY moves the preview
// note first.
func HandleSessionRender(w http.ResponseWriter, r *http.Request) {
	_, s, ok := lookupSession(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	st := s.state()
	if raw := q.Get("previewY"); raw != "" {
		y, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.Errorf("bad previewY %q", raw))
			return
		}
		st, err = s.bus.Send(r.Context(), editor.Hover{Y: y})
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
	}
	format := q.Get("format")
	if format == "" {
		format = "json"
	}
	writeRender(w, format, st.Incipit, st.Preview)
}

func HandleSearch(w http.ResponseWriter, r *http.Request) {
	if searcher == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("search is not configured"))
		return
	}
	v := r.URL.Query()
	q := catalog.Query{
		PAE:       v.Get("pae"),
		Mode:      catalog.Mode(strings.ToLower(v.Get("mode"))),
		Threshold: catalog.ParseThreshold(v.Get("threshold")),
		Window:    catalog.ParseWindow(v.Get("window")),
	}
	if _, err := q.Values(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := searcher.Search(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	if res == nil {
		res = []model.Work{}
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleWorks(w http.ResponseWriter, r *http.Request) {
	if works == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("works lookup is not configured"))
		return
	}
	var ids []string
	for _, raw := range r.URL.Query()["id"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("at least one id is required"))
		return
	}
	found, err := works.GetWorks(r.Context(), ids)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	res := make([]model.Work, 0, len(found))
	seen := map[string]bool{}
	for _, id := range ids {
		if wk, ok := found[id]; ok && !seen[id] {
			seen[id] = true
			res = append(res, wk)
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.HTTP.Printf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(logRequests)
	router.HandleFunc("/pae/decode", HandleDecode).Methods("POST")
	router.HandleFunc("/render", HandleRender).Methods("GET")
	router.HandleFunc("/sessions", HandleCreateSession).Methods("POST")
	router.HandleFunc("/sessions/{id}", HandleGetSession).Methods("GET")
	router.HandleFunc("/sessions/{id}", HandleDeleteSession).Methods("DELETE")
	router.HandleFunc("/sessions/{id}/commands", HandleSessionCommand).Methods("POST")
	router.HandleFunc("/sessions/{id}/render", HandleSessionRender).Methods("GET")
	router.HandleFunc("/search", HandleSearch).Methods("GET")
	router.HandleFunc("/works", HandleWorks).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func serve() {
	LoadServeDeps()
	addr := ":" + constants.GetPort()
	logger.HTTP.Printf("listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, NewRouter()))
}
