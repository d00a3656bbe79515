// Package dofdebug is a net/http introspection server over a live
// table.Database, island.Graph, and broadphase.Sweep2D: a read-only view
// for development, modeled on the teacher's ddbui debug server (mux +
// middleware + graceful shutdown) but with no persisted client to manage.
package dofdebug

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dof-engine/dofcore/broadphase"
	"github.com/dof-engine/dofcore/island"
	"github.com/dof-engine/dofcore/table"
)

// Server serves read-only introspection endpoints over a single running
// instance of the core: no handler ever mutates db, graph, or sweep, and
// none of them may be mutated concurrently by the caller while Run is
// serving.
type Server[K comparable, E any] struct {
	port       int
	db         *table.Database
	tables     map[string]table.TableID
	graph      *island.Graph[K, E]
	sweep      *broadphase.Sweep2D
	httpServer *http.Server
}

// New returns a Server exposing db, tables (by name), graph, and sweep on
// port.
func New[K comparable, E any](port int, db *table.Database, tables map[string]table.TableID, graph *island.Graph[K, E], sweep *broadphase.Sweep2D) *Server[K, E] {
	return &Server[K, E]{port: port, db: db, tables: tables, graph: graph, sweep: sweep}
}

// Handler returns the introspection http.Handler, usable standalone or
// mounted on an existing mux.
func (s *Server[K, E]) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tables", s.handleTables)
	mux.HandleFunc("GET /islands", s.handleIslands)
	mux.HandleFunc("GET /broadphase/pairs", s.handlePairs)
	return corsMiddleware(loggingMiddleware(mux))
}

// Run starts the server and blocks until SIGINT/SIGTERM triggers a
// graceful shutdown.
func (s *Server[K, E]) Run() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("dofdebug: shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
		close(done)
	}()

	log.Printf("dofdebug: listening on http://localhost:%d\n", s.port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	<-done
	return nil
}

// Shutdown gracefully stops the server without waiting for a signal.
func (s *Server[K, E]) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

type tableSummary struct {
	Name     string   `json:"name"`
	Len      int      `json:"len"`
	RowTypes []uint32 `json:"rowTypes"`
}

func (s *Server[K, E]) handleTables(w http.ResponseWriter, r *http.Request) {
	out := make([]tableSummary, 0, len(s.tables))
	for name, id := range s.tables {
		t, err := s.db.Table(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		rowTypes := make([]uint32, 0)
		for _, rt := range t.RowTypes() {
			rowTypes = append(rowTypes, uint32(rt))
		}
		out = append(out, tableSummary{Name: name, Len: t.Len(), RowTypes: rowTypes})
	}
	writeJSON(w, out)
}

type islandSummary struct {
	Nodes []K `json:"nodes"`
	Edges int `json:"edges"`
}

func (s *Server[K, E]) handleIslands(w http.ResponseWriter, r *http.Request) {
	islands := s.graph.Islands()
	out := make([]islandSummary, 0, len(islands))
	for _, isl := range islands {
		out = append(out, islandSummary{Nodes: isl.Nodes, Edges: len(isl.Edges)})
	}
	writeJSON(w, out)
}

func (s *Server[K, E]) handlePairs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.sweep.Pairs())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// corsMiddleware adds permissive CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
