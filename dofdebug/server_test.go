package dofdebug_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dof-engine/dofcore/broadphase"
	"github.com/dof-engine/dofcore/dofdebug"
	"github.com/dof-engine/dofcore/island"
	"github.com/dof-engine/dofcore/row"
	"github.com/dof-engine/dofcore/table"
)

func buildDatabase(t *testing.T) (*table.Database, map[string]table.TableID) {
	t.Helper()
	db := table.NewDatabase(16)
	b := table.NewBuilder()
	b.WithRow(row.RowType(0), row.NewPlain[float64]())
	id := db.CreateTable(b)
	_, err := db.AddElements(id, 3, nil)
	require.NoError(t, err)
	return db, map[string]table.TableID{"positions": id}
}

func TestHandleTablesReportsLenAndRowTypes(t *testing.T) {
	db, tables := buildDatabase(t)
	graph := island.New[string, struct{}]()
	sweep := broadphase.New()

	srv := dofdebug.New(0, db, tables, graph, sweep)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tables", nil)
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, 200, rr.Code)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "positions", out[0]["name"])
	assert.Equal(t, float64(3), out[0]["len"])
}

func TestHandleIslandsReportsNodesAndEdgeCount(t *testing.T) {
	db, tables := buildDatabase(t)
	graph := island.New[string, struct{}]()
	graph.AddNode("a", island.PropagateAll)
	graph.AddNode("b", island.PropagateAll)
	graph.AddEdge("a", "b", struct{}{})
	sweep := broadphase.New()

	srv := dofdebug.New(0, db, tables, graph, sweep)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/islands", nil)
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, 200, rr.Code)
	var out []struct {
		Nodes []string `json:"nodes"`
		Edges int      `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.ElementsMatch(t, []string{"a", "b"}, out[0].Nodes)
	assert.Equal(t, 1, out[0].Edges)
}

func TestHandlePairsReportsOverlaps(t *testing.T) {
	db, tables := buildDatabase(t)
	graph := island.New[string, struct{}]()
	sweep := broadphase.New()
	sweep.Insert(1, 0, 0, 2, 2)
	sweep.Insert(2, 1, 1, 3, 3)

	srv := dofdebug.New(0, db, tables, graph, sweep)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/broadphase/pairs", nil)
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, 200, rr.Code)
	var out []broadphase.Pair
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 1)
}

func TestCorsHeadersPresent(t *testing.T) {
	db, tables := buildDatabase(t)
	graph := island.New[string, struct{}]()
	sweep := broadphase.New()

	srv := dofdebug.New(0, db, tables, graph, sweep)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tables", nil)
	srv.Handler().ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
