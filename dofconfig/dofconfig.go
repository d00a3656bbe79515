// Package dofconfig loads the YAML scenario files cmd/dofcli runs: pool
// reservation size, table row layouts, island seed nodes/edges, broadphase
// seed boxes, and a state-machine node/edge description. Modeled on the
// teacher's ddb.ui.yaml loader, but scenario files are explicit CLI
// arguments rather than discovered by walking up the directory tree.
package dofconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is the full contents of a dofcli config file.
type Scenario struct {
	Pool         PoolConfig         `yaml:"pool"`
	Tables       []TableConfig      `yaml:"tables"`
	Island       IslandConfig       `yaml:"island"`
	Broadphase   []BoxConfig        `yaml:"broadphase"`
	StateMachine StateMachineConfig `yaml:"state_machine"`
	Operations   []OperationConfig  `yaml:"operations"`
}

// OperationConfig is one step of the scripted sequence dofcli run/bench
// executes against the instances Scenario describes. Type selects which
// fields apply: "add_elements" (table, count), "swap_remove" (table,
// index), "rebuild_islands" (no fields), "reinsert_box" (key, min/max x/y),
// "tick" (dt_ms), "key_event" (edge_key, kind: "down" or "up").
type OperationConfig struct {
	Type     string  `yaml:"type"`
	Table    string  `yaml:"table,omitempty"`
	Count    int     `yaml:"count,omitempty"`
	Index    int     `yaml:"index,omitempty"`
	Key      uint64  `yaml:"key,omitempty"`
	MinX     float64 `yaml:"min_x,omitempty"`
	MinY     float64 `yaml:"min_y,omitempty"`
	MaxX     float64 `yaml:"max_x,omitempty"`
	MaxY     float64 `yaml:"max_y,omitempty"`
	DTMillis uint32  `yaml:"dt_ms,omitempty"`
	EdgeKey  string  `yaml:"edge_key,omitempty"`
	Kind     string  `yaml:"kind,omitempty"`
}

type PoolConfig struct {
	Reservation int `yaml:"reservation"`
}

// RowConfig describes one row of a table. Kind selects the concrete row
// implementation: "stable_id", "plain_f64", "plain_i64", "sparse_f64", or
// "sparse_flag".
type RowConfig struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type TableConfig struct {
	Name string      `yaml:"name"`
	Rows []RowConfig `yaml:"rows"`
}

type IslandEdgeConfig struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

type IslandConfig struct {
	Nodes []string           `yaml:"nodes"`
	Edges []IslandEdgeConfig `yaml:"edges"`
}

type BoxConfig struct {
	Key  uint64  `yaml:"key"`
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// EventConfig describes the event a state-machine node publishes when
// activated.
type EventConfig struct {
	ID uint32 `yaml:"id"`
}

type NodeConfig struct {
	Name  string       `yaml:"name"`
	Event *EventConfig `yaml:"event,omitempty"`
}

// GuardConfig is the YAML shape of an edge guard, e.g.
// {type: timeout, threshold_ms: 500} or {type: key_down}.
type GuardConfig struct {
	Type        string  `yaml:"type"`
	ThresholdMS uint32  `yaml:"threshold_ms,omitempty"`
	Min         float64 `yaml:"min,omitempty"`
	Max         float64 `yaml:"max,omitempty"`
}

type EdgeConfig struct {
	From    string      `yaml:"from"`
	To      string      `yaml:"to"`
	Key     string      `yaml:"key,omitempty"`
	Guard   GuardConfig `yaml:"guard"`
	Consume bool        `yaml:"consume,omitempty"`
	Fork    bool        `yaml:"fork,omitempty"`
}

type StateMachineConfig struct {
	Nodes []NodeConfig `yaml:"nodes"`
	Edges []EdgeConfig `yaml:"edges"`
}

// Load reads and unmarshals the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dofconfig: reading %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("dofconfig: parsing %s: %w", path, err)
	}
	return &s, nil
}
