// Command schema emits JSON schemas for the wire protocol so clients in
// other languages can validate their codecs.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/modu-apps/cell-eater/internal/protocol"
)

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "", "directory to write the schemas")
	flag.Parse()

	if outDir == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	for name, schema := range buildSchemas() {
		if err := writeSchema(filepath.Join(outDir, name+".schema.json"), schema); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s schema: %v\n", name, err)
			os.Exit(1)
		}
	}
}

func buildSchemas() map[string]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}

	schemas := map[string]*jsonschema.Schema{
		"join_response":  reflector.Reflect(new(protocol.JoinResponse)),
		"state_message":  reflector.Reflect(new(protocol.StateMessage)),
		"client_message": reflector.Reflect(new(protocol.ClientMessage)),
		"heartbeat_ack":  reflector.Reflect(new(protocol.HeartbeatAck)),
		"diagnostics":    reflector.Reflect(new(protocol.Diagnostics)),
	}
	schemas["join_response"].Title = "Join Response"
	schemas["state_message"].Title = "State Broadcast"
	schemas["client_message"].Title = "Client Message"
	schemas["heartbeat_ack"].Title = "Heartbeat Ack"
	schemas["diagnostics"].Title = "Diagnostics Snapshot"
	return schemas
}

func writeSchema(path string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
