/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"encoding/json"
	"fmt"
)

// Builder knows how to launch and configure a competitor for a game. The
// process layer that actually starts engines lives outside this package; a
// Player only needs the name and the JSON round trip.
type Builder interface {
	Name() string
	SetName(name string)
	json.Marshaler
	json.Unmarshaler
}

// EngineConfig is the launch configuration of a chess engine.
type EngineConfig struct {
	Name        string            `json:"name"`
	Command     string            `json:"command"`
	WorkingDir  string            `json:"workingDirectory,omitempty"`
	Protocol    string            `json:"protocol"`
	Arguments   []string          `json:"arguments,omitempty"`
	InitStrings []string          `json:"initStrings,omitempty"`
	Options     map[string]string `json:"options,omitempty"`
}

// EngineBuilder is the Builder for engines described by an EngineConfig.
type EngineBuilder struct {
	Config EngineConfig
}

var _ Builder = (*EngineBuilder)(nil)

func NewEngineBuilder(cfg EngineConfig) *EngineBuilder {
	return &EngineBuilder{Config: cfg}
}

func (b *EngineBuilder) Name() string {
	return b.Config.Name
}

func (b *EngineBuilder) SetName(name string) {
	b.Config.Name = name
}

func (b *EngineBuilder) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Config)
}

// UnmarshalJSON decodes over the current configuration, so keys absent from
// data keep their current values.
func (b *EngineBuilder) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &b.Config); err != nil {
		return fmt.Errorf("unable to parse engine config: %w", err)
	}

	return nil
}
