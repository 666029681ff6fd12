package idgen

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out unique identifiers for correlating a search
// across its fan-out of provider calls.
type Generator interface {
	SearchID() string
}

// SnowflakeGenerator implements Generator using Twitter Snowflake ids.
type SnowflakeGenerator struct {
	node *snowflake.Node
	mu   sync.Mutex
}

// NewSnowflakeGenerator initializes a new id generator.
// nodeID must be unique per server instance (0-1023) to prevent collisions.
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}

	return &SnowflakeGenerator{node: node}, nil
}

// SearchID returns a new unique search identifier.
func (g *SnowflakeGenerator) SearchID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return "srch_" + g.node.Generate().String()
}
