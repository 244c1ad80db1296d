package utilities

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// The snowflake node is process-lifetime: the sequence counter that keeps
// same-millisecond IDs distinct lives on the node, so constructing a node
// per call would hand out duplicates.
var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// NewID generates a snowflake ID string for new user and article rows,
// using the node ID from SNOWFLAKE_NODE (defaults to 1). If the node cannot
// be initialized it falls back to a KSUID so a unique ID is always returned.
func NewID() string {
	nodeOnce.Do(func() {
		nodeID := int64(1)
		if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				nodeID = parsed
			}
		}
		n, err := snowflake.NewNode(nodeID)
		if err != nil {
			return
		}
		node = n
	})
	if node == nil {
		return ksuid.New().String()
	}
	return node.Generate().String()
}
