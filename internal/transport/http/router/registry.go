package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// Module mounts a feature's routes under the versioned API group.
type Module interface{ Mount(*gin.RouterGroup) }

// Modules may implement Priority to control mount order (lower first,
// default 100).
type prioritizer interface{ Priority() int }

func mountAll(api *gin.RouterGroup, mods []Module) {
	mods = append([]Module(nil), mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.Mount(api)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
