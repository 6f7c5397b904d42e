package handler

import (
	"encoding/json"
	"net/http"

	"github.com/felipemarinho97/torrent-catalog/consts"
)

// HandlerIndex lists the available endpoints and build info.
func HandlerIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"build": consts.GetBuildInfo(),
		"endpoints": map[string]string{
			"/catalog": "top listings, params: category=movies|shows, format=json|combined",
			"/search":  "cross-source search, params: q (required), format=json|combined",
		},
	})
}
