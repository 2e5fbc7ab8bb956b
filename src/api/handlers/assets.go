package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"assetserver/src/schemas"
	"assetserver/src/utils"
)

var (
	errAssetIDRequired = utils.BadRequest("Asset ID required")
	errInvalidJSON     = utils.BadRequest("Invalid JSON input")
)

// ExtractAssetID returns the numeric segment following the first "assets"
// segment of path. A missing or non-numeric segment yields ok == false.
func ExtractAssetID(path string) (id int, ok bool) {
	segments := strings.Split(strings.TrimRight(path, "/"), "/")
	for i, segment := range segments {
		if segment != "assets" {
			continue
		}
		if i+1 >= len(segments) {
			return 0, false
		}
		return parseID(segments[i+1])
	}
	return 0, false
}

func parseID(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return id, true
}

func readPayload(r *http.Request) (schemas.Payload, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	p, err := schemas.DecodePayload(body)
	if err != nil {
		return nil, errInvalidJSON
	}
	return p, nil
}

// Assets serves every method on the asset collection and on single assets.
// The id comes from the path itself, so the handler can be mounted under
// any prefix ending in /assets.
func (h *Handler) Assets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, hasID := ExtractAssetID(r.URL.Path)

	switch r.Method {
	case http.MethodOptions:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

	case http.MethodGet:
		if !hasID {
			assets, err := h.AssetsController.GetAllAssets(ctx)
			if err != nil {
				h.HandleErrors(w, r, err)
				return
			}
			h.respond(w, r, assets, http.StatusOK)
			return
		}
		asset, err := h.AssetsController.GetAssetByID(ctx, id)
		if err != nil {
			h.HandleErrors(w, r, err)
			return
		}
		h.respond(w, r, asset, http.StatusOK)

	case http.MethodPost:
		p, err := readPayload(r)
		if err != nil {
			h.HandleErrors(w, r, err)
			return
		}
		created, err := h.AssetsController.CreateAsset(ctx, p)
		if err != nil {
			h.HandleErrors(w, r, err)
			return
		}
		h.respond(w, r, created, http.StatusCreated)

	case http.MethodPut, http.MethodPatch:
		if !hasID {
			h.HandleErrors(w, r, errAssetIDRequired)
			return
		}
		p, err := readPayload(r)
		if err != nil {
			h.HandleErrors(w, r, err)
			return
		}
		var updated *schemas.AssetResponse
		if r.Method == http.MethodPut {
			updated, err = h.AssetsController.UpdateAsset(ctx, id, p)
		} else {
			updated, err = h.AssetsController.UpdateAssetDepartment(ctx, id, p)
		}
		if err != nil {
			h.HandleErrors(w, r, err)
			return
		}
		h.respond(w, r, updated, http.StatusOK)

	case http.MethodDelete:
		if !hasID {
			h.HandleErrors(w, r, errAssetIDRequired)
			return
		}
		if err := h.AssetsController.DeleteAsset(ctx, id); err != nil {
			h.HandleErrors(w, r, err)
			return
		}
		h.respond(w, r, schemas.MessageResponse{Message: "Asset deleted successfully"}, http.StatusOK)

	default:
		h.HandleErrors(w, r, utils.MethodNotAllowed())
	}
}
