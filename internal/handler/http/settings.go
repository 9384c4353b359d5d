package http

import (
	"encoding/json"
	"net/http"

	"github.com/punchdeck/attendance-backend-go/internal/domain/policy"
	"github.com/punchdeck/attendance-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService policy.SettingsService
}

func NewSettingsHandler(settingsService policy.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{
		settingsService: settingsService,
	}
}

// Get implements SettingsHandler.
func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	values, err := h.settingsService.Values(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, values)
}

// Update implements SettingsHandler. Stored records are not re-derived here;
// the recalculate endpoint does that explicitly.
func (h *settingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if len(values) == 0 {
		response.BadRequest(w, "No settings provided", nil)
		return
	}

	updated, err := h.settingsService.Update(r.Context(), values)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Settings updated", updated)
}
