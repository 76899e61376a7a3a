package api

import (
	"net/http"
)

type signInRequest struct {
	Page string `json:"page"`
}

func (a *API) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var in signInRequest
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	decision, err := a.gate.SignIn(r.Context(), in.Page)
	if err != nil {
		a.fail(w, "sign in", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"decision": decision,
		"state":    a.gate.State(),
	})
}

func (a *API) handleSignOut(w http.ResponseWriter, r *http.Request) {
	a.gate.SignOut(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"state": a.gate.State()})
}

func (a *API) handleSessionState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"state": a.gate.State()})
}

type activateRequest struct {
	LicenseKey string `json:"license_key"`
	Page       string `json:"page"`
}

// handleActivate is the verification page: the user pastes a key, we
// verify it, and only a valid key gets cached for future page loads.
func (a *API) handleActivate(w http.ResponseWriter, r *http.Request) {
	var in activateRequest
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	verdict, err := a.auth.Verify(r.Context(), in.LicenseKey)
	if err != nil {
		a.fail(w, "activate license", err)
		return
	}
	outcome := "valid"
	if !verdict.Valid {
		outcome = string(verdict.Reason)
	}
	a.met.LicenseVerifications.WithLabelValues(outcome).Inc()
	if !verdict.Valid {
		writeJSON(w, http.StatusOK, verdict)
		return
	}
	if err := a.keys.Set(r.Context(), in.LicenseKey); err != nil {
		a.fail(w, "activate license", err)
		return
	}
	decision, err := a.gate.SignIn(r.Context(), in.Page)
	if err != nil {
		a.fail(w, "activate license", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"verdict":  verdict,
		"decision": decision,
		"state":    a.gate.State(),
	})
}
