package api

import (
	"net/http"
)

type issueLicenseRequest struct {
	ClientName   string `json:"client_name"`
	ClientEmail  string `json:"client_email"`
	ValidityDays int    `json:"validity_days"`
	Notes        string `json:"notes"`
}

func (a *API) handleIssueLicense(w http.ResponseWriter, r *http.Request) {
	var in issueLicenseRequest
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.ClientName == "" || in.ClientEmail == "" || in.ValidityDays <= 0 {
		writeError(w, http.StatusBadRequest, "client_name, client_email and validity_days are required")
		return
	}
	lic, err := a.auth.Issue(r.Context(), in.ClientName, in.ClientEmail, in.ValidityDays, in.Notes)
	if err != nil {
		a.fail(w, "issue license", err)
		return
	}
	writeJSON(w, http.StatusCreated, lic)
}

func (a *API) handleListLicenses(w http.ResponseWriter, r *http.Request) {
	list, err := a.auth.List(r.Context())
	if err != nil {
		a.fail(w, "list licenses", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleLicenseStats(w http.ResponseWriter, r *http.Request) {
	st, err := a.auth.Stats(r.Context())
	if err != nil {
		a.fail(w, "license stats", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type verifyLicenseRequest struct {
	LicenseKey string `json:"license_key"`
}

func (a *API) handleVerifyLicense(w http.ResponseWriter, r *http.Request) {
	var in verifyLicenseRequest
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	verdict, err := a.auth.Verify(r.Context(), in.LicenseKey)
	if err != nil {
		a.fail(w, "verify license", err)
		return
	}
	outcome := "valid"
	if !verdict.Valid {
		outcome = string(verdict.Reason)
	}
	a.met.LicenseVerifications.WithLabelValues(outcome).Inc()
	writeJSON(w, http.StatusOK, verdict)
}

func (a *API) handleDeactivateLicense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid license id")
		return
	}
	if err := a.auth.Deactivate(r.Context(), id); err != nil {
		a.fail(w, "deactivate license", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deactivated": true})
}

func (a *API) handleDeleteLicense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid license id")
		return
	}
	if err := a.auth.Delete(r.Context(), id); err != nil {
		a.fail(w, "delete license", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
