package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/customers"
)

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func (a *API) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	var (
		list []customers.Customer
		err  error
	)
	if r.URL.Query().Get("status") == "active" {
		list, err = a.custs.ListActive(r.Context())
	} else {
		list, err = a.custs.ListAll(r.Context())
	}
	if err != nil {
		a.fail(w, "list customers", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	c, err := a.custs.Get(r.Context(), id)
	if err != nil {
		a.fail(w, "get customer", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *API) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var in customers.Customer
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	saved, err := a.custs.Register(r.Context(), in)
	if err != nil {
		a.fail(w, "create customer", err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (a *API) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	var in customers.Customer
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.ID = id
	saved, err := a.custs.Update(r.Context(), in)
	if err != nil {
		a.fail(w, "update customer", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (a *API) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	if err := a.custs.Delete(r.Context(), id); err != nil {
		a.fail(w, "delete customer", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
