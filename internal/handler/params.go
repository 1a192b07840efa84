package handler

import (
	"net/http"
	"strconv"

	"hestia-ledger-api/internal/middleware"
	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/pkg/addr"
	"hestia-ledger-api/pkg/apierror"

	"github.com/go-chi/chi/v5"
)

// signerOf resolves the authenticated signer placed in the request context by
// the auth middleware.
func signerOf(r *http.Request) (model.Identity, *apierror.Error) {
	signer, ok := middleware.GetSignerFromContext(r.Context())
	if !ok {
		return "", apierror.Unauthorized("no authenticated signer")
	}
	return signer, nil
}

// addressParam reads a derived record address from the URL.
func addressParam(r *http.Request, name string) (addr.Address, *apierror.Error) {
	raw := chi.URLParam(r, name)
	if err := (model.Identity(raw)).Validate(); err != nil {
		return "", apierror.BadRequest(name + " is not a well-formed address")
	}
	return addr.Address(raw), nil
}

// identityParam reads an identity from the URL.
func identityParam(r *http.Request, name string) (model.Identity, *apierror.Error) {
	raw := model.Identity(chi.URLParam(r, name))
	if err := raw.Validate(); err != nil {
		return "", apierror.BadRequest(name + " is not a well-formed identity")
	}
	return raw, nil
}

// uint64Param reads a numeric discriminator (SKU, order id) from the URL.
func uint64Param(r *http.Request, name string) (uint64, *apierror.Error) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, apierror.BadRequest(name + " must be an unsigned integer")
	}
	return v, nil
}
