package app

import (
	"net/http"

	"github.com/metinatakli/cinema-booking-engine/api"
	"github.com/metinatakli/cinema-booking-engine/internal/domain"
)

func (app *Application) GetWallet(w http.ResponseWriter, r *http.Request) {
	balance, err := app.wallet.GetBalance(r.Context(), app.contextGetUserId(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.WalletResponse{Balance: balance}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetWalletHistory(w http.ResponseWriter, r *http.Request, params api.GetWalletHistoryParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	entries, metadata, err := app.wallet.History(r.Context(), app.contextGetUserId(r), toPagination(params))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.WalletHistoryResponse{
		Entries:  toLedgerEntries(entries),
		Metadata: *toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DepositFunds(w http.ResponseWriter, r *http.Request) {
	var input api.DepositRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	balance, err := app.wallet.Credit(r.Context(), userId, input.Amount, domain.ReasonDeposit)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("wallet deposit", "amount", input.Amount, "balance", balance)

	err = app.writeJSON(w, http.StatusCreated, api.WalletResponse{Balance: balance}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toLedgerEntries(entries []domain.LedgerEntry) []api.LedgerEntry {
	ledgerEntries := make([]api.LedgerEntry, len(entries))

	for i, v := range entries {
		entry := &ledgerEntries[i]

		entry.Id = v.ID
		entry.Delta = v.Delta
		entry.Reason = v.Reason
		entry.CreatedAt = v.CreatedAt
	}

	return ledgerEntries
}

func toPagination(params api.GetWalletHistoryParams) domain.Pagination {
	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if params.Page != nil {
		pagination.Page = *params.Page
	}
	if params.PageSize != nil {
		pagination.PageSize = *params.PageSize
	}

	return pagination
}

func toApiMetadata(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return &api.Metadata{}
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
