package httpinterface

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/mutinywallet/mutinyd/internal/core/application/pubsub"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

var (
	errMissingString  = errors.New("missing string to handle")
	errMissingInvoice = errors.New("missing invoice")
	errMissingInvite  = errors.New("missing federation invite code")
	errMissingFiat    = errors.New("missing fiat currency")
	errWebhooksOff    = errors.New("webhooks are not enabled")
)

type handler struct {
	store     WalletStore
	wallet    Wallet
	settings  SettingsService
	navigator *Navigator
	webhooks  WebhookService

	upgrader *websocket.Upgrader
	streams  *sync.WaitGroup
	done     chan struct{}
	once     *sync.Once
}

func newHandler(opts ServiceOpts) *handler {
	return &handler{
		store:     opts.Store,
		wallet:    opts.Wallet,
		settings:  opts.Settings,
		navigator: opts.Navigator,
		webhooks:  opts.Webhooks,
		upgrader:  &websocket.Upgrader{},
		streams:   &sync.WaitGroup{},
		done:      make(chan struct{}),
		once:      &sync.Once{},
	}
}

func (h *handler) register(r *httprouter.Router) {
	r.GET("/v1/state", h.getState)
	r.GET("/v1/state/stream", h.streamState)
	r.POST("/v1/setup", h.setup)
	r.POST("/v1/sync", h.sync)
	r.POST("/v1/incoming", h.handleIncoming)
	r.GET("/v1/settings", h.getSettings)
	r.PUT("/v1/settings", h.setSettings)
	r.PATCH("/v1/settings", h.updateSettings)
	r.DELETE("/v1/settings", h.resetSettings)
	r.POST("/v1/fiat", h.setFiat)
	r.POST("/v1/balance-view", h.setBalanceView)
	r.POST("/v1/wallet/delete", h.deleteWallet)

	r.GET("/v1/balance", h.getBalance)
	r.GET("/v1/activity", h.getActivity)
	r.GET("/v1/contacts", h.getContacts)
	r.POST("/v1/contacts", h.createContact)
	r.GET("/v1/federations", h.listFederations)
	r.POST("/v1/federations", h.newFederation)
	r.GET("/v1/nwc", h.getNwcProfiles)
	r.POST("/v1/invoices", h.createInvoice)
	r.POST("/v1/invoices/pay", h.payInvoice)
	r.GET("/v1/channels", h.listChannels)
	r.GET("/v1/logs", h.getLogs)

	r.GET("/v1/webhooks", h.listWebhooks)
	r.POST("/v1/webhooks", h.addWebhook)
	r.DELETE("/v1/webhooks/:id", h.removeWebhook)
}

func (h *handler) getState(
	w http.ResponseWriter, _ *http.Request, _ httprouter.Params,
) {
	writeJSON(w, http.StatusOK, stateResponse(h.store.State()))
}

func (h *handler) setup(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.Setup(r.Context(), req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(h.store.State()))
}

func (h *handler) sync(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	if err := h.store.Sync(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	st := h.store.State()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"balance":   st.Balance,
		"last_sync": st.LastSync,
	})
}

func (h *handler) handleIncoming(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	var req struct {
		Str string `json:"str"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Str == "" {
		writeError(w, badRequest(errMissingString))
		return
	}

	var (
		failure error
		params  *domain.ParsedParams
	)
	h.store.HandleIncomingString(
		r.Context(), req.Str,
		func(err error) { failure = err },
		func(p domain.ParsedParams) { params = &p },
	)
	if failure != nil {
		writeError(w, failure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"params": params,
		"route":  h.navigator.Current(),
	})
}

func (h *handler) getSettings(
	w http.ResponseWriter, _ *http.Request, _ httprouter.Params,
) {
	settings, err := h.settings.GetSettings()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *handler) setSettings(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	var settings domain.Settings
	if err := decode(r, &settings); err != nil {
		writeError(w, err)
		return
	}
	if err := h.settings.SetSettings(settings); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) updateSettings(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	var values map[string]string
	if err := decode(r, &values); err != nil {
		writeError(w, err)
		return
	}
	if err := h.settings.UpdateSettings(values); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) resetSettings(
	w http.ResponseWriter, _ *http.Request, _ httprouter.Params,
) {
	if err := h.settings.ResetSettings(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) setFiat(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	var fiat domain.Currency
	if err := decode(r, &fiat); err != nil {
		writeError(w, err)
		return
	}
	if fiat.Value == "" {
		writeError(w, badRequest(errMissingFiat))
		return
	}
	if err := h.store.SetFiat(r.Context(), fiat); err != nil {
		writeError(w, err)
		return
	}
	st := h.store.State()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"fiat":  st.Fiat,
		"price": st.Price,
	})
}

func (h *handler) setBalanceView(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	var req struct {
		View domain.BalanceView `json:"view"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.SetBalanceView(req.View); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) deleteWallet(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	if err := h.store.DeleteMutinyWallet(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) getBalance(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	balance, err := h.wallet.GetBalance(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"federation":  balance.Federation,
		"lightning":   balance.Lightning,
		"confirmed":   balance.Confirmed,
		"unconfirmed": balance.Unconfirmed,
		"force_close": balance.ForceClose,
		"total":       balance.Total(),
	})
}

func (h *handler) getActivity(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	limit, err := queryUint32(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	offset, err := queryUint32(r, "offset")
	if err != nil {
		writeError(w, err)
		return
	}
	items, err := h.wallet.GetActivity(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *handler) getContacts(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	contacts, err := h.wallet.GetContacts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *handler) createContact(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	var contact domain.Contact
	if err := decode(r, &contact); err != nil {
		writeError(w, err)
		return
	}
	if err := contact.Validate(); err != nil {
		writeError(w, badRequest(err))
		return
	}
	id, err := h.wallet.CreateNewContact(r.Context(), contact)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *handler) listFederations(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	federations, err := h.wallet.ListFederations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, federations)
}

func (h *handler) newFederation(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	var req struct {
		InviteCode string `json:"invite_code"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.InviteCode == "" {
		writeError(w, badRequest(errMissingInvite))
		return
	}
	federation, err := h.wallet.NewFederation(r.Context(), req.InviteCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, federation)
}

func (h *handler) getNwcProfiles(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	profiles, err := h.wallet.GetNwcProfiles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *handler) createInvoice(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	var req struct {
		Amount uint64   `json:"amount"`
		Labels []string `json:"labels"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	invoice, err := h.wallet.CreateInvoice(r.Context(), req.Amount, req.Labels)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, invoice)
}

func (h *handler) payInvoice(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	var req struct {
		Invoice string   `json:"invoice"`
		Amount  *uint64  `json:"amount,omitempty"`
		Labels  []string `json:"labels"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Invoice == "" {
		writeError(w, badRequest(errMissingInvoice))
		return
	}
	invoice, err := h.wallet.PayInvoice(
		r.Context(), req.Invoice, req.Amount, req.Labels,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *handler) listChannels(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	channels, err := h.wallet.ListChannels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, channels)
}

func (h *handler) getLogs(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	logs, err := h.wallet.GetLogs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *handler) listWebhooks(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	if h.webhooks == nil {
		writeError(w, errWebhooksOff)
		return
	}
	writeJSON(w, http.StatusOK, h.webhooks.ListWebhooks(r.URL.Query().Get("event")))
}

func (h *handler) addWebhook(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	if h.webhooks == nil {
		writeError(w, errWebhooksOff)
		return
	}
	var hook pubsub.Webhook
	if err := decode(r, &hook); err != nil {
		writeError(w, err)
		return
	}
	id, err := h.webhooks.AddWebhook(hook)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *handler) removeWebhook(
	w http.ResponseWriter, _ *http.Request, ps httprouter.Params,
) {
	if h.webhooks == nil {
		writeError(w, errWebhooksOff)
		return
	}
	if err := h.webhooks.RemoveWebhook(ps.ByName("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest(err)
	}
	return nil
}

func queryUint32(r *http.Request, key string) (*uint32, error) {
	str := r.URL.Query().Get(key)
	if str == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(str, 10, 32)
	if err != nil {
		return nil, badRequest(err)
	}
	v := uint32(n)
	return &v, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Debug("failed to write response")
	}
}
